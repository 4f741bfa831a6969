package timeslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "midnight", input: "00:00", expected: 0},
		{name: "morning", input: "09:30", expected: 570},
		{name: "noon", input: "12:00", expected: 720},
		{name: "evening", input: "22:30", expected: 1350},
		{name: "last minute of day", input: "23:59", expected: 1439},
		{name: "with seconds suffix", input: "14:15:00", expected: 855},
		{name: "empty string", input: "", expected: 0},
		{name: "too short", input: "9:30", expected: 0},
		{name: "missing colon", input: "0930", expected: 0},
		{name: "hours out of range", input: "24:00", expected: 0},
		{name: "minutes out of range", input: "12:60", expected: 0},
		{name: "non-digit characters", input: "ab:cd", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToMinutes(tt.input))
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   int
		aEnd     int
		bStart   int
		bEnd     int
		expected bool
	}{
		{name: "partial overlap", aStart: 600, aEnd: 720, bStart: 660, bEnd: 780, expected: true},
		{name: "b contains a", aStart: 600, aEnd: 660, bStart: 540, bEnd: 720, expected: true},
		{name: "a contains b", aStart: 540, aEnd: 720, bStart: 600, bEnd: 660, expected: true},
		{name: "identical intervals", aStart: 600, aEnd: 720, bStart: 600, bEnd: 720, expected: true},
		{name: "disjoint", aStart: 600, aEnd: 660, bStart: 720, bEnd: 780, expected: false},
		// Полуоткрытые интервалы: соприкосновение границ - не пересечение
		{name: "a ends where b starts", aStart: 540, aEnd: 600, bStart: 600, bEnd: 660, expected: false},
		{name: "b ends where a starts", aStart: 600, aEnd: 660, bStart: 540, bEnd: 600, expected: false},
		// Нормализованная шкала за пределами 1440
		{name: "cross-midnight overlap", aStart: 1380, aEnd: 1500, bStart: 1440, bEnd: 1560, expected: true},
		{name: "cross-midnight disjoint", aStart: 1380, aEnd: 1440, bStart: 1440, bEnd: 1560, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

// Пересечение симметрично относительно перестановки интервалов
func TestOverlaps_Symmetry(t *testing.T) {
	pairs := [][4]int{
		{600, 720, 660, 780},
		{540, 600, 600, 660},
		{1380, 1500, 1440, 1560},
		{0, 1440, 720, 721},
	}

	for _, p := range pairs {
		assert.Equal(t,
			Overlaps(p[0], p[1], p[2], p[3]),
			Overlaps(p[2], p[3], p[0], p[1]),
			"overlap must be symmetric for %v", p)
	}
}
