package domain

import "github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/timeslot"

// Availability represents the free units of a venue's resource pool
// for a requested interval.
type Availability struct {
	FreeUnits []int // ascending 1-based unit indices
	Capacity  int
}

// FirstFree returns the lowest free unit index, or 0 if the pool is full
func (a *Availability) FirstFree() int {
	if len(a.FreeUnits) == 0 {
		return 0
	}
	return a.FreeUnits[0]
}

// IsFull returns true if no unit is free for the requested interval
func (a *Availability) IsFull() bool {
	return len(a.FreeUnits) == 0
}

// FreeUnits вычисляет свободные юниты пула ёмкостью capacity для
// интервала [reqStart, reqEnd), выровненного окном window.
//
// Юнит i свободен, если ни одна активная бронь на нём не пересекается
// с запрошенным интервалом. Интервал каждой брони прогоняется через то
// же Window.Align, что и запрос при создании: обе стороны сравнения
// живут на одной шкале. Бронь целиком после полуночи в заведении с
// переходом через полночь ("00:30"-"01:30" при окне "20:00"-"03:00")
// сдвигается на +1440 так же, как сдвинулся бы конфликтующий запрос.
//
// Результат всегда отсортирован по возрастанию индекса и не зависит от
// порядка reservations: перебор идёт по индексам 1..capacity, а не по
// порядку выдачи хранилища. Брони с индексом выше текущей ёмкости
// (ёмкость могли уменьшить после их создания) просто не попадают
// в перебор и не инвалидируются.
func FreeUnits(capacity int, reservations []*Reservation, window timeslot.Window, reqStart, reqEnd int) []int {
	free := make([]int, 0, capacity)

	for i := 1; i <= capacity; i++ {
		taken := false

		for _, r := range reservations {
			if !r.OccupiesSlot() || r.UnitIndex != i {
				continue
			}

			start, end := window.Align(r.StartTime.Minutes(), r.EndTime.Minutes())
			if timeslot.Overlaps(start, end, reqStart, reqEnd) {
				taken = true
				break
			}
		}

		if !taken {
			free = append(free, i)
		}
	}

	return free
}

// UnitIsFree проверяет, что юнит index присутствует в списке свободных
func UnitIsFree(freeUnits []int, index int) bool {
	for _, u := range freeUnits {
		if u == index {
			return true
		}
	}
	return false
}
