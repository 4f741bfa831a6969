// Package timeslot содержит чистую арифметику временных интервалов:
// конвертацию "HH:MM" в минуты от полуночи, проверку пересечения
// полуоткрытых интервалов и нормализацию окон, переходящих через полночь.
//
// Все функции детерминированы и не делают I/O. Единственное правило
// перехода через полночь (+1440 минут) живёт здесь и только здесь —
// валидация рабочих часов и расчёт доступности обязаны использовать
// этот пакет, а не дублировать правило.
package timeslot

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// ToMinutes конвертирует время формата "HH:MM" или "HH:MM:SS"
// в минуты от локальной полуночи, диапазон [0, 1440).
// Для пустой или некорректной строки возвращает 0 — вызывающая сторона
// обязана валидировать формат заранее (types.TimeString.Validate).
func ToMinutes(t string) int {
	if len(t) < 5 || t[2] != ':' {
		return 0
	}
	if !isDigit(t[0]) || !isDigit(t[1]) || !isDigit(t[3]) || !isDigit(t[4]) {
		return 0
	}

	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')

	if hours > 23 || mins > 59 {
		return 0
	}

	return hours*60 + mins
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов [aStart, aEnd)
// и [bStart, bEnd) в минутах.
//
// Используются строгие неравенства: интервалы, соприкасающиеся границами,
// НЕ пересекаются. Бронь до 10:00 совместима с бронью с 10:00.
//
// Обе стороны обязаны быть нормализованы одним и тем же правилом +1440
// (Window.Align либо нормализация интервала самой брони) ДО вызова —
// сравнение сырого времени с нормализованным даёт ложные результаты.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
