package timeslot

import "fmt"

// Window рабочее окно заведения в минутах от полуночи.
// Если окно переходит через полночь, Close лежит за пределами 1440
// (например, "20:00"–"03:00" → Open=1200, Close=1620).
type Window struct {
	Open  int
	Close int
}

// NewWindow строит нормализованное окно из времени открытия и закрытия.
// Если закрытие численно не позже открытия, окно считается переходящим
// на следующий день и к закрытию прибавляется 1440.
func NewWindow(openTime, closeTime string) Window {
	open := ToMinutes(openTime)
	close := ToMinutes(closeTime)

	if close <= open {
		close += MinutesPerDay
	}

	return Window{Open: open, Close: close}
}

// CrossesMidnight возвращает true, если окно переходит через полночь
func (w Window) CrossesMidnight() bool {
	return w.Close > MinutesPerDay
}

// Align приводит сырой интервал запроса к шкале окна.
//
// Два правила, применяемые строго в этом порядке:
//  1. Если конец запроса численно меньше начала — сама бронь переходит
//     через полночь, к концу прибавляется 1440.
//  2. Если окно переходит через полночь и начало запроса меньше минуты
//     открытия — запрос трактуется как происходящий после локальной
//     полуночи, 1440 прибавляется и к началу, и к концу.
//
// После Align запрос, окно и сохранённые брони живут на одной
// нормализованной шкале 24h+ и напрямую сравнимы через Overlaps.
func (w Window) Align(start, end int) (int, int) {
	if end < start {
		end += MinutesPerDay
	}

	if w.CrossesMidnight() && start < w.Open {
		start += MinutesPerDay
		end += MinutesPerDay
	}

	return start, end
}

// Contains проверяет, что нормализованный интервал [start, end)
// целиком лежит внутри окна. Отдельная проверка end > start обязательна:
// запрос с нулевой длительностью внутри окна иначе прошёл бы валидацию.
func (w Window) Contains(start, end int) bool {
	return start >= w.Open && end <= w.Close && end > start
}

// String возвращает окно в человекочитаемом виде "HH:MM - HH:MM"
// для сообщений об ошибках.
func (w Window) String() string {
	return fmt.Sprintf("%s - %s", formatMinutes(w.Open), formatMinutes(w.Close))
}

func formatMinutes(m int) string {
	m = m % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
