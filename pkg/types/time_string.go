// Package types содержит общие value-типы сервиса.
package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/timeslot"
)

// ErrInvalidTimeFormat возвращается при некорректном формате времени
var ErrInvalidTimeFormat = errors.New("invalid time string format, expected HH:MM")

// TimeString время суток в формате "HH:MM".
// Используется для времени начала и конца брони и хранится в колонках TIME.
type TimeString string

// NewTimeString создает TimeString из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString создает TimeString из строки со строгой валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет, что значение соответствует формату "HH:MM".
// time.Parse принимает и однозначный час ("9:30"), поэтому длина
// проверяется отдельно: дальше по коду строка разбирается строгим
// разбором "HH:MM", и пропущенный ведущий ноль дал бы тихий сдвиг
// времени вместо ошибки валидации.
func (t TimeString) Validate() error {
	if len(t) != 5 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	if _, err := time.Parse("15:04", string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes возвращает время в минутах от полуночи.
// Для некорректного значения возвращает 0 (см. timeslot.ToMinutes).
func (t TimeString) Minutes() int {
	return timeslot.ToMinutes(string(t))
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// Value реализует driver.Valuer для записи в колонку TIME
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner. lib/pq возвращает TIME как []byte
// ("15:04:05") либо time.Time в зависимости от настроек соединения —
// поддерживаем оба варианта.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("types.TimeString: cannot scan %T", src)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) > 5 {
		s = s[:5]
	}
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return err
	}
	*t = ts
	return nil
}
