package ledger

import "time"

// Clock возвращает текущее время.
type Clock interface {
	Now() time.Time
}

// SystemClock читает системные часы.
type SystemClock struct{}

// Now возвращает текущее системное время.
func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc позволяет использовать функцию как Clock.
type ClockFunc func() time.Time

// Now вызывает f.
func (f ClockFunc) Now() time.Time { return f() }
