// Package ledger ведёт учёт парка машин: остаток, историю аренд клиентов и расчёт счетов.
package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmeshcher/carrental-system/internal/model"
)

// Ledger — единственный источник истины о доступности машин и истории аренд.
// Все операции выполняются под одним мьютексом, поэтому
// available + сумма машин открытых аренд всегда равна total.
type Ledger struct {
	mu        sync.Mutex
	clock     Clock
	rates     model.RateTable
	total     int
	available int
	records   map[string][]*model.RentalRecord
}

// Option настраивает Ledger при создании.
type Option func(*Ledger)

// WithClock подменяет источник времени.
func WithClock(c Clock) Option {
	return func(l *Ledger) {
		if c != nil {
			l.clock = c
		}
	}
}

// New создаёт учёт для парка из totalUnits машин с указанными тарифами.
func New(totalUnits int, rates model.RateTable, opts ...Option) (*Ledger, error) {
	if totalUnits <= 0 {
		return nil, fmt.Errorf("total units must be positive, got %d", totalUnits)
	}
	if err := rates.Validate(); err != nil {
		return nil, fmt.Errorf("rates: %w", err)
	}

	l := &Ledger{
		clock:     SystemClock{},
		rates:     rates,
		total:     totalUnits,
		available: totalUnits,
		records:   make(map[string][]*model.RentalRecord),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// DisplayAvailable возвращает строку с количеством свободных машин.
func (l *Ledger) DisplayAvailable() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.summary()
}

func (l *Ledger) summary() string {
	return fmt.Sprintf("Available cars: %d out of %d", l.available, l.total)
}

// ValidateRequest проверяет, можно ли выдать numCars машин.
func (l *Ledger) ValidateRequest(numCars int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.validate(numCars)
}

func (l *Ledger) validate(numCars int) error {
	if numCars <= 0 {
		return newError(KindInvalidRequest, "number of cars must be positive")
	}
	if numCars > l.available {
		return newError(KindInvalidRequest, fmt.Sprintf("sorry, only %d cars are available", l.available))
	}
	return nil
}

// Rent выдаёт клиенту numCars машин в режиме mode и возвращает новую запись аренды.
// Запись остаётся во владении Ledger; вызывающий код должен только читать её.
func (l *Ledger) Rent(customerID string, numCars int, mode model.RentalMode) (*model.RentalRecord, error) {
	if !mode.Valid() {
		return nil, newError(KindInvalidRequest, fmt.Sprintf("unknown rental mode %q", mode))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.validate(numCars); err != nil {
		return nil, err
	}

	record := &model.RentalRecord{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		RentalTime: l.clock.Now(),
		Mode:       mode,
		NumCars:    numCars,
	}

	l.records[customerID] = append(l.records[customerID], record)
	l.available -= numCars

	return record, nil
}

// ReturnUnits закрывает последнюю открытую аренду клиента и возвращает сумму счёта и длительность.
// Возврат возможен только целиком: numCars должно совпадать с количеством машин в аренде.
func (l *Ledger) ReturnUnits(customerID string, numCars int) (float64, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	history, ok := l.records[customerID]
	if !ok || len(history) == 0 {
		return 0, 0, newError(KindNoRentalFound, "no rental record found for this customer")
	}

	rental := lastOpen(history)
	if rental == nil {
		return 0, 0, newError(KindNoActiveRental, "no active rentals found for this customer")
	}

	if numCars != rental.NumCars {
		return 0, 0, newError(KindQuantityMismatch, fmt.Sprintf("please return all %d cars from this rental", rental.NumCars))
	}

	returnTime := l.clock.Now()
	duration := returnTime.Sub(rental.RentalTime)
	bill := Bill(l.rates, rental.Mode, numCars, duration)

	rental.Returned = true
	rental.ReturnTime = &returnTime
	rental.BillAmount = &bill
	l.available += numCars

	return bill, duration, nil
}

func lastOpen(history []*model.RentalRecord) *model.RentalRecord {
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].Returned {
			return history[i]
		}
	}
	return nil
}

// Bill рассчитывает стоимость аренды по непрерывному числу единиц времени без округления.
func Bill(rates model.RateTable, mode model.RentalMode, numCars int, duration time.Duration) float64 {
	unit := mode.Unit()
	if unit == 0 {
		return 0
	}
	units := duration.Seconds() / unit.Seconds()
	return units * rates.For(mode) * float64(numCars)
}

// Total возвращает общее количество машин в парке.
func (l *Ledger) Total() int {
	return l.total
}

// Available возвращает количество свободных машин.
func (l *Ledger) Available() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.available
}

// Rates возвращает таблицу тарифов.
func (l *Ledger) Rates() model.RateTable {
	return l.rates
}

// Now возвращает время по часам учёта.
func (l *Ledger) Now() time.Time {
	return l.clock.Now()
}

// Records возвращает копии записей клиента в хронологическом порядке.
func (l *Ledger) Records(customerID string) []model.RentalRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	history := l.records[customerID]
	res := make([]model.RentalRecord, 0, len(history))
	for _, r := range history {
		res = append(res, copyRecord(r))
	}
	return res
}

// ErrRecordNotFound возвращается Lookup, если запись не найдена.
var ErrRecordNotFound = errors.New("rental record not found")

// Lookup возвращает копию записи клиента по её идентификатору.
func (l *Ledger) Lookup(customerID, recordID string) (model.RentalRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, r := range l.records[customerID] {
		if r.ID == recordID {
			return copyRecord(r), nil
		}
	}
	return model.RentalRecord{}, ErrRecordNotFound
}

// Status возвращает сводку загрузки парка.
func (l *Ledger) Status() model.FleetStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := model.FleetStatus{
		Total:     l.total,
		Available: l.available,
		Summary:   l.summary(),
	}
	for _, history := range l.records {
		for _, r := range history {
			if !r.Returned {
				st.OpenRentals++
				st.OpenCars += r.NumCars
			}
		}
	}
	return st
}

func copyRecord(r *model.RentalRecord) model.RentalRecord {
	c := *r
	if r.ReturnTime != nil {
		t := *r.ReturnTime
		c.ReturnTime = &t
	}
	if r.BillAmount != nil {
		b := *r.BillAmount
		c.BillAmount = &b
	}
	return c
}
