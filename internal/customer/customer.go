// Package customer связывает клиента проката с учётом парка.
package customer

import (
	"errors"
	"time"

	"github.com/mmeshcher/carrental-system/internal/model"
)

// ErrRentalInProgress возвращается при попытке взять машины, не вернув предыдущую аренду.
var ErrRentalInProgress = errors.New("customer already has an active rental")

// Ledger описывает операции учёта, которые нужны клиенту.
type Ledger interface {
	Rent(customerID string, numCars int, mode model.RentalMode) (*model.RentalRecord, error)
	ReturnUnits(customerID string, numCars int) (float64, time.Duration, error)
}

// Customer представляет клиента и его текущую открытую аренду.
// Источник истины — Ledger; current лишь ссылается на запись в нём.
type Customer struct {
	ID   string
	Name string

	current *model.RentalRecord
}

// New создаёт клиента без открытой аренды.
func New(id, name string) *Customer {
	return &Customer{ID: id, Name: name}
}

// CurrentRental возвращает открытую аренду клиента или nil.
func (c *Customer) CurrentRental() *model.RentalRecord {
	return c.current
}

// Request берёт numCars машин в режиме mode. При ошибке текущая аренда не меняется.
func (c *Customer) Request(l Ledger, numCars int, mode model.RentalMode) (*model.RentalRecord, error) {
	if c.current != nil {
		return nil, ErrRentalInProgress
	}

	record, err := l.Rent(c.ID, numCars, mode)
	if err != nil {
		return nil, err
	}

	c.current = record
	return record, nil
}

// ReturnCars возвращает numCars машин и сбрасывает текущую аренду.
func (c *Customer) ReturnCars(l Ledger, numCars int) (float64, time.Duration, error) {
	bill, duration, err := l.ReturnUnits(c.ID, numCars)
	if err != nil {
		return 0, 0, err
	}

	c.current = nil
	return bill, duration, nil
}
