// Package service реализует бизнес-логику сервиса проката автомобилей.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mmeshcher/carrental-system/internal/customer"
	"github.com/mmeshcher/carrental-system/internal/ledger"
	"github.com/mmeshcher/carrental-system/internal/model"
)

var (
	// ErrCustomerExists возвращается при повторной регистрации клиента с тем же идентификатором.
	ErrCustomerExists = errors.New("customer already exists")
	// ErrCustomerNotFound возвращается, если клиент не зарегистрирован.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrNoCurrentRental возвращается, если у клиента нет открытой аренды.
	ErrNoCurrentRental = errors.New("no active rentals found")
)

// Ledger описывает контракт учёта парка, используемый сервисом.
type Ledger interface {
	customer.Ledger
	Status() model.FleetStatus
	Records(customerID string) []model.RentalRecord
	Lookup(customerID, recordID string) (model.RentalRecord, error)
	Rates() model.RateTable
	Now() time.Time
}

// Service содержит бизнес-логику сервиса проката.
type Service struct {
	mu        sync.Mutex
	ledger    Ledger
	customers map[string]*customer.Customer
}

// NewService создаёт новый сервис поверх указанного учёта парка.
func NewService(l Ledger) *Service {
	return &Service{
		ledger:    l,
		customers: make(map[string]*customer.Customer),
	}
}

// RegisterCustomer регистрирует нового клиента.
func (s *Service) RegisterCustomer(ctx context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[id]; ok {
		return fmt.Errorf("%w: %s", ErrCustomerExists, id)
	}

	s.customers[id] = customer.New(id, name)
	return nil
}

// GetCustomer возвращает данные клиента.
func (s *Service) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return &model.Customer{ID: c.ID, Name: c.Name}, nil
}

// FleetStatus возвращает текущую загрузку парка.
func (s *Service) FleetStatus(ctx context.Context) model.FleetStatus {
	return s.ledger.Status()
}

// Rates возвращает действующие тарифы.
func (s *Service) Rates(ctx context.Context) model.RateTable {
	return s.ledger.Rates()
}

// Rent оформляет аренду numCars машин для клиента.
func (s *Service) Rent(ctx context.Context, customerID string, numCars int, mode model.RentalMode) (*model.RentalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[customerID]
	if !ok {
		return nil, ErrCustomerNotFound
	}

	record, err := c.Request(s.ledger, numCars, mode)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.ledger.Lookup(customerID, record.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup rental: %w", err)
	}
	return &snapshot, nil
}

// Return закрывает текущую аренду клиента и возвращает счёт.
// Если numCars равно nil, возвращаются все машины текущей аренды.
func (s *Service) Return(ctx context.Context, customerID string, numCars *int) (*model.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[customerID]
	if !ok {
		return nil, ErrCustomerNotFound
	}

	var rentalID string
	quantity := 0
	if numCars != nil {
		quantity = *numCars
	}
	if current := c.CurrentRental(); current != nil {
		rentalID = current.ID
		if numCars == nil {
			quantity = current.NumCars
		}
	}

	bill, duration, err := c.ReturnCars(s.ledger, quantity)
	if err != nil {
		return nil, err
	}

	receipt := &model.Receipt{
		RentalID: rentalID,
		NumCars:  quantity,
		Duration: duration,
		Amount:   bill,
	}

	if rentalID != "" {
		record, err := s.ledger.Lookup(customerID, rentalID)
		if err != nil {
			return nil, fmt.Errorf("lookup rental: %w", err)
		}
		receipt.Mode = record.Mode
		receipt.RentalTime = record.RentalTime
		if record.ReturnTime != nil {
			receipt.ReturnTime = *record.ReturnTime
		}
	}

	return receipt, nil
}

// History возвращает все аренды клиента в хронологическом порядке.
func (s *Service) History(ctx context.Context, customerID string) ([]model.RentalRecord, error) {
	s.mu.Lock()
	_, ok := s.customers[customerID]
	s.mu.Unlock()

	if !ok {
		return nil, ErrCustomerNotFound
	}
	return s.ledger.Records(customerID), nil
}

// CurrentRental возвращает открытую аренду клиента и начисление на текущий момент.
func (s *Service) CurrentRental(ctx context.Context, customerID string) (*model.OpenRental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[customerID]
	if !ok {
		return nil, ErrCustomerNotFound
	}

	current := c.CurrentRental()
	if current == nil {
		return nil, ErrNoCurrentRental
	}

	record, err := s.ledger.Lookup(customerID, current.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup rental: %w", err)
	}

	elapsed := record.Duration(s.ledger.Now())
	return &model.OpenRental{
		Record:        record,
		Elapsed:       elapsed,
		RunningCharge: ledger.Bill(s.ledger.Rates(), record.Mode, record.NumCars, elapsed),
	}, nil
}
