// Package model содержит доменные сущности сервиса проката автомобилей.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// RentalMode описывает режим тарификации аренды.
type RentalMode string

const (
	RentalModeHourly RentalMode = "hourly"
	RentalModeDaily  RentalMode = "daily"
	RentalModeWeekly RentalMode = "weekly"
)

// ErrUnknownRentalMode возвращается при разборе неизвестного режима аренды.
var ErrUnknownRentalMode = errors.New("unknown rental mode")

// ParseRentalMode разбирает название режима аренды без учёта регистра.
func ParseRentalMode(s string) (RentalMode, error) {
	mode := RentalMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRentalMode, s)
	}
	return mode, nil
}

// Valid сообщает, является ли режим одним из поддерживаемых.
func (m RentalMode) Valid() bool {
	switch m {
	case RentalModeHourly, RentalModeDaily, RentalModeWeekly:
		return true
	}
	return false
}

// Unit возвращает единицу времени, за которую начисляется тариф режима.
func (m RentalMode) Unit() time.Duration {
	switch m {
	case RentalModeHourly:
		return time.Hour
	case RentalModeDaily:
		return 24 * time.Hour
	case RentalModeWeekly:
		return 7 * 24 * time.Hour
	}
	return 0
}

// Значения тарифов по умолчанию за одну машину.
const (
	DefaultHourlyRate = 50.0
	DefaultDailyRate  = 800.0
	DefaultWeeklyRate = 4000.0
)

// RateTable содержит стоимость аренды одной машины за единицу времени каждого режима.
type RateTable struct {
	Hourly float64 `yaml:"hourly"`
	Daily  float64 `yaml:"daily"`
	Weekly float64 `yaml:"weekly"`
}

// DefaultRates возвращает таблицу тарифов по умолчанию.
func DefaultRates() RateTable {
	return RateTable{
		Hourly: DefaultHourlyRate,
		Daily:  DefaultDailyRate,
		Weekly: DefaultWeeklyRate,
	}
}

// Validate проверяет, что все тарифы положительны.
func (r RateTable) Validate() error {
	if r.Hourly <= 0 {
		return fmt.Errorf("hourly rate must be positive, got %v", r.Hourly)
	}
	if r.Daily <= 0 {
		return fmt.Errorf("daily rate must be positive, got %v", r.Daily)
	}
	if r.Weekly <= 0 {
		return fmt.Errorf("weekly rate must be positive, got %v", r.Weekly)
	}
	return nil
}

// For возвращает тариф для указанного режима.
func (r RateTable) For(mode RentalMode) float64 {
	switch mode {
	case RentalModeHourly:
		return r.Hourly
	case RentalModeDaily:
		return r.Daily
	case RentalModeWeekly:
		return r.Weekly
	}
	return 0
}

// RentalRecord описывает одну сделку аренды от выдачи до возврата.
// ReturnTime и BillAmount заполняются одновременно с Returned.
type RentalRecord struct {
	ID         string
	CustomerID string
	RentalTime time.Time
	Mode       RentalMode
	NumCars    int
	Returned   bool
	ReturnTime *time.Time
	BillAmount *float64
}

// Duration возвращает длительность аренды: до момента возврата или до now, если аренда открыта.
func (r *RentalRecord) Duration(now time.Time) time.Duration {
	if r.ReturnTime != nil {
		return r.ReturnTime.Sub(r.RentalTime)
	}
	return now.Sub(r.RentalTime)
}

// Receipt содержит итог закрытой аренды.
type Receipt struct {
	RentalID   string
	Mode       RentalMode
	NumCars    int
	RentalTime time.Time
	ReturnTime time.Time
	Duration   time.Duration
	Amount     float64
}

// FleetStatus описывает текущую загрузку парка.
type FleetStatus struct {
	Total       int
	Available   int
	OpenRentals int
	OpenCars    int
	Summary     string
}

// Customer описывает зарегистрированного клиента проката.
type Customer struct {
	ID   string
	Name string
}

// OpenRental описывает открытую аренду с начислением на текущий момент.
type OpenRental struct {
	Record        RentalRecord
	Elapsed       time.Duration
	RunningCharge float64
}
