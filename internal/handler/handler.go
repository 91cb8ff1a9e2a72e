// Package handler содержит HTTP-обработчики API сервиса проката.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/carrental-system/internal/customer"
	"github.com/mmeshcher/carrental-system/internal/ledger"
	"github.com/mmeshcher/carrental-system/internal/middleware"
	"github.com/mmeshcher/carrental-system/internal/model"
	"github.com/mmeshcher/carrental-system/internal/receipt"
	"github.com/mmeshcher/carrental-system/internal/service"
	"github.com/mmeshcher/carrental-system/internal/validation"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	RegisterCustomer(ctx context.Context, id, name string) error
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
	FleetStatus(ctx context.Context) model.FleetStatus
	Rates(ctx context.Context) model.RateTable
	Rent(ctx context.Context, customerID string, numCars int, mode model.RentalMode) (*model.RentalRecord, error)
	Return(ctx context.Context, customerID string, numCars *int) (*model.Receipt, error)
	History(ctx context.Context, customerID string) ([]model.RentalRecord, error)
	CurrentRental(ctx context.Context, customerID string) (*model.OpenRental, error)
}

// Handler реализует HTTP-обработчики API сервиса проката.
type Handler struct {
	service        Service
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
	currency       string
	rateLimit      float64
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware, currency string, rateLimit float64) *Handler {
	if currency == "" {
		currency = receipt.DefaultCurrency
	}
	return &Handler{
		service:        s,
		logger:         logger,
		authMiddleware: auth,
		currency:       currency,
		rateLimit:      rateLimit,
	}
}

type registerRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type customerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RegisterCustomer регистрирует клиента и устанавливает cookie.
func (h *Handler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if !validation.IsValidCustomerID(req.ID) || !validation.IsValidCustomerName(req.Name) {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.RegisterCustomer(r.Context(), req.ID, req.Name); err != nil {
		if errors.Is(err, service.ErrCustomerExists) {
			http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
			return
		}
		h.logger.Error("register customer error", zap.Error(err), zap.String("customerID", req.ID))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.authMiddleware.SetAuthCookie(w, req.ID)
	writeJSON(w, http.StatusOK, customerResponse{ID: req.ID, Name: req.Name})
}

// GetCustomer возвращает данные текущего клиента.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetCustomerIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	c, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.writeError(w, err, customerID)
		return
	}

	writeJSON(w, http.StatusOK, customerResponse{ID: c.ID, Name: c.Name})
}

type ratesResponse struct {
	Hourly float64 `json:"hourly"`
	Daily  float64 `json:"daily"`
	Weekly float64 `json:"weekly"`
}

type fleetResponse struct {
	Total       int           `json:"total"`
	Available   int           `json:"available"`
	OpenRentals int           `json:"open_rentals"`
	Summary     string        `json:"summary"`
	Rates       ratesResponse `json:"rates"`
}

// GetFleet возвращает количество свободных машин и тарифы.
func (h *Handler) GetFleet(w http.ResponseWriter, r *http.Request) {
	st := h.service.FleetStatus(r.Context())
	rates := h.service.Rates(r.Context())

	writeJSON(w, http.StatusOK, fleetResponse{
		Total:       st.Total,
		Available:   st.Available,
		OpenRentals: st.OpenRentals,
		Summary:     st.Summary,
		Rates: ratesResponse{
			Hourly: rates.Hourly,
			Daily:  rates.Daily,
			Weekly: rates.Weekly,
		},
	})
}

type rentRequest struct {
	NumCars int    `json:"num_cars"`
	Mode    string `json:"mode"`
}

type rentalResponse struct {
	ID         string   `json:"id"`
	Mode       string   `json:"mode"`
	NumCars    int      `json:"num_cars"`
	RentalTime string   `json:"rental_time"`
	Returned   bool     `json:"returned"`
	ReturnTime *string  `json:"return_time,omitempty"`
	BillAmount *float64 `json:"bill_amount,omitempty"`
}

func toRentalResponse(rec model.RentalRecord) rentalResponse {
	resp := rentalResponse{
		ID:         rec.ID,
		Mode:       string(rec.Mode),
		NumCars:    rec.NumCars,
		RentalTime: rec.RentalTime.Format(time.RFC3339),
		Returned:   rec.Returned,
		BillAmount: rec.BillAmount,
	}
	if rec.ReturnTime != nil {
		t := rec.ReturnTime.Format(time.RFC3339)
		resp.ReturnTime = &t
	}
	return resp
}

// Rent оформляет аренду машин для текущего клиента.
func (h *Handler) Rent(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetCustomerIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req rentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	mode, err := model.ParseRentalMode(req.Mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.service.Rent(r.Context(), customerID, req.NumCars, mode)
	if err != nil {
		h.writeError(w, err, customerID)
		return
	}

	writeJSON(w, http.StatusCreated, toRentalResponse(*record))
}

type returnRequest struct {
	NumCars *int `json:"num_cars"`
}

type receiptResponse struct {
	RentalID        string  `json:"rental_id"`
	Mode            string  `json:"mode"`
	NumCars         int     `json:"num_cars"`
	RentalTime      string  `json:"rental_time"`
	ReturnTime      string  `json:"return_time"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Amount          float64 `json:"amount"`
	AmountFormatted string  `json:"amount_formatted"`
}

// Return закрывает текущую аренду клиента и возвращает счёт.
// Тело запроса необязательно: без num_cars возвращаются все машины текущей аренды.
func (h *Handler) Return(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetCustomerIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req returnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.NumCars != nil && *req.NumCars < 0 {
		http.Error(w, "number of cars must be positive", http.StatusBadRequest)
		return
	}

	rcpt, err := h.service.Return(r.Context(), customerID, req.NumCars)
	if err != nil {
		h.writeError(w, err, customerID)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/plain") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, receipt.Format(rcpt.Amount, rcpt.Duration, h.currency))
		return
	}

	writeJSON(w, http.StatusOK, receiptResponse{
		RentalID:        rcpt.RentalID,
		Mode:            string(rcpt.Mode),
		NumCars:         rcpt.NumCars,
		RentalTime:      rcpt.RentalTime.Format(time.RFC3339),
		ReturnTime:      rcpt.ReturnTime.Format(time.RFC3339),
		Duration:        receipt.FormatDuration(rcpt.Duration),
		DurationSeconds: rcpt.Duration.Seconds(),
		Amount:          rcpt.Amount,
		AmountFormatted: receipt.FormatAmount(rcpt.Amount, h.currency),
	})
}

// GetRentals возвращает историю аренд текущего клиента.
func (h *Handler) GetRentals(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetCustomerIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	records, err := h.service.History(r.Context(), customerID)
	if err != nil {
		h.writeError(w, err, customerID)
		return
	}

	if len(records) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]rentalResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toRentalResponse(rec))
	}

	writeJSON(w, http.StatusOK, resp)
}

type currentRentalResponse struct {
	Rental        rentalResponse `json:"rental"`
	Elapsed       string         `json:"elapsed"`
	RunningCharge float64        `json:"running_charge"`
}

// GetCurrentRental возвращает открытую аренду текущего клиента с начислением на текущий момент.
func (h *Handler) GetCurrentRental(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetCustomerIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	open, err := h.service.CurrentRental(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, service.ErrNoCurrentRental) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.writeError(w, err, customerID)
		return
	}

	writeJSON(w, http.StatusOK, currentRentalResponse{
		Rental:        toRentalResponse(open.Record),
		Elapsed:       receipt.FormatDuration(open.Elapsed),
		RunningCharge: open.RunningCharge,
	})
}

// writeError отображает ошибки предметной области в HTTP-статусы.
// Тело ответа — сообщение ошибки, понятное клиенту.
func (h *Handler) writeError(w http.ResponseWriter, err error, customerID string) {
	switch ledger.KindOf(err) {
	case ledger.KindInvalidRequest:
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case ledger.KindNoRentalFound, ledger.KindNoActiveRental:
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case ledger.KindQuantityMismatch:
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	switch {
	case errors.Is(err, customer.ErrRentalInProgress):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrCustomerNotFound):
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	default:
		h.logger.Error("rental operation error", zap.Error(err), zap.String("customerID", customerID))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
