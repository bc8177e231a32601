/*
handlers.go - HTTP API handlers for the premiere platform

PURPOSE:
  Exposes the menu surface over REST. Handlers parse and validate input,
  delegate to the box office / ledger / premiere directory, and map domain
  errors onto HTTP statuses.

ENDPOINTS:
  Premieres:
    GET    /api/premieres                       List premieres
    POST   /api/premieres                       Register premiere
    GET    /api/premieres/{id}                  Premiere details
    DELETE /api/premieres/{id}                  Remove premiere
    GET    /api/premieres/{id}/report           Per-premiere report
    POST   /api/premieres/{id}/tickets/sell     Sell tickets
    POST   /api/premieres/{id}/tickets/return   Return tickets
    POST   /api/premieres/{id}/guests           Add guest
    POST   /api/premieres/{id}/reviews          Add review
    POST   /api/premieres/{id}/budget           Contribute budget

  Finance:
    GET    /api/finance/records                 List records
    POST   /api/finance/records                 Add record
    DELETE /api/finance/records/{id}            Remove record
    GET    /api/finance/report                  Aggregated report

ERROR HANDLING:
  - 400: validation errors (bad amount, bad count, bad date, unknown category)
  - 404: unknown premiere or record id
  - 409: duplicate ids, insufficient tickets, over-returns
  - 500: anything else

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/marquee/premiere-engine/boxoffice"
	"github.com/marquee/premiere-engine/finance"
	"github.com/marquee/premiere-engine/premiere"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Premieres *premiere.Manager
	Ledger    *finance.Ledger
	BoxOffice *boxoffice.Service
}

// NewHandler wires a handler over the premiere directory and ledger.
func NewHandler(premieres *premiere.Manager, ledger *finance.Ledger) *Handler {
	return &Handler{
		Premieres: premieres,
		Ledger:    ledger,
		BoxOffice: boxoffice.NewService(premieres, ledger),
	}
}

// =============================================================================
// PREMIERE HANDLERS
// =============================================================================

// ListPremieres returns all premieres in insertion order.
func (h *Handler) ListPremieres(w http.ResponseWriter, r *http.Request) {
	premieres := h.Premieres.All()
	dtos := make([]PremiereDTO, len(premieres))
	for i, p := range premieres {
		dtos[i] = toPremiereDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreatePremiere registers a new premiere.
func (h *Handler) CreatePremiere(w http.ResponseWriter, r *http.Request) {
	var req CreatePremiereRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := time.Parse(premiere.DateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date, expected dd.mm.yyyy HH:mm MST", err)
		return
	}
	budget := decimal.Zero
	if req.Budget != "" {
		budget, err = decimal.NewFromString(req.Budget)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid budget", err)
			return
		}
	}

	p, err := premiere.New(req.ID, req.Title, date, req.Location, req.Capacity, budget)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Premieres.Add(p); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPremiereDTO(p))
}

// GetPremiere returns one premiere.
func (h *Handler) GetPremiere(w http.ResponseWriter, r *http.Request) {
	p, err := h.Premieres.FindByID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPremiereDTO(p))
}

// DeletePremiere removes a premiere.
func (h *Handler) DeletePremiere(w http.ResponseWriter, r *http.Request) {
	if err := h.Premieres.RemoveByID(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPremiereReport renders the per-premiere text report.
func (h *Handler) GetPremiereReport(w http.ResponseWriter, r *http.Request) {
	p, err := h.Premieres.FindByID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PremiereReportDTO{PremiereID: p.ID, Report: p.Report()})
}

// SellTickets sells tickets and records the companion income entry.
func (h *Handler) SellTickets(w http.ResponseWriter, r *http.Request) {
	var req TicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	op, err := h.BoxOffice.SellTickets(r.Context(), chi.URLParam(r, "id"), req.Count)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTicketOperationDTO(op))
}

// ReturnTickets returns tickets and records the companion expense entry.
func (h *Handler) ReturnTickets(w http.ResponseWriter, r *http.Request) {
	var req TicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	op, err := h.BoxOffice.ReturnTickets(r.Context(), chi.URLParam(r, "id"), req.Count)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTicketOperationDTO(op))
}

// AddGuest adds a guest to a premiere.
func (h *Handler) AddGuest(w http.ResponseWriter, r *http.Request) {
	var req GuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Premieres.AddGuest(chi.URLParam(r, "id"), req.Name, req.IsAdult); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddReview adds a review to a premiere.
func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Premieres.AddReview(chi.URLParam(r, "id"), req.Review); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ContributeBudget adds to a premiere's budget and records the allocation.
func (h *Handler) ContributeBudget(w http.ResponseWriter, r *http.Request) {
	var req BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}
	if err := h.BoxOffice.ContributeBudget(r.Context(), chi.URLParam(r, "id"), amount); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// FINANCE HANDLERS
// =============================================================================

// ListRecords returns all finance records in insertion order.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records := h.Ledger.Records()
	dtos := make([]RecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = toRecordDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateRecord validates and appends a finance record.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	category, err := finance.ParseCategory(req.Category)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}
	date, err := time.Parse(finance.DateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date, expected dd.mm.yyyy", err)
		return
	}

	id := req.ID
	if id == "" {
		id = finance.NewRecordID()
	}
	rec, err := finance.NewRecord(id, category, amount, req.Description, date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Ledger.AddRecord(r.Context(), rec); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecordDTO(rec))
}

// DeleteRecord removes a finance record by id.
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.RemoveRecord(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetReport returns the aggregated finance report.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Ledger.GenerateReport()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dto := ReportDTO{
		GeneratedAt:     rep.GeneratedAt.Format(time.RFC3339),
		TotalIncome:     rep.TotalIncome.StringFixed(2),
		TotalExpenses:   rep.TotalExpenses.StringFixed(2),
		Net:             rep.Net.StringFixed(2),
		TicketSales:     rep.TicketSales.StringFixed(2),
		TicketRefunds:   rep.TicketRefunds.StringFixed(2),
		TicketsSold:     rep.TicketsSold,
		TicketsRefunded: rep.TicketsRefunded,
		Records:         make([]RecordDTO, len(rep.Records)),
	}
	for i, rec := range rep.Records {
		dto.Records[i] = toRecordDTO(rec)
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// HELPERS
// =============================================================================

func toPremiereDTO(p *premiere.Premiere) PremiereDTO {
	return PremiereDTO{
		ID:        p.ID,
		Title:     p.Title,
		Date:      p.Date.Format(premiere.DateLayout),
		Location:  p.DisplayLocation(),
		Capacity:  p.Capacity(),
		Sold:      p.Sold(),
		Available: p.Available(),
		Budget:    p.Budget.StringFixed(2),
		Guests:    len(p.Guests),
		Reviews:   len(p.Reviews),
	}
}

func toRecordDTO(r finance.Record) RecordDTO {
	return RecordDTO{
		ID:          r.ID,
		Category:    string(r.Category),
		Amount:      r.Amount.StringFixed(2),
		Description: r.Description,
		Date:        r.Date.Format(finance.DateLayout),
	}
}

func toTicketOperationDTO(op *boxoffice.TicketOperation) TicketOperationDTO {
	return TicketOperationDTO{
		PremiereID: op.PremiereID,
		Count:      op.Count,
		Amount:     op.Amount.StringFixed(2),
		Sold:       op.Sold,
		Available:  op.Available,
		RecordID:   op.RecordID,
	}
}

// writeDomainError maps domain errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var insufficient *boxoffice.InsufficientTicketsError

	switch {
	case errors.Is(err, premiere.ErrNotFound) || errors.Is(err, finance.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "Not found", err)
	case errors.As(err, &insufficient) ||
		errors.Is(err, premiere.ErrOverReturn) ||
		errors.Is(err, premiere.ErrDuplicateID) ||
		errors.Is(err, finance.ErrDuplicateID):
		writeError(w, http.StatusConflict, "Conflict", err)
	case errors.Is(err, finance.ErrNoRecords):
		writeError(w, http.StatusNotFound, "No records to report on", err)
	case finance.IsValidation(err) ||
		errors.Is(err, premiere.ErrInvalidTicketCount) ||
		errors.Is(err, premiere.ErrInvalidBudget) ||
		errors.Is(err, premiere.ErrEmptyID) ||
		errors.Is(err, premiere.ErrIDTooLong) ||
		errors.Is(err, premiere.ErrEmptyTitle) ||
		errors.Is(err, premiere.ErrMissingDate) ||
		errors.Is(err, premiere.ErrNegativeCapacity) ||
		errors.Is(err, premiere.ErrNegativeBudget) ||
		errors.Is(err, premiere.ErrEmptyGuestName) ||
		errors.Is(err, premiere.ErrUnderageGuest) ||
		errors.Is(err, premiere.ErrEmptyReview):
		writeError(w, http.StatusBadRequest, "Validation failed", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
