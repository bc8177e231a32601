/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures decoupling the domain model from the API contract.
  Amounts cross the wire as fixed two-decimal strings, record dates use the
  same dd.mm.yyyy layout as the persisted files.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Handlers validate; DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

// PremiereDTO represents a premiere in API responses.
type PremiereDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Location  string `json:"location"`
	Capacity  int    `json:"capacity"`
	Sold      int    `json:"sold"`
	Available int    `json:"available"`
	Budget    string `json:"budget"`
	Guests    int    `json:"guests"`
	Reviews   int    `json:"reviews"`
}

// CreatePremiereRequest is the request to register a premiere.
type CreatePremiereRequest struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"` // dd.mm.yyyy HH:mm MST
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
	Budget   string `json:"budget,omitempty"`
}

// TicketRequest is the body for sell and return operations.
type TicketRequest struct {
	Count int `json:"count"`
}

// TicketOperationDTO reports the outcome of a sell or return.
type TicketOperationDTO struct {
	PremiereID string `json:"premiere_id"`
	Count      int    `json:"count"`
	Amount     string `json:"amount"`
	Sold       int    `json:"sold"`
	Available  int    `json:"available"`
	RecordID   string `json:"record_id"`
}

// GuestRequest is the body for adding a guest.
type GuestRequest struct {
	Name    string `json:"name"`
	IsAdult bool   `json:"is_adult"`
}

// ReviewRequest is the body for adding a review.
type ReviewRequest struct {
	Review string `json:"review"`
}

// BudgetRequest is the body for a budget contribution.
type BudgetRequest struct {
	Amount string `json:"amount"`
}

// RecordDTO represents a finance record in API responses.
type RecordDTO struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"` // dd.mm.yyyy
}

// CreateRecordRequest is the request to add a finance record.
// ID is optional; one is generated when absent.
type CreateRecordRequest struct {
	ID          string `json:"id,omitempty"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"` // dd.mm.yyyy
}

// ReportDTO is the aggregated finance report.
type ReportDTO struct {
	GeneratedAt     string      `json:"generated_at"`
	TotalIncome     string      `json:"total_income"`
	TotalExpenses   string      `json:"total_expenses"`
	Net             string      `json:"net"`
	TicketSales     string      `json:"ticket_sales"`
	TicketRefunds   string      `json:"ticket_refunds"`
	TicketsSold     int64       `json:"tickets_sold"`
	TicketsRefunded int64       `json:"tickets_refunded"`
	Records         []RecordDTO `json:"records"`
}

// PremiereReportDTO is the per-premiere text report.
type PremiereReportDTO struct {
	PremiereID string `json:"premiere_id"`
	Report     string `json:"report"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
