package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marquee/premiere-engine/api"
	"github.com/marquee/premiere-engine/finance"
	"github.com/marquee/premiere-engine/premiere"
	"github.com/marquee/premiere-engine/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *api.Handler) {
	t.Helper()

	manager, err := premiere.NewManager(memory.NewPremiereRepository())
	require.NoError(t, err)
	ledger, err := finance.NewLedger(memory.NewFinanceGateway(), nil)
	require.NoError(t, err)

	h := api.NewHandler(manager, ledger)
	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, h
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func addTestPremiere(t *testing.T, h *api.Handler, id string, capacity int) {
	t.Helper()
	date := time.Date(2026, time.September, 15, 19, 30, 0, 0, time.UTC)
	p, err := premiere.New(id, "Opening Gala", date, "Grand Hall", capacity, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, h.Premieres.Add(p))
}

// =============================================================================
// PREMIERE ENDPOINT TESTS
// =============================================================================

func TestAPI_CreateAndGetPremiere(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/premieres", api.CreatePremiereRequest{
		ID:       "gala-1",
		Title:    "Opening Gala",
		Date:     "15.09.2026 19:30 UTC",
		Location: "Grand Hall",
		Capacity: 100,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody[api.PremiereDTO](t, resp)
	assert.Equal(t, "gala-1", created.ID)
	assert.Equal(t, 100, created.Available)

	get := doJSON(t, http.MethodGet, srv.URL+"/api/premieres/gala-1", nil)
	require.Equal(t, http.StatusOK, get.StatusCode)
	fetched := decodeBody[api.PremiereDTO](t, get)
	assert.Equal(t, "Opening Gala", fetched.Title)
}

func TestAPI_CreatePremiere_BadDate(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/premieres", api.CreatePremiereRequest{
		ID: "gala-1", Title: "Opening Gala", Date: "2026-09-15", Capacity: 100,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_CreatePremiere_DuplicateID(t *testing.T) {
	srv, h := newTestServer(t)
	addTestPremiere(t, h, "gala-1", 100)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/premieres", api.CreatePremiereRequest{
		ID: "gala-1", Title: "Again", Date: "15.09.2026 19:30 UTC", Capacity: 10,
	})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_GetPremiere_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/premieres/ghost", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody[api.ErrorResponse](t, resp)
	assert.Equal(t, "Not found", body.Error)
}

func TestAPI_DeletePremiere(t *testing.T) {
	srv, h := newTestServer(t)
	addTestPremiere(t, h, "gala-1", 100)

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/premieres/gala-1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	get := doJSON(t, http.MethodGet, srv.URL+"/api/premieres/gala-1", nil)
	assert.Equal(t, http.StatusNotFound, get.StatusCode)
}

// =============================================================================
// TICKET ENDPOINT TESTS
// =============================================================================

func TestAPI_SellTickets(t *testing.T) {
	srv, h := newTestServer(t)
	addTestPremiere(t, h, "gala-1", 100)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/premieres/gala-1/tickets/sell",
		api.TicketRequest{Count: 60})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	op := decodeBody[api.TicketOperationDTO](t, resp)
	assert.Equal(t, 60, op.Sold)
	assert.Equal(t, 40, op.Available)
	assert.Equal(t, "600.00", op.Amount)
	assert.NotEmpty(t, op.RecordID)

	// The companion income entry is visible through the finance endpoint
	list := doJSON(t, http.MethodGet, srv.URL+"/api/finance/records", nil)
	records := decodeBody[[]api.RecordDTO](t, list)
	require.Len(t, records, 1)
	assert.Equal(t, "INCOME", records[0].Category)
	assert.Equal(t, "Ticket sale: Opening Gala", records[0].Description)
}

func TestAPI_SellTickets_Insufficient(t *testing.T) {
	srv, h := newTestServer(t)
	addTestPremiere(t, h, "gala-1", 100)

	first := doJSON(t, http.MethodPost, srv.URL+"/api/premieres/gala-1/tickets/sell",
		api.TicketRequest{Count: 60})
	require.Equal(t, http.StatusOK, first.StatusCode)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/premieres/gala-1/tickets/sell",
		api.TicketRequest{Count: 50})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody[api.ErrorResponse](t, resp)
	assert.Contains(t, body.Details, "requested 50, available 40")

	// No ledger entry for the failed sale
	list := doJSON(t, http.MethodGet, srv.URL+"/api/finance/records", nil)
	records := decodeBody[[]api.RecordDTO](t, list)
	assert.Len(t, records, 1)
}

func TestAPI_ReturnTickets(t *testing.T) {
	srv, h := newTestServer(t)
	addTestPremiere(t, h, "gala-1", 100)
	doJSON(t, http.MethodPost, srv.URL+"/api/premieres/gala-1/tickets/sell", api.TicketRequest{Count: 60})

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/premieres/gala-1/tickets/return",
		api.TicketRequest{Count: 20})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	op := decodeBody[api.TicketOperationDTO](t, resp)
	assert.Equal(t, 40, op.Sold)
	assert.Equal(t, 60, op.Available)
}

func TestAPI_ReturnTickets_OverReturn(t *testing.T) {
	srv, h := newTestServer(t)
	addTestPremiere(t, h, "gala-1", 100)
	doJSON(t, http.MethodPost, srv.URL+"/api/premieres/gala-1/tickets/sell", api.TicketRequest{Count: 10})

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/premieres/gala-1/tickets/return",
		api.TicketRequest{Count: 11})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_SellTickets_InvalidCount(t *testing.T) {
	srv, h := newTestServer(t)
	addTestPremiere(t, h, "gala-1", 100)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/premieres/gala-1/tickets/sell",
		api.TicketRequest{Count: 0})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// GUEST, REVIEW AND BUDGET ENDPOINT TESTS
// =============================================================================

func TestAPI_AddGuest(t *testing.T) {
	srv, h := newTestServer(t)
	addTestPremiere(t, h, "gala-1", 100)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/premieres/gala-1/guests",
		api.GuestRequest{Name: "Ada", IsAdult: true})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	get := doJSON(t, http.MethodGet, srv.URL+"/api/premieres/gala-1", nil)
	dto := decodeBody[api.PremiereDTO](t, get)
	assert.Equal(t, 1, dto.Guests)
}

func TestAPI_AddGuest_Underage(t *testing.T) {
	srv, h := newTestServer(t)
	addTestPremiere(t, h, "gala-1", 100)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/premieres/gala-1/guests",
		api.GuestRequest{Name: "Kid", IsAdult: false})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ContributeBudget(t *testing.T) {
	srv, h := newTestServer(t)
	addTestPremiere(t, h, "gala-1", 100)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/premieres/gala-1/budget",
		api.BudgetRequest{Amount: "250"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	get := doJSON(t, http.MethodGet, srv.URL+"/api/premieres/gala-1", nil)
	dto := decodeBody[api.PremiereDTO](t, get)
	assert.Equal(t, "250.00", dto.Budget)

	list := doJSON(t, http.MethodGet, srv.URL+"/api/finance/records", nil)
	records := decodeBody[[]api.RecordDTO](t, list)
	require.Len(t, records, 1)
	assert.Equal(t, "BUDGET", records[0].Category)
}

// =============================================================================
// FINANCE ENDPOINT TESTS
// =============================================================================

func TestAPI_CreateRecord_GeneratesID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/finance/records", api.CreateRecordRequest{
		Category:    "INCOME",
		Amount:      "100.50",
		Description: "box office",
		Date:        "04.05.2026",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	rec := decodeBody[api.RecordDTO](t, resp)
	assert.Len(t, rec.ID, 8, "id is generated when absent")
	assert.Equal(t, "100.50", rec.Amount)
	assert.Equal(t, "04.05.2026", rec.Date)
}

func TestAPI_CreateRecord_UnknownCategory(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/finance/records", api.CreateRecordRequest{
		Category: "BRIBES", Amount: "100", Description: "x", Date: "04.05.2026",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_CreateRecord_NegativeAmount(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/finance/records", api.CreateRecordRequest{
		Category: "INCOME", Amount: "-5", Description: "x", Date: "04.05.2026",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[api.ErrorResponse](t, resp)
	assert.Equal(t, "amount must be greater than 0", body.Details)
}

func TestAPI_DeleteRecord(t *testing.T) {
	srv, _ := newTestServer(t)

	created := doJSON(t, http.MethodPost, srv.URL+"/api/finance/records", api.CreateRecordRequest{
		ID: "r-1", Category: "INCOME", Amount: "100", Description: "x", Date: "04.05.2026",
	})
	require.Equal(t, http.StatusCreated, created.StatusCode)

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/finance/records/r-1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	again := doJSON(t, http.MethodDelete, srv.URL+"/api/finance/records/r-1", nil)
	assert.Equal(t, http.StatusNotFound, again.StatusCode)
}

func TestAPI_GetReport_Empty(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/finance/report", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_GetReport_Totals(t *testing.T) {
	srv, h := newTestServer(t)
	addTestPremiere(t, h, "gala-1", 100)
	doJSON(t, http.MethodPost, srv.URL+"/api/premieres/gala-1/tickets/sell", api.TicketRequest{Count: 60})
	doJSON(t, http.MethodPost, srv.URL+"/api/finance/records", api.CreateRecordRequest{
		Category: "EXPENSE", Amount: "40", Description: "catering", Date: "04.05.2026",
	})

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/finance/report", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rep := decodeBody[api.ReportDTO](t, resp)
	assert.Equal(t, "600.00", rep.TotalIncome)
	assert.Equal(t, "40.00", rep.TotalExpenses)
	assert.Equal(t, "560.00", rep.Net)
	assert.Equal(t, int64(60), rep.TicketsSold)
	assert.Len(t, rep.Records, 2)
}

func TestAPI_PremiereReport(t *testing.T) {
	srv, h := newTestServer(t)
	addTestPremiere(t, h, "gala-1", 100)
	doJSON(t, http.MethodPost, srv.URL+"/api/premieres/gala-1/tickets/sell", api.TicketRequest{Count: 60})

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/premieres/gala-1/report", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rep := decodeBody[api.PremiereReportDTO](t, resp)
	assert.Equal(t, "gala-1", rep.PremiereID)
	assert.Contains(t, rep.Report, fmt.Sprintf("Tickets sold: %d", 60))
}
