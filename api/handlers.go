/*
handlers.go - HTTP API handlers for the commission dashboard

PURPOSE:

	Exposes the commission engine via REST API. Handles HTTP
	request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:

	Auth:
	  POST   /api/auth/login             Exchange credentials for a token

	Statements:
	  POST   /api/statements             Upload a payroll statement (admin)

	Reports:
	  GET    /api/reports                Full report history
	  GET    /api/reports/latest         Most recent report
	  GET    /api/reports/{date}/summaries Per-agent rows behind a report

	Cycles:
	  GET    /api/cycles                 Full cycle table
	  GET    /api/cycles/current         Cycle containing today
	  GET    /api/cycles/previous        Cycle before the current one

	Dashboards:
	  GET    /api/agents                 CRM roster (admin)
	  GET    /api/agents/{id}/dashboard  One agent's composite dashboard
	  GET    /api/deals/live             Live deal counters (admin)
	  GET    /api/vendors                Lead vendor reference data

ARCHITECTURE:

	Handler struct holds all dependencies:
	- Reports: report history store
	- Auth/Signer: credential lookup and session tokens
	- CRM: deal query facade
	- Calendar: cycle table
	- Now: injectable clock, so tests pin "today"

REQUEST FLOW:
 1. Parse HTTP request
 2. Validate input
 3. Call domain logic
 4. Serialize response
 5. Handle errors

ERROR HANDLING:

	Errors are returned as JSON with appropriate HTTP status:
	- 400: Validation errors, unreadable or empty statements
	- 401: Bad credentials or token
	- 403: Role or ownership violations
	- 404: No report / no active cycle
	- 502: CRM upstream failures

SEE ALSO:
  - dto.go: Request/response data structures
  - middleware.go: Session middleware
  - server.go: Router setup
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hcs/commission-engine/auth"
	"github.com/hcs/commission-engine/commission"
	"github.com/hcs/commission-engine/crm"
	"github.com/hcs/commission-engine/report"
	"github.com/hcs/commission-engine/statement"
)

// maxUploadBytes caps statement uploads at 20 MiB.
const maxUploadBytes = 20 << 20

// DealSource is the slice of the CRM facade the handlers consume.
type DealSource interface {
	FetchAgents(ctx context.Context) ([]crm.Agent, error)
	FetchAgentDeals(ctx context.Context, agentID, dateFrom, dateTo string) ([]crm.DealListItem, error)
	FetchAllDealsToday(ctx context.Context, today time.Time) ([]crm.DealListItem, error)
}

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Reports   report.Store
	Auth      auth.Authenticator
	Signer    *auth.Signer
	CRM       DealSource
	Calendar  *commission.Calendar
	Directory *auth.Directory

	// Now supplies "today" everywhere a date is implied, so tests can
	// pin the clock. Explicit ?today= query params still win.
	Now func() time.Time
}

// NewHandler creates a new handler wired to real time.
func NewHandler(reports report.Store, authn auth.Authenticator, signer *auth.Signer,
	dealSource DealSource, cal *commission.Calendar, dir *auth.Directory) *Handler {
	return &Handler{
		Reports:   reports,
		Auth:      authn,
		Signer:    signer,
		CRM:       dealSource,
		Calendar:  cal,
		Directory: dir,
		Now:       time.Now,
	}
}

// today resolves the effective date for a request: an explicit ?today=
// override, else the injected clock.
func (h *Handler) today(r *http.Request) (time.Time, error) {
	if q := r.URL.Query().Get("today"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			return time.Time{}, err
		}
		return t, nil
	}
	return h.Now(), nil
}

// =============================================================================
// AUTH
// =============================================================================

// Login exchanges credentials for a session token.
// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	session, err := h.Auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Incorrect credentials", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Login failed", err)
		return
	}

	token, err := h.Signer.Issue(session, h.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:   token,
		Name:    session.Name,
		Role:    string(session.Role),
		AgentID: session.AgentID,
	})
}

// =============================================================================
// STATEMENT UPLOAD
// =============================================================================

// UploadStatement ingests a payroll statement and upserts the report
// for the upload date.
// POST /api/statements  (multipart: file, optional upload_date)
func (h *Handler) UploadStatement(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart upload", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing statement file", err)
		return
	}
	defer file.Close()

	uploadDate := r.FormValue("upload_date")
	if uploadDate == "" {
		uploadDate = h.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", uploadDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid upload_date format (use YYYY-MM-DD)", err)
		return
	}

	result, err := statement.Process(file, header.Filename)
	if err != nil {
		switch {
		case errors.Is(err, statement.ErrSourceUnreadable):
			writeError(w, http.StatusBadRequest, "The uploaded file could not be read", err)
		case errors.Is(err, statement.ErrEmptyStatement):
			writeError(w, http.StatusBadRequest, "The uploaded file contains no data", nil)
		case errors.Is(err, statement.ErrNoUsableRows):
			writeError(w, http.StatusBadRequest, "The uploaded file contains no usable rows", nil)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to process statement", err)
		}
		return
	}

	batchID := uuid.New()
	rep := report.FromTotals(uploadDate, batchID, result.Totals)
	if err := h.Reports.Upsert(r.Context(), rep, result.Summary); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save report", err)
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		UploadDate: uploadDate,
		BatchID:    batchID.String(),
		Summary:    toSummaryDTOs(result.Summary),
		Totals:     toTotalsDTO(result.Totals),
	})
}

// =============================================================================
// REPORTS
// =============================================================================

// ListReports returns the full history, oldest first.
// GET /api/reports
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Reports.All(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list reports", err)
		return
	}

	dtos := make([]ReportDTO, len(reports))
	for i, rep := range reports {
		dtos[i] = toReportDTO(rep)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// LatestReport returns the most recent report.
// GET /api/reports/latest
func (h *Handler) LatestReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Reports.Latest(r.Context())
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No reports uploaded yet", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load latest report", err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(rep))
}

// ReportSummaries returns the per-agent rows behind one report.
// GET /api/reports/{date}/summaries
func (h *Handler) ReportSummaries(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	summaries, err := h.Reports.Summaries(r.Context(), date)
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No report for that date", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load summaries", err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTOs(summaries))
}

// =============================================================================
// CYCLES
// =============================================================================

// ListCycles returns the full cycle table.
// GET /api/cycles
func (h *Handler) ListCycles(w http.ResponseWriter, r *http.Request) {
	cycles := h.Calendar.Cycles()
	dtos := make([]CycleDTO, len(cycles))
	for i, c := range cycles {
		dtos[i] = toCycleDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CurrentCycle returns the cycle containing today.
// GET /api/cycles/current
func (h *Handler) CurrentCycle(w http.ResponseWriter, r *http.Request) {
	today, err := h.today(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid today format (use YYYY-MM-DD)", err)
		return
	}

	cycle, err := h.Calendar.Current(today)
	if err != nil {
		writeError(w, http.StatusNotFound, "No active commission cycle", nil)
		return
	}
	writeJSON(w, http.StatusOK, toCycleDTO(cycle))
}

// PreviousCycle returns the cycle before the current one.
// GET /api/cycles/previous
func (h *Handler) PreviousCycle(w http.ResponseWriter, r *http.Request) {
	today, err := h.today(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid today format (use YYYY-MM-DD)", err)
		return
	}

	cycle, err := h.Calendar.Previous(today)
	if err != nil {
		writeError(w, http.StatusNotFound, "No previous commission cycle", nil)
		return
	}
	writeJSON(w, http.StatusOK, toCycleDTO(cycle))
}

// =============================================================================
// AGENTS & DASHBOARDS
// =============================================================================

// ListAgents returns the CRM roster.
// GET /api/agents
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	agents := h.Directory.Agents()
	sort.Slice(agents, func(i, j int) bool { return agents[i].Username < agents[j].Username })
	writeJSON(w, http.StatusOK, toAgentDTOs(agents))
}

// AgentDashboard returns one agent's composite dashboard: current-cycle
// deals with tier, payout projection and milestone progress, the
// previous cycle's settled payout, and rolling window deal counts.
// GET /api/agents/{id}/dashboard
func (h *Handler) AgentDashboard(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "id")

	// Agents see their own dashboard only; admins see any.
	session, _ := SessionFrom(r.Context())
	if session.Role != auth.RoleAdmin && session.AgentID != agentID {
		writeError(w, http.StatusForbidden, "Cannot view another agent's dashboard", nil)
		return
	}

	today, err := h.today(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid today format (use YYYY-MM-DD)", err)
		return
	}

	cycle, err := h.Calendar.Current(today)
	if err != nil {
		writeError(w, http.StatusNotFound, "No active commission cycle", nil)
		return
	}

	fetch := func(from, to time.Time) ([]crm.DealListItem, error) {
		return h.CRM.FetchAgentDeals(r.Context(), agentID,
			from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	deals, err := fetch(cycle.Start, cycle.End)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Failed to fetch deals from CRM", err)
		return
	}

	// The first cycle in the calendar has no predecessor; the block is
	// simply absent then.
	var prevDTO *CyclePayoutDTO
	if prev, prevErr := h.Calendar.Previous(today); prevErr == nil {
		prevDeals, err := fetch(prev.Start, prev.End)
		if err != nil {
			writeError(w, http.StatusBadGateway, "Failed to fetch deals from CRM", err)
			return
		}
		dto := toCyclePayoutDTO(prev, len(prevDeals))
		prevDTO = &dto
	}

	windows := []time.Time{
		commission.DateOnly(today),
		commission.StartOfWeek(today),
		commission.StartOfMonth(today),
		commission.StartOfYear(today),
	}
	windowCounts := make([]int, len(windows))
	for i, start := range windows {
		windowDeals, err := fetch(start, today)
		if err != nil {
			writeError(w, http.StatusBadGateway, "Failed to fetch deals from CRM", err)
			return
		}
		windowCounts[i] = len(windowDeals)
	}

	count := len(deals)
	tier := commission.TierFor(count)
	progress := commission.ProgressToNextTier(count)

	writeJSON(w, http.StatusOK, AgentDashboardDTO{
		AgentID: agentID,
		Cycle:   toCycleDTO(cycle),
		Deals:   count,
		Tier:    TierDTO{Rate: tier.Rate.String(), Label: tier.Label, Color: tier.Color},
		Bonus:   commission.BonusFor(count).String(),
		Payout:  commission.PayoutFor(count).String(),
		TierProgress: ProgressDTO{
			NextTarget: progress.NextTarget,
			Percent:    progress.Percent,
		},
		BonusProgress: commission.ProgressToBonus(count),
		PreviousCycle: prevDTO,
		Daily:         windowCounts[0],
		Weekly:        windowCounts[1],
		Monthly:       windowCounts[2],
		Yearly:        windowCounts[3],
		Items:         toDealDTOs(deals),
	})
}

// LiveDeals returns rolling deal counters for the admin dashboard.
// GET /api/deals/live
func (h *Handler) LiveDeals(w http.ResponseWriter, r *http.Request) {
	today, err := h.today(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid today format (use YYYY-MM-DD)", err)
		return
	}

	deals, err := h.CRM.FetchAllDealsToday(r.Context(), today)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Failed to fetch deals from CRM", err)
		return
	}

	var soldDates []time.Time
	for _, d := range deals {
		if sold, ok := d.SoldAt(); ok {
			soldDates = append(soldDates, sold)
		}
	}
	counts := commission.CountByWindow(soldDates, today)

	writeJSON(w, http.StatusOK, LiveDealsDTO{
		Daily:            counts.Daily,
		Weekly:           counts.Weekly,
		Monthly:          counts.Monthly,
		Yearly:           counts.Yearly,
		DailyNetProfit:   netProfit(counts.Daily),
		WeeklyNetProfit:  netProfit(counts.Weekly),
		MonthlyNetProfit: netProfit(counts.Monthly),
		YearlyNetProfit:  netProfit(counts.Yearly),
		Items:            toDealDTOs(deals),
	})
}

// =============================================================================
// VENDORS
// =============================================================================

// ListVendors returns the lead vendor reference tables.
// GET /api/vendors
func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	keys := make([]string, 0, len(commission.VendorNames))
	for k := range commission.VendorNames {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	dtos := make([]VendorDTO, len(keys))
	for i, k := range keys {
		dtos[i] = VendorDTO{
			Key:  k,
			Name: commission.VendorNames[k],
			Rate: commission.VendorRates[k],
			CPL:  commission.VendorCPLs[k],
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

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
