/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:

	Defines the JSON structures for API communication. These types decouple
	the internal domain model from the external API contract. Dollar
	amounts cross the wire as decimal strings to avoid float drift in
	clients.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/hcs/commission-engine/auth"
	"github.com/hcs/commission-engine/commission"
	"github.com/hcs/commission-engine/crm"
	"github.com/hcs/commission-engine/report"
)

// =============================================================================
// AUTH
// =============================================================================

// LoginRequest is the login form body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session token and display identity.
type LoginResponse struct {
	Token   string `json:"token"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	AgentID string `json:"agent_id,omitempty"`
}

// =============================================================================
// REPORTS
// =============================================================================

// ReportDTO represents one report in API responses.
type ReportDTO struct {
	UploadDate   string `json:"upload_date"`
	BatchID      string `json:"batch_id"`
	TotalDeals   int    `json:"total_deals"`
	AgentPayout  string `json:"agent_payout"`
	OwnerRevenue string `json:"owner_revenue"`
	OwnerProfit  string `json:"owner_profit"`
}

func toReportDTO(r report.Report) ReportDTO {
	return ReportDTO{
		UploadDate:   r.UploadDate,
		BatchID:      r.BatchID.String(),
		TotalDeals:   r.TotalDeals,
		AgentPayout:  r.AgentPayout.String(),
		OwnerRevenue: r.OwnerRevenue.String(),
		OwnerProfit:  r.OwnerProfit.String(),
	}
}

// AgentSummaryDTO is one leaderboard row.
type AgentSummaryDTO struct {
	Agent       string `json:"agent"`
	PaidDeals   int    `json:"paid_deals"`
	AgentPayout string `json:"agent_payout"`
	OwnerProfit string `json:"owner_profit"`
	NetPaid     string `json:"net_paid"`
}

func toSummaryDTOs(summaries []commission.AgentSummary) []AgentSummaryDTO {
	dtos := make([]AgentSummaryDTO, len(summaries))
	for i, s := range summaries {
		dtos[i] = AgentSummaryDTO{
			Agent:       s.Agent,
			PaidDeals:   s.PaidDeals,
			AgentPayout: s.AgentPayout.String(),
			OwnerProfit: s.OwnerProfit.String(),
			NetPaid:     s.NetPaid.String(),
		}
	}
	return dtos
}

// UploadResponse is the result of a successful statement upload.
type UploadResponse struct {
	UploadDate string            `json:"upload_date"`
	BatchID    string            `json:"batch_id"`
	Summary    []AgentSummaryDTO `json:"summary"`
	Totals     TotalsDTO         `json:"totals"`
}

// TotalsDTO is the statement-wide aggregate.
type TotalsDTO struct {
	Deals        int    `json:"deals"`
	AgentPayout  string `json:"agent_payout"`
	OwnerRevenue string `json:"owner_revenue"`
	OwnerProfit  string `json:"owner_profit"`
}

func toTotalsDTO(t commission.StatementTotals) TotalsDTO {
	return TotalsDTO{
		Deals:        t.Deals,
		AgentPayout:  t.AgentPayout.String(),
		OwnerRevenue: t.OwnerRevenue.String(),
		OwnerProfit:  t.OwnerProfit.String(),
	}
}

// =============================================================================
// CYCLES
// =============================================================================

// CycleDTO represents one commission cycle.
type CycleDTO struct {
	Index int    `json:"index"`
	Start string `json:"start"`
	End   string `json:"end"`
	Pay   string `json:"pay"`
}

func toCycleDTO(c commission.Cycle) CycleDTO {
	return CycleDTO{
		Index: c.Index,
		Start: c.Start.Format("2006-01-02"),
		End:   c.End.Format("2006-01-02"),
		Pay:   c.Pay.Format("2006-01-02"),
	}
}

// =============================================================================
// DASHBOARD
// =============================================================================

// TierDTO is the agent's current rate band.
type TierDTO struct {
	Rate  string `json:"rate"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// ProgressDTO is progress toward the next milestone.
type ProgressDTO struct {
	NextTarget *int    `json:"next_target"`
	Percent    float64 `json:"percent"`
}

// DealDTO is one CRM deal row for the live tables.
type DealDTO struct {
	PolicyID      string `json:"policy_id"`
	DateSold      string `json:"date_sold"`
	Carrier       string `json:"carrier"`
	Product       string `json:"product"`
	Premium       string `json:"premium"`
	LeadFirstName string `json:"lead_first_name"`
	LeadLastName  string `json:"lead_last_name"`
	LeadState     string `json:"lead_state"`
	LeadVendor    string `json:"lead_vendor_name"`
	AgentID       string `json:"agent_id"`
	AgentName     string `json:"agent_name"`
}

func toDealDTOs(deals []crm.DealListItem) []DealDTO {
	dtos := make([]DealDTO, len(deals))
	for i, d := range deals {
		dtos[i] = DealDTO{
			PolicyID:      d.PolicyID.String(),
			DateSold:      d.DateSold,
			Carrier:       d.Carrier,
			Product:       d.Product,
			Premium:       d.Premium,
			LeadFirstName: d.LeadFirstName,
			LeadLastName:  d.LeadLastName,
			LeadState:     d.LeadState,
			LeadVendor:    d.LeadVendorName,
			AgentID:       d.AgentID.String(),
			AgentName:     d.AgentName,
		}
	}
	return dtos
}

// CyclePayoutDTO is one settled cycle's deal count and payout math.
type CyclePayoutDTO struct {
	Cycle  CycleDTO `json:"cycle"`
	Deals  int      `json:"deals"`
	Tier   TierDTO  `json:"tier"`
	Bonus  string   `json:"bonus"`
	Payout string   `json:"payout"`
}

func toCyclePayoutDTO(c commission.Cycle, deals int) CyclePayoutDTO {
	tier := commission.TierFor(deals)
	return CyclePayoutDTO{
		Cycle:  toCycleDTO(c),
		Deals:  deals,
		Tier:   TierDTO{Rate: tier.Rate.String(), Label: tier.Label, Color: tier.Color},
		Bonus:  commission.BonusFor(deals).String(),
		Payout: commission.PayoutFor(deals).String(),
	}
}

// AgentDashboardDTO is the composite payload behind the agent view:
// the current cycle's payout math, the previous cycle's settled numbers,
// and rolling today / week / month / year deal counts.
type AgentDashboardDTO struct {
	AgentID       string          `json:"agent_id"`
	Cycle         CycleDTO        `json:"cycle"`
	Deals         int             `json:"deals"`
	Tier          TierDTO         `json:"tier"`
	Bonus         string          `json:"bonus"`
	Payout        string          `json:"payout"`
	TierProgress  ProgressDTO     `json:"tier_progress"`
	BonusProgress float64         `json:"bonus_progress"`
	PreviousCycle *CyclePayoutDTO `json:"previous_cycle,omitempty"`
	Daily         int             `json:"daily"`
	Weekly        int             `json:"weekly"`
	Monthly       int             `json:"monthly"`
	Yearly        int             `json:"yearly"`
	Items         []DealDTO       `json:"items"`
}

// LiveDealsDTO is the admin live counters payload. Each window pairs the
// deal count with its net profit at the per-deal margin.
type LiveDealsDTO struct {
	Daily            int       `json:"daily"`
	Weekly           int       `json:"weekly"`
	Monthly          int       `json:"monthly"`
	Yearly           int       `json:"yearly"`
	DailyNetProfit   string    `json:"daily_net_profit"`
	WeeklyNetProfit  string    `json:"weekly_net_profit"`
	MonthlyNetProfit string    `json:"monthly_net_profit"`
	YearlyNetProfit  string    `json:"yearly_net_profit"`
	Items            []DealDTO `json:"items"`
}

// netProfit is the agency margin on a window's deal count.
func netProfit(count int) string {
	return commission.OwnerProfitPerDeal.Mul(decimal.NewFromInt(int64(count))).String()
}

// AgentDTO is one roster entry.
type AgentDTO struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	AgentID  string `json:"agent_id"`
}

func toAgentDTOs(agents []auth.AgentEntry) []AgentDTO {
	dtos := make([]AgentDTO, len(agents))
	for i, a := range agents {
		dtos[i] = AgentDTO{Username: a.Username, Name: a.Name, AgentID: a.AgentID}
	}
	return dtos
}

// =============================================================================
// VENDORS
// =============================================================================

// VendorDTO is one lead vendor with its buy economics.
type VendorDTO struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Rate int    `json:"rate,omitempty"`
	CPL  int    `json:"cpl,omitempty"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
