/*
Package crm is the façade over the TLD CRM egress API.

PURPOSE:

	Fetches raw deal and agent records from the CRM over HTTP. The core
	engine only consumes counts and sale dates from these records; this
	package owns authentication headers, pagination, timeouts, and the
	wire envelope, so nothing upstream of it knows the CRM exists.

PAGINATION:

	The policies endpoint pages via navigate.next, an absolute URL that
	embeds the original query. Pages are followed until next is absent,
	with a seen-URL set guarding against navigation loops from a
	misbehaving upstream.

FAILURE:

	Any transport or decode failure wraps ErrUpstream. Callers treat
	upstream failure as "no data right now"; it never corrupts stored
	report history because this path never writes.
*/
package crm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUpstream is wrapped by every failure to fetch or decode from the
// CRM.
var ErrUpstream = errors.New("crm upstream failure")

const (
	defaultTimeout = 10 * time.Second

	// Column sets the dashboards consume. Requesting only these keeps
	// responses small on large books of business.
	dealColumns = "policy_id,date_created,date_converted,date_sold,date_posted," +
		"carrier,product,duration,premium,policy_number," +
		"lead_first_name,lead_last_name,lead_state,lead_vendor_name," +
		"agent_id,agent_name"
	agentDealColumns = "policy_id,date_sold,carrier,product,premium," +
		"lead_first_name,lead_last_name,lead_state,lead_vendor_name," +
		"agent_id,agent_name"
)

// Config carries the CRM endpoints and credentials.
type Config struct {
	PoliciesURL string // egress policies endpoint
	UsersURL    string // egress users endpoint
	APIID       string // tld-api-id header
	APIKey      string // tld-api-key header
	Timeout     time.Duration
}

// Client is a TLD CRM egress API client. Safe for concurrent use.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a Client. A zero Timeout gets the default.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// DealListItem is one policy record from the egress API. The core only
// reads DateSold and AgentID; the rest feeds the live-deals table.
type DealListItem struct {
	PolicyID       json.Number `json:"policy_id"`
	DateCreated    string      `json:"date_created"`
	DateConverted  string      `json:"date_converted"`
	DateSold       string      `json:"date_sold"`
	DatePosted     string      `json:"date_posted"`
	Carrier        string      `json:"carrier"`
	Product        string      `json:"product"`
	Duration       string      `json:"duration"`
	Premium        string      `json:"premium"`
	PolicyNumber   string      `json:"policy_number"`
	LeadFirstName  string      `json:"lead_first_name"`
	LeadLastName   string      `json:"lead_last_name"`
	LeadState      string      `json:"lead_state"`
	LeadVendorName string      `json:"lead_vendor_name"`
	AgentID        json.Number `json:"agent_id"`
	AgentName      string      `json:"agent_name"`
}

// SoldAt parses the sale timestamp. The CRM emits either a date or a
// date-time; either way only the date matters downstream.
func (d DealListItem) SoldAt() (time.Time, bool) {
	s := strings.TrimSpace(d.DateSold)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Agent is one user record from the egress users endpoint.
type Agent struct {
	UserID    json.Number `json:"user_id"`
	Username  string      `json:"username"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
}

// FullName joins first and last name for display.
func (a Agent) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// envelope is the CRM's response wrapper.
type envelope[T any] struct {
	Response struct {
		Results  []T `json:"results"`
		Navigate struct {
			Next string `json:"next"`
		} `json:"navigate"`
	} `json:"response"`
}

// =============================================================================
// FETCHES
// =============================================================================

// FetchAgents returns all CRM users.
func (c *Client) FetchAgents(ctx context.Context) ([]Agent, error) {
	params := url.Values{}
	params.Set("limit", "1000")

	env, err := get[Agent](ctx, c, c.cfg.UsersURL, params)
	if err != nil {
		return nil, err
	}
	return env.Response.Results, nil
}

// FetchAgentDeals returns one agent's deals sold within [dateFrom,
// dateTo], ISO dates inclusive. Single page; an agent's range query
// fits comfortably in one.
func (c *Client) FetchAgentDeals(ctx context.Context, agentID, dateFrom, dateTo string) ([]DealListItem, error) {
	params := url.Values{}
	params.Set("agent_id", agentID)
	params.Set("date_sold_greater_equal", dateFrom)
	params.Set("date_sold_less_equal", dateTo)
	params.Set("limit", "1000")
	params.Set("columns", agentDealColumns)

	env, err := get[DealListItem](ctx, c, c.cfg.PoliciesURL, params)
	if err != nil {
		return nil, err
	}
	return env.Response.Results, nil
}

// FetchAllDealsToday returns every deal created from today onward,
// following navigate.next across pages. today is passed in explicitly.
func (c *Client) FetchAllDealsToday(ctx context.Context, today time.Time) ([]DealListItem, error) {
	params := url.Values{}
	params.Set("date_from", today.Format("2006-01-02"))
	params.Set("limit", "5000")
	params.Set("columns", dealColumns)

	var results []DealListItem
	next := c.cfg.PoliciesURL
	seen := make(map[string]bool)

	for next != "" && !seen[next] {
		seen[next] = true

		env, err := get[DealListItem](ctx, c, next, params)
		if err != nil {
			return nil, err
		}
		if len(env.Response.Results) == 0 {
			break
		}
		results = append(results, env.Response.Results...)

		// navigate.next embeds the full query; params only apply to the
		// first request.
		next = env.Response.Navigate.Next
		params = nil
	}

	return results, nil
}

// get issues one authenticated GET and decodes the envelope.
func get[T any](ctx context.Context, c *Client, rawURL string, params url.Values) (envelope[T], error) {
	var env envelope[T]

	u := rawURL
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		u = rawURL + sep + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return env, fmt.Errorf("%w: build request: %v", ErrUpstream, err)
	}
	req.Header.Set("tld-api-id", c.cfg.APIID)
	req.Header.Set("tld-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return env, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return env, fmt.Errorf("%w: status %d from %s", ErrUpstream, resp.StatusCode, rawURL)
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return env, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	return env, nil
}
