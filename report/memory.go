package report

import (
	"context"
	"sort"
	"sync"

	"github.com/hcs/commission-engine/commission"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	reports   map[string]Report
	summaries map[string][]commission.AgentSummary
	dates     []string // sorted ascending
}

func NewMemory() *Memory {
	return &Memory{
		reports:   make(map[string]Report),
		summaries: make(map[string][]commission.AgentSummary),
	}
}

// Upsert replaces or appends the report for its UploadDate.
func (m *Memory) Upsert(_ context.Context, r Report, summaries []commission.AgentSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.reports[r.UploadDate]; !exists {
		// Ordered insert keeps dates sorted without a full re-sort.
		i := sort.SearchStrings(m.dates, r.UploadDate)
		m.dates = append(m.dates, "")
		copy(m.dates[i+1:], m.dates[i:])
		m.dates[i] = r.UploadDate
	}

	m.reports[r.UploadDate] = r
	m.summaries[r.UploadDate] = append([]commission.AgentSummary(nil), summaries...)
	return nil
}

func (m *Memory) Latest(_ context.Context) (Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.dates) == 0 {
		return Report{}, ErrNotFound
	}
	return m.reports[m.dates[len(m.dates)-1]], nil
}

func (m *Memory) Get(_ context.Context, uploadDate string) (Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reports[uploadDate]
	if !ok {
		return Report{}, ErrNotFound
	}
	return r, nil
}

func (m *Memory) All(_ context.Context) ([]Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Report, 0, len(m.dates))
	for _, d := range m.dates {
		out = append(out, m.reports[d])
	}
	return out, nil
}

func (m *Memory) Summaries(_ context.Context, uploadDate string) ([]commission.AgentSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, ok := m.summaries[uploadDate]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]commission.AgentSummary(nil), rows...), nil
}
