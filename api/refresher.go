/*
refresher.go - Background agent roster refresher

PURPOSE:

	Periodically pulls the agent roster from the CRM and replaces the
	login directory's contents, so new agents can log in without a server
	restart.

DESIGN:
  - Runs a background goroutine with configurable refresh interval
  - Refreshes once immediately on Start
  - A failed fetch keeps the previous roster; login never goes dark
    because the CRM hiccupped

USAGE:

	refresher := NewAgentRefresher(client, directory)
	refresher.Start()
	// ... later
	refresher.Stop()

SEE ALSO:
  - auth/auth.go: Directory being refreshed
  - crm/client.go: FetchAgents
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/hcs/commission-engine/auth"
)

// AgentRefresher keeps the login directory in sync with the CRM.
type AgentRefresher struct {
	CRM             DealSource
	Directory       *auth.Directory
	RefreshInterval time.Duration

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewAgentRefresher creates a refresher with the default interval.
func NewAgentRefresher(dealSource DealSource, dir *auth.Directory) *AgentRefresher {
	return &AgentRefresher{
		CRM:             dealSource,
		Directory:       dir,
		RefreshInterval: 15 * time.Minute,
		stop:            make(chan bool),
	}
}

// Start begins the refresher.
func (ar *AgentRefresher) Start() {
	ar.mu.Lock()
	defer ar.mu.Unlock()

	ar.ticker = time.NewTicker(ar.RefreshInterval)
	ar.wg.Add(1)

	go ar.run()

	log.Printf("[Refresher] Started with refresh interval: %v", ar.RefreshInterval)
}

// Stop stops the refresher.
func (ar *AgentRefresher) Stop() {
	ar.mu.Lock()
	defer ar.mu.Unlock()

	if ar.ticker != nil {
		ar.ticker.Stop()
		close(ar.stop)
		ar.wg.Wait()
		log.Println("[Refresher] Stopped")
	}
}

func (ar *AgentRefresher) run() {
	defer ar.wg.Done()

	// Refresh immediately on start
	ar.Refresh(context.Background())

	for {
		select {
		case <-ar.ticker.C:
			ar.Refresh(context.Background())
		case <-ar.stop:
			return
		}
	}
}

// Refresh pulls the roster once and swaps it into the directory.
func (ar *AgentRefresher) Refresh(ctx context.Context) {
	agents, err := ar.CRM.FetchAgents(ctx)
	if err != nil {
		log.Printf("[Refresher] Roster fetch failed, keeping previous roster: %v", err)
		return
	}

	entries := make([]auth.AgentEntry, 0, len(agents))
	for _, a := range agents {
		entries = append(entries, auth.AgentEntry{
			Username: a.Username,
			Name:     a.FullName(),
			AgentID:  a.UserID.String(),
		})
	}
	ar.Directory.SetAgents(entries)

	log.Printf("[Refresher] Roster refreshed: %d agents", len(entries))
}
