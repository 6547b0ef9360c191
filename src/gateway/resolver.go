package gateway

import (
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// State holds the gateway candidates and the currently active URL. Active
// always holds the last known-good URL; it is never cleared, so the node can
// keep attempting best-effort calls through an outage.
type State struct {
	Active     string   `json:"active"`
	Candidates []string `json:"candidates"`
}

// Resolver maintains the set of candidate gateway endpoints and the currently
// active one. It is the single writer of its State.
type Resolver struct {
	l      sync.Mutex
	state  State
	client *http.Client
	logger *logrus.Entry
}

// NewResolver creates a Resolver for the given candidate list. The first
// candidate is the preferred gateway and becomes active before any probing
// happens.
func NewResolver(candidates []string, timeout time.Duration, logger *logrus.Entry) *Resolver {
	return &Resolver{
		state: State{
			Active:     candidates[0],
			Candidates: candidates,
		},
		client: &http.Client{Timeout: timeout},
		logger: logger.WithField("component", "gateway"),
	}
}

// Resolve probes each candidate in list order with a bounded-time health
// check. The first candidate that responds healthy becomes active and
// resolution stops. If no candidate responds, the previous active URL is
// retained and the failure is only logged; Resolve never returns an error to
// the caller.
func (r *Resolver) Resolve() string {
	for _, gw := range r.candidates() {
		resp, err := r.client.Get(gw + "/health")
		if err != nil {
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			r.setActive(gw)
			r.logger.WithField("gateway", gw).Info("Connected")
			return gw
		}
	}

	active := r.Current()
	r.logger.WithField("gateway", active).Warn("All gateways unreachable")
	return active
}

// Current returns the active gateway URL without probing.
func (r *Resolver) Current() string {
	r.l.Lock()
	defer r.l.Unlock()
	return r.state.Active
}

// GetState returns a copy of the gateway state.
func (r *Resolver) GetState() State {
	r.l.Lock()
	defer r.l.Unlock()

	candidates := make([]string, len(r.state.Candidates))
	copy(candidates, r.state.Candidates)

	return State{
		Active:     r.state.Active,
		Candidates: candidates,
	}
}

func (r *Resolver) candidates() []string {
	r.l.Lock()
	defer r.l.Unlock()
	return r.state.Candidates
}

func (r *Resolver) setActive(gw string) {
	r.l.Lock()
	defer r.l.Unlock()
	r.state.Active = gw
}
