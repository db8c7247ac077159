package pdfexport

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Ticket identifies one render request for a client.
type Ticket struct {
	ID         string
	ClientID   string
	Generation uint64

	cancel context.CancelCauseFunc
}

// Coordinator keeps a generation counter per client. Beginning a new request
// cancels the client's in-flight one with ErrSuperseded.
type Coordinator struct {
	mu      sync.Mutex
	counter map[string]uint64
	active  map[string]*Ticket
}

// NewCoordinator constructs an empty Coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		counter: make(map[string]uint64),
		active:  make(map[string]*Ticket),
	}
}

// Begin registers a new request for clientID and returns a context that is
// cancelled when a later request for the same client begins.
func (c *Coordinator) Begin(ctx context.Context, clientID string) (context.Context, *Ticket) {
	runCtx, cancel := context.WithCancelCause(ctx)

	c.mu.Lock()
	c.counter[clientID]++
	t := &Ticket{
		ID:         uuid.NewString(),
		ClientID:   clientID,
		Generation: c.counter[clientID],
		cancel:     cancel,
	}
	prev := c.active[clientID]
	c.active[clientID] = t
	c.mu.Unlock()

	if prev != nil {
		prev.cancel(ErrSuperseded)
	}
	return runCtx, t
}

// Current reports whether t is still the newest request for its client.
func (c *Coordinator) Current(t *Ticket) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur, ok := c.active[t.ClientID]
	return ok && cur == t
}

// Finish releases t. A newer ticket for the same client is left in place.
func (c *Coordinator) Finish(t *Ticket) {
	c.mu.Lock()
	if cur, ok := c.active[t.ClientID]; ok && cur == t {
		delete(c.active, t.ClientID)
	}
	c.mu.Unlock()
	t.cancel(nil)
}
