package console

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Confirmations models the console's confirmation dialog: an operation
// requests a yes/no answer and suspends until a later, separately triggered
// event resolves it. Outstanding requests live in an explicit table keyed
// by a generated token; the requester waits on a channel and the resolver
// completes it by token.
type Confirmations struct {
	mu      sync.Mutex
	pending map[string]pendingConfirmation
}

type pendingConfirmation struct {
	prompt string
	done   chan bool
}

func NewConfirmations() *Confirmations {
	return &Confirmations{pending: make(map[string]pendingConfirmation)}
}

// Request registers a pending confirmation and returns its token together
// with the channel that will carry the outcome. The channel is buffered, so
// Resolve never blocks on a requester that gave up.
func (c *Confirmations) Request(prompt string) (string, <-chan bool) {
	token := uuid.NewString()
	done := make(chan bool, 1)

	c.mu.Lock()
	c.pending[token] = pendingConfirmation{prompt: prompt, done: done}
	c.mu.Unlock()

	return token, done
}

// Prompt returns the message attached to a pending request.
func (c *Confirmations) Prompt(token string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[token]
	return p.prompt, ok
}

// Resolve completes a pending request with the operator's answer and
// removes it from the table. Resolving an unknown or already-resolved token
// reports false and has no other effect.
func (c *Confirmations) Resolve(token string, approved bool) bool {
	c.mu.Lock()
	p, ok := c.pending[token]
	if ok {
		delete(c.pending, token)
	}
	c.mu.Unlock()

	if !ok {
		return false
	}
	p.done <- approved
	return true
}

// Cancel abandons a pending request, delivering a negative outcome. Used
// when the view owning the dialog is torn down.
func (c *Confirmations) Cancel(token string) bool {
	return c.Resolve(token, false)
}

// Await is a convenience wrapper for callers that want a blocking ask:
// it registers the request and waits for the answer or context cancellation.
// Cancellation counts as a refusal and cleans up the table entry.
func (c *Confirmations) Await(ctx context.Context, prompt string) bool {
	token, done := c.Request(prompt)
	select {
	case approved := <-done:
		return approved
	case <-ctx.Done():
		c.Cancel(token)
		return false
	}
}

func (c *Confirmations) tokens() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.pending))
	for token := range c.pending {
		out = append(out, token)
	}
	return out
}

// PendingCount reports the number of outstanding requests.
func (c *Confirmations) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
