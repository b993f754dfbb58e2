// Package dialog arbitrates user-facing confirmation and notice dialogs so at
// most one is visible process-wide. Presentation (markup, scroll locking, key
// handling) belongs to the Presenter; the coordinator only owns the pending
// request's lifecycle and guarantees every caller resolves exactly once.
package dialog

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded rejects a pending confirmation displaced by a newer request
// under the Replace policy. Rejecting explicitly (rather than never resolving)
// means callers cannot hang on an abandoned prompt.
var ErrSuperseded = errors.New("confirmation superseded by a newer dialog")

type Kind int

const (
	Confirm Kind = iota
	Delete       // destructive styling, red confirm button
	Info
	Success
)

// Request is the transient value object describing one dialog.
type Request struct {
	Title       string
	Message     string
	Kind        Kind
	ConfirmText string
	CancelText  string
}

// Presenter renders the live request. Show must not block; the user's choice
// is reported through respond (only the first call for the live request is
// honored). Hide is called when nothing is left to display.
type Presenter interface {
	Show(req Request, respond func(confirmed bool))
	Hide()
}

// Policy decides what happens when a request arrives while one is open.
type Policy int

const (
	// Replace rejects the currently open request with ErrSuperseded.
	Replace Policy = iota
	// Queue holds new requests FIFO until the open one resolves.
	Queue
)

type result struct {
	confirmed bool
	err       error
}

type pending struct {
	req  Request
	once sync.Once
	ch   chan result
}

func (p *pending) resolve(confirmed bool, err error) {
	p.once.Do(func() { p.ch <- result{confirmed, err} })
}

type Coordinator struct {
	presenter Presenter
	policy    Policy

	mu      sync.Mutex
	current *pending
	queue   []*pending
}

type Option func(*Coordinator)

// WithQueueing holds concurrent requests FIFO instead of superseding.
func WithQueueing() Option {
	return func(c *Coordinator) { c.policy = Queue }
}

func NewCoordinator(p Presenter, opts ...Option) *Coordinator {
	c := &Coordinator{presenter: p}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Confirm displays req and resolves to the user's choice. Dismissal (escape,
// backdrop) resolves false. Cancelling ctx abandons the request (the raising
// view unmounted) and returns ctx.Err().
func (c *Coordinator) Confirm(ctx context.Context, req Request) (bool, error) {
	if req.ConfirmText == "" {
		req.ConfirmText = "Confirm"
	}
	if req.CancelText == "" {
		req.CancelText = "Cancel"
	}
	return c.ask(ctx, req)
}

// DeleteConfirm is Confirm with destructive defaults.
func (c *Coordinator) DeleteConfirm(ctx context.Context, title, message string) (bool, error) {
	return c.ask(ctx, Request{
		Title:       title,
		Message:     message,
		Kind:        Delete,
		ConfirmText: "Delete",
		CancelText:  "Cancel",
	})
}

// Notify displays a fire-and-forget Info/Success notice; it resolves on
// dismissal with no boolean meaning.
func (c *Coordinator) Notify(ctx context.Context, req Request) error {
	if req.Kind != Success {
		req.Kind = Info
	}
	if req.ConfirmText == "" {
		req.ConfirmText = "OK"
	}
	_, err := c.ask(ctx, req)
	if err == ErrSuperseded {
		return nil // a displaced notice is not the caller's problem
	}
	return err
}

// Resolve settles the live request with the user's choice; called by the
// presenter (button click).
func (c *Coordinator) Resolve(confirmed bool) {
	c.mu.Lock()
	p := c.current
	c.mu.Unlock()
	if p != nil {
		c.finish(p, confirmed)
	}
}

// Dismiss settles the live request as declined (escape key, backdrop click).
func (c *Coordinator) Dismiss() {
	c.Resolve(false)
}

func (c *Coordinator) ask(ctx context.Context, req Request) (bool, error) {
	p := &pending{req: req, ch: make(chan result, 1)}

	c.mu.Lock()
	var displaced *pending
	show := false
	switch {
	case c.current == nil:
		c.current = p
		show = true
	case c.policy == Queue:
		c.queue = append(c.queue, p)
	default: // Replace
		displaced = c.current
		c.current = p
		show = true
	}
	c.mu.Unlock()

	if displaced != nil {
		displaced.resolve(false, ErrSuperseded)
	}
	if show {
		c.present(p)
	}

	select {
	case res := <-p.ch:
		return res.confirmed, res.err
	case <-ctx.Done():
		c.abandon(p)
		return false, ctx.Err()
	}
}

// present hands the request to the presenter. The respond closure is bound to
// this specific pending: a late response for a displaced dialog is ignored.
func (c *Coordinator) present(p *pending) {
	c.presenter.Show(p.req, func(confirmed bool) {
		c.finish(p, confirmed)
	})
}

func (c *Coordinator) finish(p *pending, confirmed bool) {
	c.mu.Lock()
	if c.current != p {
		c.mu.Unlock()
		return
	}
	next := c.advanceLocked()
	c.mu.Unlock()

	p.resolve(confirmed, nil)
	if next != nil {
		c.present(next)
	} else {
		c.presenter.Hide()
	}
}

// abandon withdraws a request whose caller went away (context cancelled).
func (c *Coordinator) abandon(p *pending) {
	c.mu.Lock()
	if c.current != p {
		for i, q := range c.queue {
			if q == p {
				c.queue = append(c.queue[:i], c.queue[i+1:]...)
				break
			}
		}
		c.mu.Unlock()
		return
	}
	next := c.advanceLocked()
	c.mu.Unlock()

	if next != nil {
		c.present(next)
	} else {
		c.presenter.Hide()
	}
}

// advanceLocked pops the next queued request into current; c.mu must be held.
func (c *Coordinator) advanceLocked() *pending {
	c.current = nil
	if len(c.queue) == 0 {
		return nil
	}
	next := c.queue[0]
	c.queue = c.queue[1:]
	c.current = next
	return next
}
