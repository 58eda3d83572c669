// Package state holds the UI-visible state of paramclip and the copy state
// machine that drives it.
//
// The display state is resolved once from the query string at mount time.
// Copy requests move the copy sub-machine Idle -> Copying -> Copied and a
// cancellable timer returns it to Idle after ResetDelay. A new success
// re-arms the timer instead of stacking a second reset.
package state

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/f3rmion/paramclip/internal/clock"
	"github.com/f3rmion/paramclip/internal/params"
)

// ResetDelay is how long the copied indicator stays on.
const ResetDelay = 2000 * time.Millisecond

// JustNow is the last-updated label shown once content is available.
const JustNow = "Just now"

// Notification messages.
const (
	MessageCopied = "Content copied to clipboard!"
	MessageFailed = "Failed to copy to clipboard. Please try again."
)

var (
	// ErrNoContent is returned by Copy when there is nothing to copy.
	ErrNoContent = errors.New("no content to copy")
	// ErrAlreadyMounted is returned by a second Mount.
	ErrAlreadyMounted = errors.New("display state already mounted")
)

// Copier writes content to the clipboard.
type Copier interface {
	Copy(ctx context.Context, content string) error
}

// DisplayState is the content shown to the user.
type DisplayState struct {
	Content     string `json:"content"`
	Available   bool   `json:"available"`
	LastUpdated string `json:"last_updated,omitempty"`
	Param       string `json:"param,omitempty"`
	DecodeErr   error  `json:"-"`
}

// CharCount returns the number of characters in the content.
func (d DisplayState) CharCount() int {
	return utf8.RuneCountInString(d.Content)
}

// Phase is the state of the copy sub-machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCopying
	PhaseCopied
)

func (p Phase) String() string {
	switch p {
	case PhaseCopying:
		return "copying"
	case PhaseCopied:
		return "copied"
	default:
		return "idle"
	}
}

// EventKind classifies controller events.
type EventKind int

const (
	// EventCopied follows a successful copy.
	EventCopied EventKind = iota + 1
	// EventFailed follows a failed copy.
	EventFailed
	// EventReset follows expiry of the copied indicator.
	EventReset
)

// Event is delivered to the listener after each copy-state transition.
type Event struct {
	Kind    EventKind
	Message string
	Err     error
}

// Controller owns DisplayState, CopyState and HelpPanelState.
type Controller struct {
	copier Copier
	clock  clock.Clock
	logger *slog.Logger

	mu       sync.Mutex
	mounted  bool
	closed   bool
	display  DisplayState
	copied   bool
	inFlight int
	helpOpen bool
	timer    clock.Timer
	gen      uint64
	listener func(Event)
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used for the reset timer.
func WithClock(c clock.Clock) Option {
	return func(ctrl *Controller) {
		ctrl.clock = c
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger *slog.Logger) Option {
	return func(ctrl *Controller) {
		if logger != nil {
			ctrl.logger = logger
		}
	}
}

// New creates an unmounted Controller.
func New(copier Copier, opts ...Option) *Controller {
	c := &Controller{
		copier: copier,
		clock:  clock.Real(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount resolves the display state from query. It runs once; later calls
// return ErrAlreadyMounted. A decode failure leaves the empty state in
// place, records the error on the display state and is returned.
func (c *Controller) Mount(query string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mounted {
		return ErrAlreadyMounted
	}
	c.mounted = true

	res, err := params.Resolve(query)
	if err != nil {
		c.display = DisplayState{DecodeErr: err}
		c.logger.Warn("query parameter could not be decoded", "error", err)
		return err
	}

	if res.Found && strings.TrimSpace(res.Value) != "" {
		c.display = DisplayState{
			Content:     res.Value,
			Available:   true,
			LastUpdated: JustNow,
			Param:       res.Param,
		}
	} else {
		c.display = DisplayState{}
	}

	c.logger.Debug("display state mounted",
		"available", c.display.Available,
		"param", c.display.Param,
		"chars", c.display.CharCount(),
	)
	return nil
}

// Display returns the display state.
func (c *Controller) Display() DisplayState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.display
}

// Copied reports whether the copied indicator is on.
func (c *Controller) Copied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied
}

// Phase returns the current copy phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.copied:
		return PhaseCopied
	case c.inFlight > 0:
		return PhaseCopying
	default:
		return PhaseIdle
	}
}

// HelpOpen reports whether the instructions panel is open.
func (c *Controller) HelpOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.helpOpen
}

// ToggleHelp flips the instructions panel and returns the new state.
func (c *Controller) ToggleHelp() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.helpOpen = !c.helpOpen
	return c.helpOpen
}

// SetListener registers fn to receive events. fn is called without the
// controller lock held, possibly from a timer goroutine.
func (c *Controller) SetListener(fn func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listener = fn
}

// Copy copies the display content. Without available content it returns
// ErrNoContent and changes nothing. Copy errors are returned after the
// failure event has been emitted.
func (c *Controller) Copy(ctx context.Context) error {
	c.mu.Lock()
	if !c.display.Available {
		c.mu.Unlock()
		return ErrNoContent
	}
	content := c.display.Content
	c.inFlight++
	c.mu.Unlock()

	err := c.copier.Copy(ctx, content)

	c.mu.Lock()
	c.inFlight--
	c.stopTimerLocked()

	var ev Event
	if err != nil {
		c.copied = false
		ev = Event{Kind: EventFailed, Message: MessageFailed, Err: err}
		c.logger.Warn("copy failed", "error", err)
	} else {
		c.copied = !c.closed
		if !c.closed {
			gen := c.gen
			c.timer = c.clock.AfterFunc(ResetDelay, func() { c.expire(gen) })
		}
		ev = Event{Kind: EventCopied, Message: MessageCopied}
		c.logger.Debug("copy succeeded", "chars", c.display.CharCount())
	}
	listener := c.listener
	c.mu.Unlock()

	if listener != nil {
		listener(ev)
	}
	return err
}

// Close releases the pending reset timer, if any. A closed controller
// never shows the copied indicator.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.copied = false
	c.stopTimerLocked()
}

// stopTimerLocked cancels the pending reset. Bumping gen also disarms a
// callback that already started running.
func (c *Controller) stopTimerLocked() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		return
	}
	c.copied = false
	c.timer = nil
	listener := c.listener
	c.mu.Unlock()

	c.logger.Debug("copied indicator reset")
	if listener != nil {
		listener(Event{Kind: EventReset})
	}
}
