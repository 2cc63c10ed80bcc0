// Package engine owns the countdown session: it applies every mutation to
// the timer store, keeps the visible card set in sync with the active
// filter, and runs the once-per-second tick that drives completion.
//
// The engine is not safe for concurrent use. All calls are expected to come
// from a single goroutine, the bubbletea update loop in practice.
package engine

import (
	"io"
	"log"
	"strings"
	"time"

	"github.com/dori/tminus/internal/dateparse"
	"github.com/dori/tminus/internal/model"
)

// Store is the timer collection
type Store interface {
	CreateTimer(name string, target, now time.Time) (*model.Timer, error)
	ListTimers() ([]model.Timer, error)
	DeleteTimer(id string) (bool, error)
	ToggleImportant(id string) (bool, error)
	MarkCompleted(id string, at time.Time) (bool, error)
}

// Alerter sounds the completion alarm without blocking
type Alerter interface {
	Fire()
}

// Notifier shows a desktop notification for a completed timer
type Notifier interface {
	SendTimerComplete(name string, target time.Time) error
}

// Options configures an Engine. Nil collaborators are skipped.
type Options struct {
	Filter   model.Filter
	Alerter  Alerter
	Notifier Notifier
	Logger   *log.Logger
}

// Counts holds the size of each filtered view
type Counts struct {
	Recent    int
	Important int
	Completed int
}

// For returns the count for one filter
func (c Counts) For(f model.Filter) int {
	switch f {
	case model.FilterImportant:
		return c.Important
	case model.FilterCompleted:
		return c.Completed
	default:
		return c.Recent
	}
}

// TickResult describes what one tick did
type TickResult struct {
	Completed  []model.Timer
	Rerendered bool
}

// Engine is the render/tick controller
type Engine struct {
	store    Store
	alerter  Alerter
	notifier Notifier
	logger   *log.Logger

	filter  model.Filter
	cards   []Card
	index   map[string]int
	counts  Counts
	renders int
	last    Change
}

// New creates an engine over an existing store
func New(store Store, opts Options) *Engine {
	if opts.Filter == "" {
		opts.Filter = model.FilterRecent
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &Engine{
		store:    store,
		alerter:  opts.Alerter,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		filter:   opts.Filter,
		index:    map[string]int{},
	}
}

// Filter returns the active filter
func (e *Engine) Filter() model.Filter {
	return e.filter
}

// Cards returns a copy of the visible cards in display order
func (e *Engine) Cards() []Card {
	out := make([]Card, len(e.cards))
	copy(out, e.cards)
	return out
}

// Card looks up a visible card by timer ID
func (e *Engine) Card(id string) (Card, bool) {
	i, ok := e.index[id]
	if !ok {
		return Card{}, false
	}
	return e.cards[i], true
}

// Counts returns per-filter totals as of the last render
func (e *Engine) Counts() Counts {
	return e.counts
}

// Renders returns how many full re-renders have happened
func (e *Engine) Renders() int {
	return e.renders
}

// LastChange returns the most recent change signal
func (e *Engine) LastChange() Change {
	return e.last
}

// Start performs the initial render
func (e *Engine) Start(now time.Time) error {
	_, err := e.render(now)
	return err
}

// Create parses the date text and adds a timer.
// Invalid input returns a *model.ValidationError and changes nothing.
func (e *Engine) Create(name, dateText string, now time.Time) (*model.Timer, error) {
	if strings.TrimSpace(name) == "" {
		_, err := model.ValidateInput(name, time.Time{}, now)
		return nil, err
	}
	target, err := dateparse.Parse(dateText, now)
	if err != nil {
		return nil, &model.ValidationError{Field: "date", Reason: err.Error()}
	}
	return e.CreateAt(name, target, now)
}

// CreateAt adds a timer for an already parsed target
func (e *Engine) CreateAt(name string, target, now time.Time) (*model.Timer, error) {
	name, err := model.ValidateInput(name, target, now)
	if err != nil {
		return nil, err
	}

	timer, err := e.store.CreateTimer(name, target, now)
	if err != nil {
		return nil, err
	}

	return timer, e.apply(Change{Kind: ChangeCreated, TimerID: timer.ID}, now)
}

// Delete removes a timer. Unknown IDs are a no-op.
func (e *Engine) Delete(id string, now time.Time) (Change, error) {
	removed, err := e.store.DeleteTimer(id)
	if err != nil {
		return Change{}, err
	}
	if !removed {
		return Change{}, nil
	}
	change := Change{Kind: ChangeDeleted, TimerID: id}
	return change, e.apply(change, now)
}

// ToggleImportant flips a timer's importance. Unknown IDs are a no-op.
func (e *Engine) ToggleImportant(id string, now time.Time) (Change, error) {
	toggled, err := e.store.ToggleImportant(id)
	if err != nil {
		return Change{}, err
	}
	if !toggled {
		return Change{}, nil
	}
	change := Change{Kind: ChangeImportance, TimerID: id}
	return change, e.apply(change, now)
}

// SetFilter switches the visible view. The store is not touched.
func (e *Engine) SetFilter(f model.Filter, now time.Time) (Change, error) {
	e.filter = f
	change := Change{Kind: ChangeFilter}
	return change, e.apply(change, now)
}

// Tick runs one cycle at now: complete due timers, refresh visible cards,
// and re-render if any timer completed.
func (e *Engine) Tick(now time.Time) TickResult {
	var res TickResult

	timers, err := e.store.ListTimers()
	if err != nil {
		e.logger.Printf("tick: list timers: %v", err)
		return res
	}

	res.Completed = e.pass(now, timers)
	if len(res.Completed) == 0 {
		return res
	}

	e.last = Change{Kind: ChangeCompleted, TimerID: res.Completed[0].ID}
	more, err := e.render(now)
	if err != nil {
		e.logger.Printf("tick: re-render: %v", err)
	}
	res.Completed = append(res.Completed, more...)
	res.Rerendered = true
	return res
}

// apply is the single subscriber for change signals
func (e *Engine) apply(change Change, now time.Time) error {
	if change.Kind == ChangeNone {
		return nil
	}
	e.last = change
	_, err := e.render(now)
	return err
}

// render rebuilds the visible cards from scratch and immediately fills in
// their values, so no card is ever shown with placeholder zeros. It repeats
// while the time pass completes further timers.
func (e *Engine) render(now time.Time) ([]model.Timer, error) {
	var completed []model.Timer
	for {
		timers, err := e.store.ListTimers()
		if err != nil {
			return completed, err
		}

		e.build(timers)
		done := e.pass(now, timers)
		if len(done) == 0 {
			return completed, nil
		}
		completed = append(completed, done...)
	}
}

// build recomputes the filtered view and replaces the card set
func (e *Engine) build(timers []model.Timer) {
	visible := model.Select(timers, e.filter)

	e.cards = make([]Card, len(visible))
	e.index = make(map[string]int, len(visible))
	for i, t := range visible {
		e.cards[i] = newCard(t)
		e.index[t.ID] = i
	}

	e.counts = Counts{
		Recent:    len(timers),
		Important: len(model.Select(timers, model.FilterImportant)),
		Completed: len(model.Select(timers, model.FilterCompleted)),
	}
	e.renders++
}

// pass evaluates every timer against one captured now. It returns the
// timers that transitioned to completed during this pass.
func (e *Engine) pass(now time.Time, timers []model.Timer) []model.Timer {
	var completed []model.Timer

	for i := range timers {
		t := &timers[i]

		if !t.Completed && t.IsDue(now) {
			ok, err := e.store.MarkCompleted(t.ID, now)
			if err != nil {
				// Leave it pending; the next tick retries
				e.logger.Printf("tick: complete %s: %v", t.ID, err)
			} else if ok {
				at := now
				t.Completed = true
				t.CompletedAt = &at
				completed = append(completed, *t)
				e.completeEffects(*t)
			}
		}

		if idx, ok := e.index[t.ID]; ok {
			e.cards[idx].update(*t, now)
		}
	}

	return completed
}

func (e *Engine) completeEffects(t model.Timer) {
	e.logger.Printf("timer %s (%q) %s", t.ID, t.Name, t.State())

	if e.alerter != nil {
		e.alerter.Fire()
	}
	if e.notifier != nil {
		notifier, logger := e.notifier, e.logger
		name := SanitizeName(t.Name)
		go func() {
			if err := notifier.SendTimerComplete(name, t.Target); err != nil {
				logger.Printf("notify %s: %v", t.ID, err)
			}
		}()
	}
}
