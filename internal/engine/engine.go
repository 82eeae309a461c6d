// Package engine drives a typing session from input events and timers on a
// single event loop and reports changes to a Listener.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/typespeed/internal/model"
	"github.com/verte-zerg/typespeed/internal/session"
)

// DefaultRecomputeDelay is the quiet period before live stats are published.
const DefaultRecomputeDelay = 100 * time.Millisecond

// PasteNotice is the advisory sent when a paste is refused.
const PasteNotice = "Pasting is not allowed during the test!"

// ErrStopped is returned by Snapshot once Run has returned.
var ErrStopped = errors.New("engine stopped")

// Source supplies passages.
type Source interface {
	Random() model.Passage
	ByIndex(i int) model.Passage
}

// Listener receives updates for presentation. Methods are called from the
// engine loop goroutine and must not block for long.
type Listener interface {
	OnDisplayUpdate(model.Display)
	OnStatsUpdate(model.Stats)
	OnTestCompleted(model.Results)
	OnNotice(string)
}

// Options configures an Engine.
type Options struct {
	Clock          Clock
	RecomputeDelay time.Duration
	// Passage is the initial passage index; out of range selects at random.
	Passage   int
	SessionID string
}

// Snapshot is a point-in-time view of the engine's session.
type Snapshot struct {
	SessionID string
	State     model.State
	Passage   model.Passage
	Stats     model.Stats
	Correct   int
	Incorrect int
}

type eventKind int

const (
	evInput eventKind = iota
	evPaste
	evReset
	evNewPassage
	evTick
	evRecompute
	evSnapshot
)

type event struct {
	kind  eventKind
	raw   string
	token uint64
	reply chan Snapshot
}

// Engine owns one session. Inbound methods never block and may be called
// from any goroutine; all state changes happen inside Run.
type Engine struct {
	id       string
	src      Source
	listener Listener
	clock    Clock
	delay    time.Duration
	sess     *session.Session

	mu    sync.Mutex
	queue []event
	wake  chan struct{}
	done  chan struct{}

	seq       uint64
	ticker    task
	recompute task
}

// New constructs an Engine with the initial passage loaded.
func New(src Source, l Listener, opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.RecomputeDelay <= 0 {
		opts.RecomputeDelay = DefaultRecomputeDelay
	}
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	return &Engine{
		id:       opts.SessionID,
		src:      src,
		listener: l,
		clock:    opts.Clock,
		delay:    opts.RecomputeDelay,
		sess:     session.New(opts.SessionID, src.ByIndex(opts.Passage)),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// ID returns the session identifier.
func (e *Engine) ID() string {
	return e.id
}

// Run processes events until ctx is cancelled. It must be called once.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)
	defer e.stopTasks()

	e.publish()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-e.wake:
			for _, ev := range e.drain() {
				e.handle(ev)
			}
		}
	}
}

// InputChanged reports the full current input value.
func (e *Engine) InputChanged(raw string) {
	e.post(event{kind: evInput, raw: raw})
}

// PasteAttempted reports a refused bulk insertion.
func (e *Engine) PasteAttempted() {
	e.post(event{kind: evPaste})
}

// Reset restarts the test on the same passage.
func (e *Engine) Reset() {
	e.post(event{kind: evReset})
}

// NewPassage restarts the test on a random passage.
func (e *Engine) NewPassage() {
	e.post(event{kind: evNewPassage})
}

// Snapshot reads the session state through the event loop, so it reflects
// every event posted before the call.
func (e *Engine) Snapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	e.post(event{kind: evSnapshot, reply: reply})
	select {
	case snap := <-reply:
		return snap, nil
	case <-e.done:
		return Snapshot{}, ErrStopped
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

func (e *Engine) post(ev event) {
	e.mu.Lock()
	e.queue = append(e.queue, ev)
	e.mu.Unlock()
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Engine) drain() []event {
	e.mu.Lock()
	defer e.mu.Unlock()
	events := e.queue
	e.queue = nil
	return events
}

func (e *Engine) handle(ev event) {
	switch ev.kind {
	case evInput:
		e.handleInput(ev.raw)
	case evPaste:
		e.listener.OnNotice(PasteNotice)
	case evReset:
		e.stopTasks()
		e.sess.Reset()
		e.publish()
	case evNewPassage:
		e.stopTasks()
		e.sess.Load(e.src.Random())
		e.publish()
	case evTick:
		if e.ticker.pending(ev.token) {
			e.handleTick()
		}
	case evRecompute:
		if e.recompute.pending(ev.token) {
			e.recompute = task{}
			if e.sess.State() == model.StateActive {
				e.listener.OnStatsUpdate(e.sess.Stats())
			}
		}
	case evSnapshot:
		correct, incorrect := e.sess.Counts()
		ev.reply <- Snapshot{
			SessionID: e.id,
			State:     e.sess.State(),
			Passage:   e.sess.Passage(),
			Stats:     e.sess.Stats(),
			Correct:   correct,
			Incorrect: incorrect,
		}
	}
}

func (e *Engine) handleInput(raw string) {
	if e.sess.State() == model.StateCompleted {
		return
	}
	wasIdle := e.sess.State() == model.StateIdle
	completed := e.sess.Input(raw, e.clock.Now())
	if wasIdle && e.sess.State() == model.StateIdle {
		return
	}
	e.listener.OnDisplayUpdate(e.sess.Display())
	if completed {
		e.complete()
		return
	}
	if wasIdle {
		e.schedule(&e.ticker, evTick, time.Second)
	}
	e.schedule(&e.recompute, evRecompute, e.delay)
}

func (e *Engine) handleTick() {
	now := e.clock.Now()
	elapsed := e.sess.Tick(now)
	e.listener.OnStatsUpdate(e.sess.Stats())
	next := e.sess.StartedAt().Add(time.Duration(elapsed+1) * time.Second).Sub(now)
	e.schedule(&e.ticker, evTick, next)
}

func (e *Engine) complete() {
	e.stopTasks()
	res, ok := e.sess.Results()
	if !ok {
		return
	}
	e.listener.OnStatsUpdate(model.Stats{
		WPM:      res.WPM,
		Accuracy: res.Accuracy,
		Typed:    res.Total,
		Elapsed:  res.Seconds,
	})
	e.listener.OnTestCompleted(res)
}

func (e *Engine) publish() {
	e.listener.OnDisplayUpdate(e.sess.Display())
	e.listener.OnStatsUpdate(e.sess.Stats())
}

func (e *Engine) stopTasks() {
	e.ticker.cancel()
	e.recompute.cancel()
}
