// Package session tracks a single typing test against a passage.
package session

import (
	"time"

	"github.com/verte-zerg/typespeed/internal/metrics"
	"github.com/verte-zerg/typespeed/internal/model"
)

// Session holds the mutable state of one typing test.
// It is not safe for concurrent use.
type Session struct {
	id      string
	passage model.Passage
	target  []rune
	input   []rune

	state     model.State
	startedAt time.Time
	endedAt   time.Time
	elapsed   int

	correct   int
	incorrect int
	samples   []int

	results model.Results
}

// New returns an idle session for the passage.
func New(id string, p model.Passage) *Session {
	s := &Session{id: id}
	s.Load(p)
	return s
}

// Load replaces the passage and resets the session.
func (s *Session) Load(p model.Passage) {
	s.passage = p
	s.target = []rune(p.Text)
	s.Reset()
}

// Reset returns the session to idle, keeping the passage.
func (s *Session) Reset() {
	s.input = nil
	s.state = model.StateIdle
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
	s.elapsed = 0
	s.correct = 0
	s.incorrect = 0
	s.samples = nil
	s.results = model.Results{}
}

// Input applies the full current input value. It reports whether the
// session completed as a result.
func (s *Session) Input(raw string, now time.Time) bool {
	if s.state == model.StateCompleted || len(s.target) == 0 {
		return false
	}
	runes := []rune(raw)
	if len(runes) > len(s.target) {
		runes = runes[:len(s.target)]
	}
	if s.state == model.StateIdle {
		if len(runes) == 0 {
			return false
		}
		s.state = model.StateActive
		s.startedAt = now
	}
	s.input = runes
	s.recount()
	if len(s.input) == len(s.target) {
		s.complete(now)
		return true
	}
	return false
}

// Tick advances the elapsed-seconds counter and returns it.
func (s *Session) Tick(now time.Time) int {
	if s.state != model.StateActive {
		return s.elapsed
	}
	elapsed := wholeSeconds(now.Sub(s.startedAt))
	if elapsed > s.elapsed {
		s.elapsed = elapsed
		s.samples = append(s.samples, metrics.WPM(s.correct, s.elapsed))
	}
	return s.elapsed
}

func (s *Session) recount() {
	s.correct = 0
	s.incorrect = 0
	for i, r := range s.input {
		if r == s.target[i] {
			s.correct++
		} else {
			s.incorrect++
		}
	}
}

func (s *Session) complete(now time.Time) {
	s.state = model.StateCompleted
	s.endedAt = now
	seconds := wholeSeconds(s.endedAt.Sub(s.startedAt))
	s.elapsed = seconds
	wpm := metrics.WPM(s.correct, seconds)
	s.results = model.Results{
		SessionID:    s.id,
		PassageIndex: s.passage.Index,
		StartedAt:    s.startedAt,
		EndedAt:      s.endedAt,
		WPM:          wpm,
		Accuracy:     metrics.Accuracy(s.correct, len(s.input)),
		Seconds:      seconds,
		Time:         metrics.FormatElapsed(seconds),
		Total:        len(s.input),
		Correct:      s.correct,
		Incorrect:    s.incorrect,
		Rating:       metrics.RatingFor(wpm),
		Samples:      append([]int(nil), s.samples...),
	}
}

// State returns the lifecycle state.
func (s *Session) State() model.State {
	return s.state
}

// Passage returns the reference passage.
func (s *Session) Passage() model.Passage {
	return s.passage
}

// StartedAt returns the time of the first keystroke, zero while idle.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Counts returns the correct and incorrect character tallies.
func (s *Session) Counts() (correct, incorrect int) {
	return s.correct, s.incorrect
}

// Stats returns live metrics based on the ticking elapsed counter.
func (s *Session) Stats() model.Stats {
	return model.Stats{
		WPM:      metrics.WPM(s.correct, s.elapsed),
		Accuracy: metrics.Accuracy(s.correct, len(s.input)),
		Typed:    len(s.input),
		Elapsed:  s.elapsed,
	}
}

// Display classifies every passage character against the input.
func (s *Session) Display() model.Display {
	classes := make([]model.CharClass, len(s.target))
	for i := range s.target {
		switch {
		case i < len(s.input) && s.input[i] == s.target[i]:
			classes[i] = model.CharCorrect
		case i < len(s.input):
			classes[i] = model.CharIncorrect
		case i == len(s.input):
			classes[i] = model.CharCurrent
		}
	}
	return model.Display{Text: s.passage.Text, Classes: classes}
}

// Results returns the frozen final snapshot once the session is completed.
func (s *Session) Results() (model.Results, bool) {
	if s.state != model.StateCompleted {
		return model.Results{}, false
	}
	return s.results, true
}

func wholeSeconds(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}
