// Package model defines shared data structures.
package model

import "time"

// Config defines typing test settings.
type Config struct {
	Passage        int
	RecomputeDelay time.Duration
	Sound          bool
}

// ServerConfig defines settings for the browser UI server.
type ServerConfig struct {
	Addr string
}

// Passage is a reference text from the built-in corpus.
type Passage struct {
	Index int
	Text  string
}

// State is the lifecycle state of a typing session.
type State int

// Session lifecycle states.
const (
	StateIdle State = iota
	StateActive
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// CharClass classifies one passage character for display.
type CharClass int

// Character classifications.
const (
	CharUntyped CharClass = iota
	CharCorrect
	CharIncorrect
	CharCurrent
)

func (c CharClass) String() string {
	switch c {
	case CharCorrect:
		return "correct"
	case CharIncorrect:
		return "incorrect"
	case CharCurrent:
		return "current"
	default:
		return "untyped"
	}
}

// Display is the per-character view of the passage.
type Display struct {
	Text    string
	Classes []CharClass
}

// Stats is a live metrics snapshot.
type Stats struct {
	WPM      int
	Accuracy float64
	Typed    int
	Elapsed  int
}

// Tier orders performance ratings from lowest to highest.
type Tier int

// Rating tiers.
const (
	TierPracticeMore Tier = iota + 1
	TierBelowAverage
	TierAverage
	TierGood
	TierExcellent
)

// Rating is the performance band for a final WPM.
type Rating struct {
	Label string
	Tier  Tier
	Color string
}

// Results captures a completed typing test.
type Results struct {
	SessionID    string
	PassageIndex int
	StartedAt    time.Time
	EndedAt      time.Time
	WPM          int
	Accuracy     float64
	Seconds      int
	Time         string
	Total        int
	Correct      int
	Incorrect    int
	Rating       Rating
	Samples      []int
}
