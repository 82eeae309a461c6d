package server

import (
	"github.com/verte-zerg/typespeed/internal/metrics"
	"github.com/verte-zerg/typespeed/internal/model"
)

// Message types exchanged over the WebSocket.
const (
	TypeInput     = "input"
	TypePaste     = "paste"
	TypeReset     = "reset"
	TypeNew       = "new"
	TypeDisplay   = "display"
	TypeStats     = "stats"
	TypeCompleted = "completed"
	TypeNotice    = "notice"
)

// Message is the envelope for every frame in both directions.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// DisplayData carries the passage with one class name per character.
type DisplayData struct {
	Text    string   `json:"text"`
	Classes []string `json:"classes"`
}

// StatsData is a live metrics snapshot.
type StatsData struct {
	WPM      int     `json:"wpm"`
	Accuracy float64 `json:"accuracy"`
	Typed    int     `json:"typed"`
	Elapsed  int     `json:"elapsed"`
	Time     string  `json:"time"`
}

// ResultsData is the frozen outcome of a completed test.
type ResultsData struct {
	SessionID    string  `json:"sessionId"`
	PassageIndex int     `json:"passage"`
	WPM          int     `json:"wpm"`
	Accuracy     float64 `json:"accuracy"`
	Time         string  `json:"time"`
	Total        int     `json:"total"`
	Correct      int     `json:"correct"`
	Incorrect    int     `json:"incorrect"`
	Rating       string  `json:"rating"`
	Tier         int     `json:"tier"`
	Color        string  `json:"color"`
	Samples      []int   `json:"samples"`
}

func displayData(d model.Display) DisplayData {
	classes := make([]string, len(d.Classes))
	for i, c := range d.Classes {
		classes[i] = c.String()
	}
	return DisplayData{Text: d.Text, Classes: classes}
}

func statsData(s model.Stats) StatsData {
	return StatsData{
		WPM:      s.WPM,
		Accuracy: s.Accuracy,
		Typed:    s.Typed,
		Elapsed:  s.Elapsed,
		Time:     metrics.FormatElapsed(s.Elapsed),
	}
}

func resultsData(res model.Results) ResultsData {
	samples := res.Samples
	if samples == nil {
		samples = []int{}
	}
	return ResultsData{
		SessionID:    res.SessionID,
		PassageIndex: res.PassageIndex,
		WPM:          res.WPM,
		Accuracy:     res.Accuracy,
		Time:         res.Time,
		Total:        res.Total,
		Correct:      res.Correct,
		Incorrect:    res.Incorrect,
		Rating:       res.Rating.Label,
		Tier:         int(res.Rating.Tier),
		Color:        res.Rating.Color,
		Samples:      samples,
	}
}
