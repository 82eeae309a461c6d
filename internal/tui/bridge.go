package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typespeed/internal/model"
)

type displayMsg struct {
	display model.Display
}

type statsMsg struct {
	stats model.Stats
}

type completedMsg struct {
	results model.Results
}

type noticeMsg struct {
	text string
}

// Bridge implements engine.Listener by queueing updates for the Bubble Tea
// program. Close releases a sender blocked on a program that has exited.
type Bridge struct {
	ch   chan tea.Msg
	done chan struct{}
}

// NewBridge returns a Bridge with a small buffer.
func NewBridge() *Bridge {
	return &Bridge{
		ch:   make(chan tea.Msg, 64),
		done: make(chan struct{}),
	}
}

// OnDisplayUpdate implements engine.Listener.
func (b *Bridge) OnDisplayUpdate(d model.Display) {
	b.send(displayMsg{display: d})
}

// OnStatsUpdate implements engine.Listener.
func (b *Bridge) OnStatsUpdate(s model.Stats) {
	b.send(statsMsg{stats: s})
}

// OnTestCompleted implements engine.Listener.
func (b *Bridge) OnTestCompleted(res model.Results) {
	b.send(completedMsg{results: res})
}

// OnNotice implements engine.Listener.
func (b *Bridge) OnNotice(text string) {
	b.send(noticeMsg{text: text})
}

// Close stops delivery. It must be called once.
func (b *Bridge) Close() {
	close(b.done)
}

func (b *Bridge) send(msg tea.Msg) {
	select {
	case b.ch <- msg:
	case <-b.done:
	}
}

func (b *Bridge) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.ch:
			return msg
		case <-b.done:
			return nil
		}
	}
}
