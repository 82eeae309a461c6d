// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typespeed/internal/metrics"
	"github.com/verte-zerg/typespeed/internal/model"
)

const (
	resultsDelay   = 500 * time.Millisecond
	noticeDuration = 3 * time.Second
)

// Controller receives input events from the UI.
type Controller interface {
	InputChanged(raw string)
	PasteAttempted()
	Reset()
	NewPassage()
}

type showResultsMsg struct {
	seq int
}

type clearNoticeMsg struct {
	seq int
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	ctrl   Controller
	bridge *Bridge
	keys   keyMap
	help   help.Model
	sound  bool

	width  int
	height int

	display model.Display
	limit   int
	input   []rune
	stats   model.Stats

	completed   bool
	results     *model.Results
	showResults bool
	resultSeq   int

	notice    string
	noticeSeq int
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = currentWordStyle.Underline(true)
	statsStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	cardStyle        = lipgloss.NewStyle().
				Padding(1, 3).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	cardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// NewModel constructs a typing TUI model driven by ctrl and fed by bridge.
func NewModel(ctrl Controller, bridge *Bridge, sound bool) *Model {
	return &Model{
		ctrl:   ctrl,
		bridge: bridge,
		keys:   defaultKeyMap(),
		help:   help.New(),
		sound:  sound,
		stats:  model.Stats{Accuracy: 100},
	}
}

// LastResults returns the most recent completed test, if any.
func (m *Model) LastResults() (model.Results, bool) {
	if m.results == nil {
		return model.Results{}, false
	}
	return *m.results, true
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.bridge.wait()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case displayMsg:
		m.display = msg.display
		m.limit = len(m.display.Classes)
		return m, m.bridge.wait()
	case statsMsg:
		m.stats = msg.stats
		return m, m.bridge.wait()
	case completedMsg:
		res := msg.results
		m.completed = true
		m.results = &res
		m.resultSeq++
		seq := m.resultSeq
		cmds := []tea.Cmd{
			m.bridge.wait(),
			tea.Tick(resultsDelay, func(time.Time) tea.Msg { return showResultsMsg{seq: seq} }),
		}
		if m.sound {
			cmds = append(cmds, ringBell)
		}
		return m, tea.Batch(cmds...)
	case noticeMsg:
		m.notice = msg.text
		m.noticeSeq++
		seq := m.noticeSeq
		return m, tea.Batch(
			m.bridge.wait(),
			tea.Tick(noticeDuration, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} }),
		)
	case showResultsMsg:
		if msg.seq == m.resultSeq && m.completed {
			m.showResults = true
		}
		return m, nil
	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		m.restart()
		m.ctrl.Reset()
		return m, nil
	case key.Matches(msg, m.keys.NewPassage):
		m.restart()
		// Hold input until the new passage is displayed.
		m.limit = 0
		m.ctrl.NewPassage()
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		m.showResults = false
		return m, nil
	}
	if m.completed {
		return m, nil
	}
	if msg.Paste {
		m.ctrl.PasteAttempted()
		return m, nil
	}
	if key.Matches(msg, m.keys.DeleteWord) {
		m.setInput(deleteLastWord(m.input))
		return m, nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		if len(m.input) > 0 {
			m.setInput(m.input[:len(m.input)-1])
		}
	case tea.KeySpace:
		m.typeRunes([]rune{' '})
	case tea.KeyRunes:
		// Keys that arrive in one terminal read come grouped.
		m.typeRunes(msg.Runes)
	}
	return m, nil
}

func (m *Model) typeRunes(runes []rune) {
	room := m.limit - len(m.input)
	if room <= 0 || len(runes) == 0 {
		return
	}
	if len(runes) > room {
		runes = runes[:room]
	}
	m.setInput(append(m.input, runes...))
}

func (m *Model) setInput(input []rune) {
	m.input = input
	m.ctrl.InputChanged(string(m.input))
}

func (m *Model) restart() {
	m.input = nil
	m.completed = false
	m.showResults = false
	m.resultSeq++
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.display.Classes) == 0 {
		return ""
	}
	if m.showResults && m.results != nil {
		card := renderResultsCard(*m.results)
		if m.width == 0 || m.height == 0 {
			return card
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
	}

	styledRunes := buildStyledRunes(m.display)
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes) + "\n\n" + footer
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	footerHeight := lipgloss.Height(footer)
	if m.height <= footerHeight+1 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-footerHeight, lipgloss.Center, lipgloss.Center, content)
	footerBlock := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer)
	return body + "\n" + footerBlock
}

func (m *Model) renderFooter() string {
	lines := []string{statsStyle.Render(renderStats(m.stats))}
	if m.notice != "" {
		lines = append(lines, noticeStyle.Render(m.notice))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func renderStats(s model.Stats) string {
	segments := []string{
		fmt.Sprintf("WPM %d", s.WPM),
		fmt.Sprintf("Accuracy %s%%", formatPercent(s.Accuracy)),
		fmt.Sprintf("Time %s", metrics.FormatElapsed(s.Elapsed)),
		fmt.Sprintf("Chars %d", s.Typed),
	}
	return strings.Join(segments, "  ")
}

func renderResultsCard(res model.Results) string {
	ratingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(res.Rating.Color)).Bold(true)
	rows := [][2]string{
		{"WPM", strconv.Itoa(res.WPM)},
		{"Accuracy", formatPercent(res.Accuracy) + "%"},
		{"Time", res.Time},
		{"Characters", strconv.Itoa(res.Total)},
		{"Correct", strconv.Itoa(res.Correct)},
		{"Incorrect", strconv.Itoa(res.Incorrect)},
	}
	if len(res.Samples) > 1 {
		rows = append(rows, [2]string{"Trend", metrics.Sparkline(res.Samples)})
	}
	lines := []string{
		cardTitleStyle.Render("Test Complete!"),
		ratingStyle.Render(res.Rating.Label),
		"",
	}
	for _, row := range rows {
		lines = append(lines, cardLabelStyle.Render(fmt.Sprintf("%-12s", row[0]))+cardValueStyle.Render(row[1]))
	}
	lines = append(lines, "", cardLabelStyle.Render("ctrl+r try again · ctrl+n new text · esc close"))
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// formatPercent drops a trailing ".0" so that 100 renders as "100".
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func deleteLastWord(input []rune) []rune {
	end := len(input)
	for end > 0 && input[end-1] == ' ' {
		end--
	}
	for end > 0 && input[end-1] != ' ' {
		end--
	}
	return input[:end]
}

func ringBell() tea.Msg {
	// Audio feedback is best effort.
	_, _ = fmt.Fprint(os.Stderr, "\a")
	return nil
}
