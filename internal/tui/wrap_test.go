package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/typespeed/internal/model"
)

func TestBuildStyledRunesCursor(t *testing.T) {
	runes := buildStyledRunes(model.Display{
		Text:    "ab",
		Classes: []model.CharClass{model.CharCorrect, model.CharCurrent},
	})
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != cursorStyle.Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	runes := buildStyledRunes(model.Display{
		Text:    "ab",
		Classes: []model.CharClass{model.CharCorrect, model.CharIncorrect},
	})
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style with target rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	runes := buildStyledRunes(model.Display{
		Text: "one two",
		Classes: []model.CharClass{
			model.CharCorrect, model.CharCurrent, model.CharUntyped, model.CharUntyped,
			model.CharUntyped, model.CharUntyped, model.CharUntyped,
		},
	})
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	runes := buildStyledRunes(model.Display{
		Text:    "a b",
		Classes: []model.CharClass{model.CharCorrect, model.CharIncorrect, model.CharCurrent},
	})
	if runes[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	text := "alpha beta gamma"
	classes := make([]model.CharClass, len(text))
	runes := buildStyledRunes(model.Display{Text: text, Classes: classes})
	wrapped := wrapStyledRunes(runes, 11)
	lines := strings.Split(wrapped, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), wrapped)
	}
}

func TestWrapStyledRunesKeepsCursorAtBreak(t *testing.T) {
	runes := buildStyledRunes(model.Display{
		Text:    "ab cd",
		Classes: []model.CharClass{model.CharCorrect, model.CharCorrect, model.CharCurrent, model.CharUntyped, model.CharUntyped},
	})
	lines := strings.Split(wrapStyledRunes(runes, 3), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != renderStyledRunes(runes[:3]) {
		t.Fatalf("expected the cursor space to end the first line")
	}
	if lines[1] != renderStyledRunes(runes[3:]) {
		t.Fatalf("unexpected second line")
	}
}

func TestWrapStyledRunesSplitsLongWords(t *testing.T) {
	text := "abcdefgh ij"
	runes := buildStyledRunes(model.Display{Text: text, Classes: make([]model.CharClass, len(text))})
	lines := strings.Split(wrapStyledRunes(runes, 3), "\n")
	want := []string{
		renderStyledRunes(runes[0:3]),
		renderStyledRunes(runes[3:6]),
		renderStyledRunes(runes[6:9]),
		renderStyledRunes(runes[9:11]),
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d mismatch", i)
		}
	}
}

func TestCurrentWord(t *testing.T) {
	target := []rune("one two")
	tests := []struct {
		cursor     int
		start, end int
		ok         bool
	}{
		{0, 0, 3, true},
		{2, 0, 3, true},
		{3, 4, 7, true},
		{5, 4, 7, true},
		{-1, 0, 0, false},
		{7, 0, 0, false},
	}
	for _, tt := range tests {
		start, end, ok := currentWord(target, tt.cursor)
		if start != tt.start || end != tt.end || ok != tt.ok {
			t.Fatalf("currentWord(%d) = %d, %d, %v", tt.cursor, start, end, ok)
		}
	}
}
