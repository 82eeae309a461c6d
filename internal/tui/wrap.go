package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typespeed/internal/model"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

func buildStyledRunes(display model.Display) []styledRune {
	targetRunes := []rune(display.Text)
	cursorIndex := -1
	for i, class := range display.Classes {
		if class == model.CharCurrent {
			cursorIndex = i
			break
		}
	}
	wordStart, wordEnd, hasWord := currentWord(targetRunes, cursorIndex)

	out := make([]styledRune, 0, len(targetRunes))
	for i, target := range targetRunes {
		class := model.CharUntyped
		if i < len(display.Classes) {
			class = display.Classes[i]
		}
		displayed := target
		style := pendingStyle
		switch class {
		case model.CharCorrect:
			style = correctStyle
		case model.CharIncorrect:
			style = incorrectStyle
			if target == ' ' {
				displayed = '•'
			}
		case model.CharCurrent:
			style = cursorStyle
		default:
			if hasWord && i >= wordStart && i < wordEnd {
				style = currentWordStyle
			}
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: target == ' ',
		})
	}
	return out
}

// currentWord returns the bounds of the word under the cursor, or of the next
// word when the cursor sits on a space.
func currentWord(target []rune, cursor int) (start, end int, ok bool) {
	if cursor < 0 || cursor >= len(target) {
		return 0, 0, false
	}
	start = cursor
	for start < len(target) && target[start] == ' ' {
		start++
	}
	if start == len(target) {
		return 0, 0, false
	}
	for start > 0 && target[start-1] != ' ' {
		start--
	}
	end = start
	for end < len(target) && target[end] != ' ' {
		end++
	}
	return start, end, true
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// token is a word followed by the spaces after it.
type token struct {
	word []styledRune
	gap  []styledRune
}

func tokenize(runes []styledRune) []token {
	var out []token
	var cur token
	for _, r := range runes {
		if r.isSpace {
			cur.gap = append(cur.gap, r)
			continue
		}
		if len(cur.gap) > 0 {
			out = append(out, cur)
			cur = token{}
		}
		cur.word = append(cur.word, r)
	}
	if len(cur.word) > 0 || len(cur.gap) > 0 {
		out = append(out, cur)
	}
	return out
}

// wrapStyledRunes lays words out in lines of at most width columns. A gap at
// a line break stays at the end of the line when it fits, so a cursor or a
// mistyped space there remains visible. Words wider than a line are split.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var lines []string
	var line, gap []styledRune
	breakLine := func() {
		if widthOf(line)+widthOf(gap) <= width {
			line = append(line, gap...)
		}
		lines = append(lines, renderStyledRunes(line))
		line, gap = nil, nil
	}

	for _, tok := range tokenize(runes) {
		word := tok.word
		for len(word) > 0 {
			if len(line) > 0 && widthOf(line)+widthOf(gap)+widthOf(word) > width {
				breakLine()
				continue
			}
			line = append(line, gap...)
			gap = nil
			if widthOf(line)+widthOf(word) <= width {
				line = append(line, word...)
				word = nil
				continue
			}
			n := fitting(word, width-widthOf(line))
			line = append(line, word[:n]...)
			word = word[n:]
			breakLine()
		}
		gap = append(gap, tok.gap...)
	}
	line = append(line, gap...)
	lines = append(lines, renderStyledRunes(line))
	return strings.Join(lines, "\n")
}

func widthOf(runes []styledRune) int {
	total := 0
	for _, item := range runes {
		total += item.width
	}
	return total
}

// fitting returns how many leading runes fit in width columns, at least one.
func fitting(runes []styledRune, width int) int {
	used := 0
	for i, item := range runes {
		if used+item.width > width {
			if i == 0 {
				return 1
			}
			return i
		}
		used += item.width
	}
	return len(runes)
}
