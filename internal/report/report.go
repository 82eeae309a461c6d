// Package report renders plain-text tables for passages and results.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typespeed/internal/metrics"
	"github.com/verte-zerg/typespeed/internal/model"
)

const minPreviewWidth = 10

// RenderPassages prints the corpus as an index/length/preview table.
// Previews are truncated so that each line fits in width columns; width <= 0
// disables truncation.
func RenderPassages(w io.Writer, passages []model.Passage, width int) error {
	if len(passages) == 0 {
		_, err := fmt.Fprintln(w, "No passages available.")
		return err
	}
	headers := []string{"#", "Chars", "Preview"}
	rows := make([][]string, 0, len(passages))
	for _, p := range passages {
		rows = append(rows, []string{
			strconv.Itoa(p.Index),
			strconv.Itoa(len([]rune(p.Text))),
			p.Text,
		})
	}
	if width > 0 {
		fixed := 0
		for _, row := range append([][]string{headers}, rows...) {
			if n := runewidth.StringWidth(row[0]) + runewidth.StringWidth(row[1]) + 2; n > fixed {
				fixed = n
			}
		}
		preview := width - fixed
		if preview < minPreviewWidth {
			preview = minPreviewWidth
		}
		for _, row := range rows {
			row[2] = runewidth.Truncate(row[2], preview, "...")
		}
	}
	lines := formatTable(headers, rows, map[int]bool{0: true, 1: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderResults prints the final results of a completed test.
func RenderResults(w io.Writer, res model.Results) error {
	if _, err := fmt.Fprintf(w, "Test Complete: %s\n", res.Rating.Label); err != nil {
		return err
	}
	rows := [][]string{
		{"WPM", strconv.Itoa(res.WPM)},
		{"Accuracy", fmt.Sprintf("%.1f%%", res.Accuracy)},
		{"Time", res.Time},
		{"Characters", strconv.Itoa(res.Total)},
		{"Correct", strconv.Itoa(res.Correct)},
		{"Incorrect", strconv.Itoa(res.Incorrect)},
	}
	if len(res.Samples) > 1 {
		rows = append(rows, []string{"WPM trend", metrics.Sparkline(res.Samples)})
	}
	for _, line := range formatTable(nil, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
