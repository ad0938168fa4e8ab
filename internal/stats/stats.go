// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/kanaflow/internal/prefs"
	"github.com/verte-zerg/kanaflow/internal/session"
)

const sparkChars = " .:-=+*#%@"

// Hits returns 100 for every correct answer and 0 for every miss.
func Hits(history []session.AnswerRecord) []float64 {
	out := make([]float64, len(history))
	for i, rec := range history {
		if rec.Correct {
			out[i] = 100
		}
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the totals of one session.
func RenderSummary(w io.Writer, sum session.Summary) error {
	if sum.Attempts == 0 {
		_, err := fmt.Fprintln(w, "No answers recorded.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Correct: %d/%d\n", sum.Correct, sum.Attempts); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Accuracy: %.2f%%\n", sum.Accuracy()*100); err != nil {
		return err
	}
	if sum.Perfect() {
		if _, err := fmt.Fprintln(w, "Perfect run!"); err != nil {
			return err
		}
	}
	return nil
}

// RenderPreferences prints the persisted learner totals.
func RenderPreferences(w io.Writer, p prefs.Preferences) error {
	lines := formatTable([]string{"Setting", "Value"}, [][]string{
		{"Best streak", fmt.Sprintf("%d", p.BestStreak)},
		{"Perfect sessions", fmt.Sprintf("%d", p.TotalMastered)},
		{"Preferred mode", string(p.PreferredMode)},
	}, map[int]bool{1: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints every answer of a session, misses with the correct
// answer.
func RenderHistory(w io.Writer, history []session.AnswerRecord) error {
	if len(history) == 0 {
		_, err := fmt.Fprintln(w, "No answers recorded.")
		return err
	}
	lines := formatTable(HistoryHeaders(), HistoryRows(history), map[int]bool{0: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// HistoryHeaders returns the column titles of the answer table.
func HistoryHeaders() []string {
	return []string{"#", "Card", "Romaji", "Your answer", "Result"}
}

// HistoryRows returns one table row per answer.
func HistoryRows(history []session.AnswerRecord) [][]string {
	rows := make([][]string, 0, len(history))
	for i, rec := range history {
		result := "ok"
		if !rec.Correct {
			result = "miss: " + rec.CorrectAnswer
		}
		answer := rec.UserAnswer
		if answer == "" {
			answer = "-"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			rec.Display,
			rec.DisplayRomaji,
			answer,
			result,
		})
	}
	return rows
}
