package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/kanaflow/internal/catalog"
)

// RenderChart prints kana grouped by row, one script after the other. When
// a row with romaji does not fit in width, the romaji are left out.
func RenderChart(w io.Writer, kana []catalog.Kana, width int) error {
	var scripts []catalog.Script
	byScript := map[catalog.Script]map[catalog.Row][]catalog.Kana{}
	for _, k := range kana {
		rows, ok := byScript[k.Script]
		if !ok {
			rows = map[catalog.Row][]catalog.Kana{}
			byScript[k.Script] = rows
			scripts = append(scripts, k.Script)
		}
		rows[k.Row] = append(rows[k.Row], k)
	}

	for i, script := range scripts {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, chartTitle(script)); err != nil {
			return err
		}
		var tableRows [][]string
		for _, row := range catalog.Rows() {
			ks := byScript[script][row]
			if len(ks) == 0 {
				continue
			}
			cells := []string{string(row)}
			for _, k := range ks {
				cells = append(cells, k.Char+" "+k.Romaji)
			}
			tableRows = append(tableRows, cells)
		}
		lines := formatTable(nil, tableRows, nil)
		if width > 0 && maxWidth(lines) > width {
			lines = formatTable(nil, compactRows(byScript[script]), nil)
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func compactRows(rows map[catalog.Row][]catalog.Kana) [][]string {
	var out [][]string
	for _, row := range catalog.Rows() {
		ks := rows[row]
		if len(ks) == 0 {
			continue
		}
		cells := []string{string(row)}
		for _, k := range ks {
			cells = append(cells, k.Char)
		}
		out = append(out, cells)
	}
	return out
}

func chartTitle(s catalog.Script) string {
	switch s {
	case catalog.ScriptKatakana:
		return "Katakana"
	default:
		return "Hiragana"
	}
}

func maxWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		widest = max(widest, displayWidth(line))
	}
	return widest
}
