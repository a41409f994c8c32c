package main

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// cell is one table entry. Widths are measured on text before painting.
type cell struct {
	text  string
	paint *color.Color
}

func plain(s string) cell { return cell{text: s} }

type table struct {
	header []string
	rows   [][]cell
}

func newTable(header ...string) *table {
	return &table{header: header}
}

func (t *table) add(cells ...cell) {
	t.rows = append(t.rows, cells)
}

func (t *table) write(w io.Writer) error {
	widths := make([]int, len(t.header))
	for i, h := range t.header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, c := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(c.text))
			}
		}
	}

	bold := color.New(color.Bold)
	var b strings.Builder
	line := func(cells []cell) {
		for i, c := range cells {
			text := c.text
			if i < len(cells)-1 {
				text = runewidth.FillRight(text, widths[i]+2)
			}
			if c.paint != nil {
				text = c.paint.Sprint(text)
			}
			b.WriteString(text)
		}
		b.WriteString("\n")
	}

	head := make([]cell, len(t.header))
	for i, h := range t.header {
		head[i] = cell{text: h, paint: bold}
	}
	line(head)
	for _, row := range t.rows {
		line(row)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
