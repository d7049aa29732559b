// Package term renders view results for a terminal: aligned colour tables,
// JSON or YAML.
package term

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/pipeline"
)

// Format selects the output encoding.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (want table, json or yaml)", ErrUnknownFormat, s)
	}
}

var (
	colorBold   = color.New(color.Bold)
	colorFaint  = color.New(color.Faint)
	colorGold   = color.New(color.FgYellow, color.Bold)
	colorSilver = color.New(color.FgWhite)
	colorBronze = color.New(color.FgRed)
)

// Render writes res to w in the given format.
func Render(w io.Writer, res pipeline.Result, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("render yaml: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return renderTable(w, res)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

func renderTable(w io.Writer, res pipeline.Result) error {
	if _, err := fmt.Fprintln(w, colorBold.Sprint(res.Title)); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if !res.Filtered && res.Chart != pipeline.ChartText {
		if _, err := fmt.Fprintln(w, colorFaint.Sprint("(whole dataset, filters not applied)")); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
	}

	if res.Chart == pipeline.ChartText {
		for _, line := range res.Text {
			if _, err := fmt.Fprintf(w, "  * %s\n", line); err != nil {
				return fmt.Errorf("render table: %w", err)
			}
		}
		return nil
	}

	if len(res.Rows) == 0 {
		_, err := fmt.Fprintln(w, colorFaint.Sprint("no data for the selected filters"))
		return err
	}

	cells := make([][]string, len(res.Rows))
	numeric := make([]bool, len(res.Columns))
	for i := range numeric {
		numeric[i] = true
	}
	for r, row := range res.Rows {
		cells[r] = make([]string, len(res.Columns))
		for c := range res.Columns {
			if c >= len(row) {
				continue
			}
			cells[r][c] = fmt.Sprint(row[c])
			if _, ok := row[c].(int); !ok {
				numeric[c] = false
			}
		}
	}

	widths := make([]int, len(res.Columns))
	for c, h := range res.Columns {
		widths[c] = utf8.RuneCountInString(h)
	}
	for _, row := range cells {
		for c, v := range row {
			widths[c] = max(widths[c], utf8.RuneCountInString(v))
		}
	}

	header := make([]string, len(res.Columns))
	rule := make([]string, len(res.Columns))
	for c, h := range res.Columns {
		header[c] = colorBold.Sprint(pad(h, widths[c], numeric[c]))
		rule[c] = strings.Repeat("-", widths[c])
	}
	if _, err := fmt.Fprintf(w, "  %s\n  %s\n", strings.Join(header, "  "), strings.Join(rule, "  ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	for _, row := range cells {
		parts := make([]string, len(row))
		for c, v := range row {
			parts[c] = paint(res.Columns[c], v, pad(v, widths[c], numeric[c]))
		}
		if _, err := fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ")); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
	}
	return nil
}

// pad justifies v to width, right-aligned for numeric columns. Width counts
// runes, not ANSI escapes.
func pad(v string, width int, right bool) string {
	n := width - utf8.RuneCountInString(v)
	if n <= 0 {
		return v
	}
	if right {
		return strings.Repeat(" ", n) + v
	}
	return v + strings.Repeat(" ", n)
}

func paint(column, raw, padded string) string {
	if column != "Medal" {
		return padded
	}
	switch model.Medal(raw) {
	case model.Gold:
		return colorGold.Sprint(padded)
	case model.Silver:
		return colorSilver.Sprint(padded)
	case model.Bronze:
		return colorBronze.Sprint(padded)
	default:
		return padded
	}
}
