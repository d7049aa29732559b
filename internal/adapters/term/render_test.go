package term

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/okian/podium/internal/domain/pipeline"
)

func init() {
	color.NoColor = true
}

func countryResult() pipeline.Result {
	return pipeline.Result{
		View:     pipeline.ViewMedalCountByCountry,
		Title:    "Medal Count by Country",
		Chart:    pipeline.ChartBar,
		Filtered: true,
		Columns:  []string{"Country", "Medals"},
		Rows:     [][]any{{"USA", 120}, {"FRA", 7}},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"table": FormatTable, "JSON": FormatJSON, " yaml ": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, countryResult(), FormatTable))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Medal Count by Country", lines[0])
	assert.Equal(t, "  Country  Medals", lines[1])
	assert.Equal(t, "  -------  ------", lines[2])
	assert.Equal(t, "  USA         120", lines[3])
	assert.Equal(t, "  FRA           7", lines[4])
}

func TestRenderTableUnfilteredAndEmpty(t *testing.T) {
	res := countryResult()
	res.Filtered = false
	res.Rows = [][]any{}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, res, FormatTable))
	assert.Contains(t, buf.String(), "filters not applied")
	assert.Contains(t, buf.String(), "no data for the selected filters")
}

func TestRenderTableAlignsUnicodeNames(t *testing.T) {
	res := pipeline.Result{
		Title:    "Top 10 Athletes by Medals",
		Chart:    pipeline.ChartHorizontalBar,
		Filtered: true,
		Columns:  []string{"Name", "Medal", "Count"},
		Rows:     [][]any{{"Éric", "Gold", 3}, {"Bo", "Bronze", 12}},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, res, FormatTable))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "  Éric  Gold        3", lines[3])
	assert.Equal(t, "  Bo    Bronze     12", lines[4])
}

func TestRenderText(t *testing.T) {
	res := pipeline.Result{Title: "Fun Facts", Chart: pipeline.ChartText, Text: []string{"one", "two"}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, res, FormatTable))
	assert.Equal(t, "Fun Facts\n  * one\n  * two\n", buf.String())
}

func TestRenderJSONAndYAML(t *testing.T) {
	var js bytes.Buffer
	require.NoError(t, Render(&js, countryResult(), FormatJSON))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, "medal-count-by-country", decoded["view"])
	assert.Equal(t, true, decoded["filtered"])

	var ym bytes.Buffer
	require.NoError(t, Render(&ym, countryResult(), FormatYAML))
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &fromYAML))
	assert.Equal(t, "Medal Count by Country", fromYAML["title"])
	assert.Equal(t, []any{"Country", "Medals"}, fromYAML["columns"])
}

func TestRenderUnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, countryResult(), Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
