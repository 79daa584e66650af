package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"Name", "Qty"},
		[][]string{{"r1", "4"}, {"long-name", "12"}},
	))

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Name       Qty", lines[0])
	assert.Equal(t, "─────────  ───", lines[1])
	assert.Equal(t, "r1           4", lines[2])
	assert.Equal(t, "long-name   12", lines[3])
}

func TestRenderTable_TextColumnStaysLeftAligned(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"Day", "Cell"},
		[][]string{{"1", "N/A"}, {"2", "r1 1"}, {"3", ""}},
	))

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Day  Cell", lines[0])
	assert.Equal(t, "  1  N/A", lines[2])
	assert.Equal(t, "  3  ", lines[4])
}

func TestRenderTable_ShortRowsArePadded(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{{"x"}}))
	assert.Contains(t, out, "x  \n")
}

func TestRenderSection(t *testing.T) {
	out := stripANSI(RenderSection("Makespans", []string{"N"}, [][]string{{"1"}}))
	assert.True(t, strings.HasPrefix(out, "MAKESPANS\n─────────\n"))
	assert.True(t, strings.HasSuffix(out, "\n\n"))
}
