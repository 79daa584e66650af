package formatter

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/rcpsp/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTree_Empty(t *testing.T) {
	assert.Empty(t, RenderTree(nil))
}

func TestRenderTree_ConnectorsAndBadges(t *testing.T) {
	out := stripANSI(RenderTree([]TreeItem{
		{Title: "data"},
		{Title: "a.txt", Level: 1, Detail: "makespan 5"},
		{Title: "long-name.txt", Level: 1, IsLast: true, Failed: true, Detail: "boom"},
	}))

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "data", lines[0])
	assert.Equal(t, "├─ ✔ a.txt          [ makespan 5 ]", lines[1])
	assert.Equal(t, "└─ ✖ long-name.txt  [ boom ]", lines[2])
}

func TestFormatBatchSummary(t *testing.T) {
	root := filepath.Join("data", "sets")
	ok := filepath.Join(root, "a.txt")
	bad := filepath.Join(root, "nested", "b.txt")
	items := []service.BatchItem{
		{Path: ok},
		{Path: bad, Err: errors.New("parse error")},
	}

	out := stripANSI(FormatBatchSummary(root, items, map[string]string{ok: "makespan 7"}))

	assert.Contains(t, out, "BATCH")
	assert.Contains(t, out, "✔ a.txt")
	assert.Contains(t, out, "[ makespan 7 ]")
	assert.Contains(t, out, "✖ "+filepath.Join("nested", "b.txt"))
	assert.Contains(t, out, "[ parse error ]")
	assert.Contains(t, out, "2 datasets, 1 failed")
}
