package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/alexanderramin/rcpsp/internal/report"
	"github.com/alexanderramin/rcpsp/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRenderLoad(t *testing.T) {
	tests := []struct {
		name   string
		load   float64
		width  int
		filled int
		pct    string
	}{
		{"empty", 0, 10, 0, "  0%"},
		{"half", 0.5, 10, 5, " 50%"},
		{"full", 1, 10, 10, "100%"},
		{"over capacity clamps bar", 1.5, 10, 10, "150%"},
		{"negative clamps", -0.5, 10, 0, "  0%"},
		{"tiny width clamps to 2", 0.5, 1, 1, " 50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderLoad(tt.load, tt.width))
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.True(t, strings.HasSuffix(got, "] "+tt.pct), got)
		})
	}
}

func TestFormatPeakLoad(t *testing.T) {
	rep := &report.Report{Usage: report.Usage{Days: 3, Resources: []report.UsageRow{
		{Resource: "r1", Values: []int{1, 2, 1}},
		{Resource: "n1", Values: []int{4, 4, 4}},
	}}}
	resources := []domain.Resource{testutil.NewTestResource("r1", 4), testutil.NewTestResource("n1", 5)}

	out := stripANSI(FormatPeakLoad(rep, resources))

	assert.Contains(t, out, "PEAK LOAD")
	assert.Contains(t, out, "2 / 4")
	assert.Contains(t, out, " 50%")
	assert.NotContains(t, out, "n1", "nonrenewable resources have no daily capacity")
}

func TestFormatPeakLoad_NothingRenewable(t *testing.T) {
	assert.Empty(t, FormatPeakLoad(&report.Report{}, nil))
}
