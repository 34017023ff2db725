// internal/report/report.go
// Package report renders benchmark results and output tensors as text.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/litebench/internal/benchmark"
	"github.com/mwiater/litebench/internal/predictor"
)

const (
	modelColumnWidth = 30
	valuePrecision   = 5
)

// Reporter writes aligned result rows. Output name rows are styled for terminals;
// value rows are always plain so columns line up when piped.
type Reporter struct {
	w           io.Writer
	nameStyle lipgloss.Style
}

// New creates a Reporter writing to w.
func New(w io.Writer) *Reporter {
	renderer := lipgloss.NewRenderer(w)
	return &Reporter{
		w:         w,
		nameStyle: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
	}
}

// PrintResult prints one row: the model name padded to 30 columns, then min,
// max and average, each in a 12 column field with 5 decimals.
func (r *Reporter) PrintResult(res benchmark.Result) {
	fmt.Fprintf(r.w, "%-*s ", modelColumnWidth, res.ModelName)
	fmt.Fprintf(r.w, "min = %-12.*f", valuePrecision, res.Min)
	fmt.Fprintf(r.w, "max = %-12.*f", valuePrecision, res.Max)
	fmt.Fprintf(r.w, "average = %-12.*f", valuePrecision, res.Average)
	fmt.Fprintln(r.w)
}

// PrintOutputs prints the name, shape and flattened values of every output tensor.
func (r *Reporter) PrintOutputs(outs []predictor.OutputDescriptor) {
	for i, out := range outs {
		fmt.Fprintln(r.w, r.nameStyle.Render(fmt.Sprintf("output[%d]: %s", i, out.Name)))
		fmt.Fprintf(r.w, "  shape: %s\n", formatInts(out.Shape))
		fmt.Fprintf(r.w, "  data: %s\n", formatFloats(out.Values))
	}
}

func formatInts(values []int64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatFloats(values []float32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(float64(v), 'f', valuePrecision, 32)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
