package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mwiater/litebench/internal/benchmark"
	"github.com/mwiater/litebench/internal/predictor"
	"github.com/mwiater/litebench/internal/shape"
	"github.com/stretchr/testify/require"
)

func TestPrintResultColumns(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).PrintResult(benchmark.Result{ModelName: "mobilenet_v1", Min: 1.5, Max: 12.25, Average: 4})

	want := "mobilenet_v1                   " +
		"min = 1.50000     " +
		"max = 12.25000    " +
		"average = 4.00000     \n"
	require.Equal(t, want, buf.String())
}

func TestPrintResultRowsAlign(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.PrintResult(benchmark.Result{ModelName: "a", Min: 1, Max: 2, Average: 1.5})
	r.PrintResult(benchmark.Result{ModelName: "a_much_longer_model_name", Min: 100, Max: 200, Average: 150})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, strings.Index(lines[0], "max ="), strings.Index(lines[1], "max ="))
	require.Equal(t, strings.Index(lines[0], "average ="), strings.Index(lines[1], "average ="))
}

func TestPrintOutputs(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).PrintOutputs([]predictor.OutputDescriptor{
		{Name: "softmax", Shape: shape.Shape{1, 3}, Values: []float32{0.25, 0.5, 0.25}},
		{Name: "empty", Shape: shape.Shape{0}},
	})

	out := buf.String()
	require.Contains(t, out, "output[0]: softmax\n")
	require.Contains(t, out, "  shape: [1, 3]\n")
	require.Contains(t, out, "  data: [0.25000, 0.50000, 0.25000]\n")
	require.Contains(t, out, "output[1]: empty\n")
	require.Contains(t, out, "  data: []\n")
}
