// internal/benchmark/types.go
package benchmark

import (
	"time"

	"github.com/mwiater/litebench/internal/predictor"
)

// TimingSeries holds per-iteration latencies in milliseconds.
type TimingSeries []float64

// LabelPolicy decides which end of the sorted series is reported under "min" and "max".
type LabelPolicy int

const (
	// LabelsConventional reports the smallest latency as min and the largest as max.
	LabelsConventional LabelPolicy = iota
	// LabelsLegacySwapped reports the largest latency as min and the smallest as max,
	// matching the output of the original benchmark binary.
	LabelsLegacySwapped
)

func (p LabelPolicy) String() string {
	if p == LabelsLegacySwapped {
		return "legacy-swapped"
	}
	return "conventional"
}

// Result holds the aggregated latency statistics for a single model.
type Result struct {
	RunID      string                       `json:"runId"`
	ModelName  string                       `json:"modelName"`
	Min        float64                      `json:"minMillis"`
	Max        float64                      `json:"maxMillis"`
	Average    float64                      `json:"averageMillis"`
	Median     float64                      `json:"medianMillis"`
	StdDev     float64                      `json:"stdDevMillis"`
	Samples    int                          `json:"samples"`
	Warmup     int                          `json:"warmup"`
	Labels     string                       `json:"labels"`
	Timings    TimingSeries                 `json:"timingsMillis"`
	StartedAt  time.Time                    `json:"startedAt"`
	FinishedAt time.Time                    `json:"finishedAt"`
	Outputs    []predictor.OutputDescriptor `json:"outputs,omitempty"`
}
