package engine

import (
	"math"

	"github.com/mwiater/litebench/internal/predictor"
	"github.com/mwiater/litebench/internal/shape"
)

// op computes dst from src. Implementations resize dst themselves.
type op func(src, dst predictor.Tensor)

var ops = map[string]op{
	"identity": identityOp,
	"softmax":  softmaxOp,
	"sum":      reduceOp(sum),
	"mean":     reduceOp(mean),
	"max":      reduceOp(maxOf),
	"min":      reduceOp(minOf),
}

func identityOp(src, dst predictor.Tensor) {
	dst.Resize(src.Shape())
	copy(dst.MutableData(), src.Data())
}

func softmaxOp(src, dst predictor.Tensor) {
	dst.Resize(src.Shape())
	in, out := src.Data(), dst.MutableData()
	if len(in) == 0 {
		return
	}
	peak := maxOf(in)
	var total float64
	for i, v := range in {
		e := math.Exp(float64(v - peak))
		out[i] = float32(e)
		total += e
	}
	for i := range out {
		out[i] = float32(float64(out[i]) / total)
	}
}

func reduceOp(fn func([]float32) float32) op {
	return func(src, dst predictor.Tensor) {
		dst.Resize(shape.Shape{1})
		dst.MutableData()[0] = fn(src.Data())
	}
}

func sum(values []float32) float32 {
	var total float64
	for _, v := range values {
		total += float64(v)
	}
	return float32(total)
}

func mean(values []float32) float32 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float32(len(values))
}

func maxOf(values []float32) float32 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float32) float32 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
