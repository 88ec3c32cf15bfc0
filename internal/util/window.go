package util

import (
	"math"
	"sync"

	"github.com/asecurityteam/rolling"
)

// RollingWindow keeps the last n values. Unlike a bare rolling.PointPolicy it
// only aggregates over values that were actually appended, so a window that is
// not yet full is not dragged towards zero.
type RollingWindow struct {
	mu     sync.Mutex
	policy *rolling.PointPolicy
	size   int
	count  int
}

func CreateRollingWindow(size int) *RollingWindow {
	return &RollingWindow{
		policy: rolling.NewPointPolicy(rolling.NewWindow(size)),
		size:   size,
	}
}

func (w *RollingWindow) Append(value float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.policy.Append(value)
	if w.count < w.size {
		w.count++
	}
}

// Len returns the number of values currently held.
func (w *RollingWindow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Avg returns the mean of the held values, NaN if empty.
func (w *RollingWindow) Avg() float64 {
	return w.reduce(func(values []float64) float64 {
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	})
}

func (w *RollingWindow) Max() float64 {
	return w.reduce(func(values []float64) float64 {
		result := math.Inf(-1)
		for _, v := range values {
			result = math.Max(result, v)
		}
		return result
	})
}

func (w *RollingWindow) Min() float64 {
	return w.reduce(func(values []float64) float64 {
		result := math.Inf(1)
		for _, v := range values {
			result = math.Min(result, v)
		}
		return result
	})
}

func (w *RollingWindow) reduce(f func(values []float64) float64) float64 {
	w.mu.Lock()
	count := w.count
	w.mu.Unlock()
	if count <= 0 {
		return math.NaN()
	}

	return w.policy.Reduce(func(window rolling.Window) float64 {
		// buckets are filled in order, so the first count buckets hold data
		values := make([]float64, 0, count)
		for _, bucket := range window[:count] {
			values = append(values, bucket...)
		}
		return f(values)
	})
}
