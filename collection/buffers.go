package collection

import (
	"math"

	"gorgonia.org/tensor"
)

// TimestampedBuffer pairs a derived quantity with the simulation time at
// which it was last computed. A buffer whose timestamp trails the current
// simulation time is stale and must be recomputed before being returned;
// the timestamp is the sole invalidation signal.
type TimestampedBuffer struct {
	Data      *tensor.Dense
	Timestamp float64
}

// NewTimestampedBuffer returns an empty buffer stamped with a sentinel time
// below any valid simulation time, so the first read always recomputes.
func NewTimestampedBuffer() TimestampedBuffer {
	return TimestampedBuffer{Timestamp: math.Inf(-1)}
}

// Fresh tells whether the buffer is valid at simulation time now.
func (b *TimestampedBuffer) Fresh(now float64) bool {
	return b.Timestamp >= now
}

// Set stores data and stamps the buffer with now.
func (b *TimestampedBuffer) Set(data *tensor.Dense, now float64) {
	b.Data = data
	b.Timestamp = now
}
