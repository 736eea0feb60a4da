package scaling

import (
	"fmt"
	"time"
)

// Micro-benchmark parameters. The dense matrix multiply is sized to run for
// roughly a second on the reference machine; referenceElapsed is the
// wall-clock time the same multiply took there.
const (
	benchmarkDim = 384

	referenceElapsed = 1120 * time.Millisecond
)

// FromBenchmark measures local speed with one fixed-size dense matrix
// multiply, timed with Go's monotonic clock. It runs exactly once per
// invocation and is never retried.
//
// The elapsed-time ratio is inverted into the speed convention: a machine
// that finishes the multiply in half the reference time gets k=2.
func FromBenchmark() Factor {
	elapsed := timeMatmul(benchmarkDim)
	k := referenceElapsed.Seconds() / elapsed.Seconds()
	return Factor{
		K:      k,
		Source: SourceBenchmark,
		Note: fmt.Sprintf("matmul %dx%d in %.2fs vs %.2fs reference = %.2fx",
			benchmarkDim, benchmarkDim, elapsed.Seconds(), referenceElapsed.Seconds(), k),
	}
}

// timeMatmul multiplies two dim x dim float64 matrices with the naive triple
// loop and returns the elapsed wall time.
func timeMatmul(dim int) time.Duration {
	a := make([]float64, dim*dim)
	b := make([]float64, dim*dim)
	c := make([]float64, dim*dim)
	for i := range a {
		a[i] = float64(i%13) + 0.5
		b[i] = float64(i%7) + 0.25
	}

	start := time.Now()
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			var sum float64
			for l := 0; l < dim; l++ {
				sum += a[i*dim+l] * b[l*dim+j]
			}
			c[i*dim+j] = sum
		}
	}
	elapsed := time.Since(start)

	// Keep the result live so the multiply is not optimized away.
	sink = c[dim*dim-1]

	return elapsed
}

var sink float64
