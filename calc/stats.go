// Package calc holds the statistics behind the correlation sections:
// means, Pearson correlation and ordinary-least-squares trendlines.
package calc

import "math"

// Mean averages the non-NaN values. Returns NaN for an input with no
// usable values.
func Mean(values []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Pearson computes the linear correlation coefficient for the paired
// samples. Pairs with a NaN on either side are skipped. Returns NaN when
// fewer than two usable pairs remain or either side has zero variance.
func Pearson(xs, ys []float64) float64 {
	xs, ys = dropNaNPairs(xs, ys)
	n := float64(len(xs))
	if n < 2 {
		return math.NaN()
	}

	mx, my := Mean(xs), Mean(ys)
	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}

// LinearFit returns the OLS slope and intercept for y over x, skipping
// NaN pairs. Both are NaN when no line is defined.
func LinearFit(xs, ys []float64) (slope, intercept float64) {
	xs, ys = dropNaNPairs(xs, ys)
	n := float64(len(xs))
	if n < 2 {
		return math.NaN(), math.NaN()
	}

	mx, my := Mean(xs), Mean(ys)
	var cov, varX float64
	for i := range xs {
		cov += (xs[i] - mx) * (ys[i] - my)
		varX += (xs[i] - mx) * (xs[i] - mx)
	}
	if varX == 0 {
		return math.NaN(), math.NaN()
	}

	slope = cov / varX
	intercept = my - slope*mx
	return slope, intercept
}

func dropNaNPairs(xs, ys []float64) ([]float64, []float64) {
	if len(ys) < len(xs) {
		xs = xs[:len(ys)]
	} else {
		ys = ys[:len(xs)]
	}
	outX := make([]float64, 0, len(xs))
	outY := make([]float64, 0, len(xs))
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		outX = append(outX, xs[i])
		outY = append(outY, ys[i])
	}
	return outX, outY
}
