package util

// BackwardDifferentialFormula holds the history weights of one BDF order.
type BackwardDifferentialFormula struct {
	coefficients []float64
	beta         float64
}

var BdfCoefficients = [2]BackwardDifferentialFormula{
	{[]float64{1.0}, 1.0},
	{[]float64{4.0 / 3.0, -1.0 / 3.0}, 2.0 / 3.0},
}

// GetBDFcoeffs returns the derivative weights for a uniform step dt.
// coeffs[0] multiplies the newest sample, coeffs[i] the sample i steps older.
func GetBDFcoeffs(order int, dt float64) []float64 {
	if order < 1 || order > len(BdfCoefficients) {
		order = 1
	}

	bdf := BdfCoefficients[order-1]
	coeffs := make([]float64, order+1)
	scale := 1.0 / (bdf.beta * dt)
	coeffs[0] = scale

	for i := 1; i <= order; i++ {
		coeffs[i] = -bdf.coefficients[i-1] * scale
	}

	return coeffs
}

// BackwardDifference approximates the derivative at the newest of samples,
// ordered newest first and spaced dt apart. The order used is len(samples)-1.
func BackwardDifference(dt float64, samples ...float64) float64 {
	if len(samples) < 2 || dt <= 0 {
		return 0
	}
	coeffs := GetBDFcoeffs(len(samples)-1, dt)

	d := 0.0
	for i, c := range coeffs {
		d += c * samples[i]
	}
	return d
}
