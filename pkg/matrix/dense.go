package matrix

import (
	"fmt"
	"io"
	"math"
)

// Dense is an assembled system A·x = B with 1-based rows and columns.
// Row and column 0 exist only so that node IDs index directly.
type Dense struct {
	Size int
	A    [][]float64
	B    []float64
}

var _ DeviceMatrix = (*Dense)(nil)

func NewDense(size int) *Dense {
	a := make([][]float64, size+1)
	for i := range a {
		a[i] = make([]float64, size+1)
	}
	return &Dense{Size: size, A: a, B: make([]float64, size+1)}
}

func (d *Dense) inBounds(i int) bool {
	return i > 0 && i <= d.Size
}

func (d *Dense) AddElement(i, j int, value float64) {
	if d.inBounds(i) && d.inBounds(j) {
		d.A[i][j] += value
	}
}

func (d *Dense) AddRHS(i int, value float64) {
	if d.inBounds(i) {
		d.B[i] += value
	}
}

func (d *Dense) Clear() {
	for i := range d.A {
		clear(d.A[i])
	}
	clear(d.B)
}

// Identical reports bit-for-bit equality with o.
func (d *Dense) Identical(o *Dense) bool {
	if d.Size != o.Size {
		return false
	}
	for i := 1; i <= d.Size; i++ {
		if math.Float64bits(d.B[i]) != math.Float64bits(o.B[i]) {
			return false
		}
		for j := 1; j <= d.Size; j++ {
			if math.Float64bits(d.A[i][j]) != math.Float64bits(o.A[i][j]) {
				return false
			}
		}
	}
	return true
}

// PrintSystem writes the equations row by row. labels, when long enough,
// names the unknowns (labels[j] for column j).
func (d *Dense) PrintSystem(w io.Writer, labels []string) {
	label := func(j int) string {
		if j < len(labels) && labels[j] != "" {
			return labels[j]
		}
		return fmt.Sprintf("x%d", j)
	}

	fmt.Fprintf(w, "Circuit Equations (%dx%d):\n", d.Size, d.Size)
	for i := 1; i <= d.Size; i++ {
		fmt.Fprintf(w, "Equation %d:", i)
		for j := 1; j <= d.Size; j++ {
			if d.A[i][j] != 0 {
				fmt.Fprintf(w, "  %+g*%s", d.A[i][j], label(j))
			}
		}
		fmt.Fprintf(w, " = %g\n", d.B[i])
	}
}
