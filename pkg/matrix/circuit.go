package matrix

import (
	"fmt"

	"github.com/edp1096/sparse"
)

// CircuitMatrix solves assembled systems with the sparse LU package. Element
// handles are created once, before the first factorization, and reused for
// every later load so that stamps survive the solver's internal reordering.
type CircuitMatrix struct {
	Size     int
	matrix   *sparse.Matrix
	elements [][]*sparse.Element
	rhs      []float64
	solution []float64
	config   *sparse.Configuration
}

var _ DeviceMatrix = (*CircuitMatrix)(nil)

func NewMatrix(size int) (*CircuitMatrix, error) {
	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 false,
		SeparatedComplexVectors: false,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %w", err)
	}

	m := &CircuitMatrix{
		Size:     size,
		matrix:   mat,
		rhs:      make([]float64, size+1), // 1-based indexing
		solution: make([]float64, size+1),
		config:   config,
	}
	m.SetupElements()
	return m, nil
}

func (m *CircuitMatrix) SetupElements() {
	m.elements = make([][]*sparse.Element, m.Size+1)
	for i := 1; i <= m.Size; i++ {
		m.elements[i] = make([]*sparse.Element, m.Size+1)
		for j := 1; j <= m.Size; j++ {
			m.elements[i][j] = m.matrix.GetElement(int64(i), int64(j))
		}
	}
}

func (m *CircuitMatrix) AddElement(i, j int, value float64) {
	if i <= 0 || j <= 0 || i > m.Size || j > m.Size {
		return
	}
	m.elements[i][j].Real += value
}

func (m *CircuitMatrix) AddRHS(i int, value float64) {
	if i <= 0 || i > m.Size {
		return
	}
	m.rhs[i] += value
}

func (m *CircuitMatrix) Clear() {
	m.matrix.Clear()
	clear(m.rhs)
}

// Load replaces the matrix contents with an assembled system.
func (m *CircuitMatrix) Load(d *Dense) error {
	if d.Size != m.Size {
		return fmt.Errorf("system size %d does not match matrix size %d", d.Size, m.Size)
	}

	m.Clear()
	for i := 1; i <= d.Size; i++ {
		for j := 1; j <= d.Size; j++ {
			if v := d.A[i][j]; v != 0 {
				m.elements[i][j].Real += v
			}
		}
		m.rhs[i] = d.B[i]
	}
	return nil
}

func (m *CircuitMatrix) Solve() error {
	var err error

	err = m.matrix.Factor()
	if err != nil {
		return fmt.Errorf("matrix factorization failed: %w", err)
	}

	m.solution, err = m.matrix.Solve(m.rhs)
	if err != nil {
		return fmt.Errorf("matrix solve failed: %w", err)
	}

	return nil
}

// SolveSystem loads d and solves it. The returned vector is 1-based with
// x[0] = 0 and is owned by the caller.
func (m *CircuitMatrix) SolveSystem(d *Dense) ([]float64, error) {
	if err := m.Load(d); err != nil {
		return nil, err
	}
	if err := m.Solve(); err != nil {
		return nil, err
	}

	x := make([]float64, m.Size+1)
	copy(x, m.solution)
	x[0] = 0
	return x, nil
}

func (m *CircuitMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
		m.matrix = nil
	}
	m.elements = nil
}
