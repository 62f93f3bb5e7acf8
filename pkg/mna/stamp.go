package mna

import "github.com/edp1096/transpice/pkg/matrix"

// stampConductance adds g between n1 and n2.
func stampConductance(m matrix.DeviceMatrix, n1, n2 int, g float64) {
	if n1 != 0 {
		m.AddElement(n1, n1, g)
		if n2 != 0 {
			m.AddElement(n1, n2, -g)
		}
	}
	if n2 != 0 {
		if n1 != 0 {
			m.AddElement(n2, n1, -g)
		}
		m.AddElement(n2, n2, g)
	}
}

// stampVoltage imposes v(n1) - v(n2) = voltage through branch row bIdx.
func stampVoltage(m matrix.DeviceMatrix, n1, n2, bIdx int, voltage float64) {
	if n1 != 0 {
		m.AddElement(bIdx, n1, 1) // v1 coefficient
		m.AddElement(n1, bIdx, 1) // n1 current
	}
	if n2 != 0 {
		m.AddElement(bIdx, n2, -1) // -v2 coefficient
		m.AddElement(n2, bIdx, -1) // n2 current
	}
	m.AddRHS(bIdx, voltage)
}

// stampCurrent injects current into n1 and draws it from n2.
func stampCurrent(m matrix.DeviceMatrix, n1, n2 int, current float64) {
	if n1 != 0 {
		m.AddRHS(n1, current)
	}
	if n2 != 0 {
		m.AddRHS(n2, -current)
	}
}
