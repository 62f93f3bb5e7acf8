package matrix

// DeviceMatrix is the stamp target of the nodal equations. Indices are
// 1-based; index 0 is ground and stamps on it are dropped.
type DeviceMatrix interface {
	AddElement(i, j int, value float64)
	AddRHS(i int, value float64)
}
