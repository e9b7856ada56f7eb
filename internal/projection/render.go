package projection

// RenderMatrix lays the forward matrix out as the column-major 4x4
// homogeneous transform a GL-style applyMatrix primitive expects for
// geometry in the z=0 plane:
//
//	| c00 c01 0 c02 |
//	| c10 c11 0 c12 |
//	|  0   0  1  0  |
//	| c20 c21 0  1  |
func (m *Mapper) RenderMatrix() [16]float64 {
	f := m.forward
	return [16]float64{
		f[0], f[3], 0, f[6],
		f[1], f[4], 0, f[7],
		0, 0, 1, 0,
		f[2], f[5], 0, 1,
	}
}
