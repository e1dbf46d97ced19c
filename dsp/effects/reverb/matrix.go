package reverb

import "math"

// Matrix4 is a fixed 4x4 feedback matrix.
type Matrix4 [4][4]float64

// Hadamard4 returns the 4x4 Hadamard matrix scaled by 1/2, which is
// orthogonal: it preserves the energy of the vector it mixes.
func Hadamard4() Matrix4 {
	return Matrix4{
		{0.5, 0.5, 0.5, 0.5},
		{0.5, -0.5, 0.5, -0.5},
		{0.5, 0.5, -0.5, -0.5},
		{0.5, -0.5, -0.5, 0.5},
	}
}

// Apply returns m*v.
func (m Matrix4) Apply(v [4]float64) [4]float64 {
	var out [4]float64
	for i := range 4 {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2] + m[i][3]*v[3]
	}
	return out
}

// Transpose returns the transpose of m.
func (m Matrix4) Transpose() Matrix4 {
	var t Matrix4
	for i := range 4 {
		for j := range 4 {
			t[j][i] = m[i][j]
		}
	}
	return t
}

// Mul returns m*n.
func (m Matrix4) Mul(n Matrix4) Matrix4 {
	var out Matrix4
	for i := range 4 {
		for j := range 4 {
			for k := range 4 {
				out[i][j] += m[i][k] * n[k][j]
			}
		}
	}
	return out
}

// OrthogonalityError returns max |(m^T m - I)_ij|.
func (m Matrix4) OrthogonalityError() float64 {
	p := m.Transpose().Mul(m)
	var worst float64
	for i := range 4 {
		for j := range 4 {
			want := 0.0
			if i == j {
				want = 1
			}
			worst = math.Max(worst, math.Abs(p[i][j]-want))
		}
	}
	return worst
}

// crossFeed is a plane rotation coupling line i of the left tank with line
// i of the right tank. Being a rotation it keeps the combined eight-line
// feedback map orthogonal.
type crossFeed struct {
	c, s float64
}

func newCrossFeed(angle float64) crossFeed {
	s, c := math.Sincos(angle)
	return crossFeed{c: c, s: s}
}

func (x crossFeed) apply(l, r *[4]float64) {
	for i := range 4 {
		a, b := l[i], r[i]
		l[i] = x.c*a - x.s*b
		r[i] = x.s*a + x.c*b
	}
}
