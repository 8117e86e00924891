package pkmodel

import "math"

// solveLinear solves A x = b for a small (n<=4) square system using Gaussian
// elimination with partial pivoting. A and b are copied first and are left
// unchanged.
func solveLinear(a [][]float64, b []float64) []float64 {
	n := len(b)
	m := make([][]float64, n)
	for i := range a {
		m[i] = append([]float64(nil), a[i]...)
	}
	rhs := append([]float64(nil), b...)

	for col := 0; col < n; col++ {
		piv := col
		best := math.Abs(m[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(m[r][col]); v > best {
				piv, best = r, v
			}
		}
		m[col], m[piv] = m[piv], m[col]
		rhs[col], rhs[piv] = rhs[piv], rhs[col]

		pivotVal := m[col][col]
		if pivotVal == 0 {
			continue
		}
		for r := col + 1; r < n; r++ {
			f := m[r][col] / pivotVal
			if f == 0 {
				continue
			}
			for c := col; c < n; c++ {
				m[r][c] -= f * m[col][c]
			}
			rhs[r] -= f * rhs[col]
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := rhs[i]
		for j := i + 1; j < n; j++ {
			sum -= m[i][j] * x[j]
		}
		if m[i][i] == 0 {
			x[i] = 0
			continue
		}
		x[i] = sum / m[i][i]
	}
	return x
}

// cubicRealRoots returns the three real roots of the depressed cubic
// t^3 + p*t + q = 0, assuming three real roots exist (true of the
// characteristic polynomial of a compartmental rate matrix, whose
// eigenvalues are always real and non-positive).
func cubicRealRoots(p, q float64) [3]float64 {
	if p == 0 && q == 0 {
		return [3]float64{0, 0, 0}
	}
	disc := (q * q / 4) + (p * p * p / 27)
	if disc > 1e-12 {
		// Numerical noise pushed us into the one-real-root branch; fall back
		// to Cardano's formula for the single real root and repeat it.
		sq := math.Sqrt(disc)
		u := cbrt(-q/2 + sq)
		v := cbrt(-q/2 - sq)
		r := u + v
		return [3]float64{r, r, r}
	}
	// Three real roots (trigonometric method).
	mag := math.Sqrt(-p / 3)
	arg := clampUnit((3 * q) / (p * mag) / 2)
	theta := math.Acos(arg)
	var roots [3]float64
	for k := 0; k < 3; k++ {
		roots[k] = 2 * mag * math.Cos((theta-2*math.Pi*float64(k))/3)
	}
	return roots
}

func cbrt(x float64) float64 {
	if x < 0 {
		return -math.Cbrt(-x)
	}
	return math.Cbrt(x)
}

func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// eigenReal computes the real eigenvalues and eigenvectors of a compartmental
// rate matrix of size 1, 2 or 3 — the "analytical roots (α, β, γ)" spec.md
// §4.2 calls out for the two- and three-compartment calculators, generalized
// into one routine per the §9 redesign note (avoid macro-expanded clones).
func eigenReal(m [][]float64) (lambdas []float64, vectors [][]float64) {
	n := len(m)
	switch n {
	case 1:
		return []float64{m[0][0]}, [][]float64{{1}}
	case 2:
		tr := m[0][0] + m[1][1]
		det := m[0][0]*m[1][1] - m[0][1]*m[1][0]
		disc := math.Sqrt(math.Max(tr*tr-4*det, 0))
		l1 := (tr + disc) / 2
		l2 := (tr - disc) / 2
		lambdas = []float64{l1, l2}
		vectors = [][]float64{eigvec2(m, l1), eigvec2(m, l2)}
		return
	case 3:
		tr := m[0][0] + m[1][1] + m[2][2]
		minorSum := (m[0][0]*m[1][1]-m[0][1]*m[1][0])+
			(m[0][0]*m[2][2]-m[0][2]*m[2][0])+
			(m[1][1]*m[2][2]-m[1][2]*m[2][1])
		det := det3(m)
		// Characteristic polynomial: λ^3 - tr λ^2 + minorSum λ - det = 0.
		// Depress via λ = t + tr/3.
		p := minorSum - tr*tr/3
		q := -det + (tr*minorSum)/3 - 2*tr*tr*tr/27
		roots := cubicRealRoots(p, q)
		lambdas = make([]float64, 3)
		vectors = make([][]float64, 3)
		for i, t := range roots {
			lambda := t + tr/3
			lambdas[i] = lambda
			vectors[i] = eigvec3(m, lambda)
		}
		return
	default:
		panic("eigenReal: unsupported dimension")
	}
}

func eigvec2(m [][]float64, lambda float64) []float64 {
	a := m[0][0] - lambda
	b := m[0][1]
	if math.Abs(b) > 1e-12 {
		return []float64{b, -a}
	}
	c := m[1][0]
	d := m[1][1] - lambda
	if math.Abs(c) > 1e-12 {
		return []float64{-d, c}
	}
	return []float64{1, 0}
}

func det3(m [][]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// eigvec3 finds a nullspace vector of (m - lambda I) via the cross product of
// two of its rows, falling back across row pairs if a pair is near-parallel.
func eigvec3(m [][]float64, lambda float64) []float64 {
	var a [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a[i][j] = m[i][j]
		}
		a[i][i] -= lambda
	}
	pairs := [][2]int{{0, 1}, {0, 2}, {1, 2}}
	for _, p := range pairs {
		v := cross(a[p[0]], a[p[1]])
		if norm(v) > 1e-9 {
			return v[:]
		}
	}
	return []float64{1, 0, 0}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func norm(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// modalDecay returns, for each compartment, the homogeneous solution
// X(t) = V diag(exp(λ t)) V^-1 x0 of dX/dt = M X at time t.
func modalDecay(m [][]float64, x0 []float64, t float64) []float64 {
	n := len(x0)
	lambdas, vectors := eigenReal(m)

	vt := make([][]float64, n)
	for i := 0; i < n; i++ {
		vt[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			vt[i][j] = vectors[j][i]
		}
	}
	coeffs := solveLinear(vt, x0)

	out := make([]float64, n)
	for j := 0; j < n; j++ {
		e := math.Exp(lambdas[j] * t)
		for i := 0; i < n; i++ {
			out[i] += coeffs[j] * vectors[j][i] * e
		}
	}
	return out
}

// identity returns the n x n identity matrix.
func identity(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	return m
}

// addScaled returns a + scale*b (same shape square matrices).
func addScaled(a [][]float64, scale float64, b [][]float64) [][]float64 {
	n := len(a)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		for j := range out[i] {
			out[i][j] = a[i][j] + scale*b[i][j]
		}
	}
	return out
}
