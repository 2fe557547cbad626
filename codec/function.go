package codec

import "github.com/ringcast/ringcast/ring"

// evalFunction computes f_k(x,y) for the given fun_type using row's
// coefficients, entirely in ring arithmetic.
func evalFunction(r ring.Ring, funType int, row []int32, x, y int32) int32 {
	switch funType {
	case 1:
		// a*x + b*y + q
		a, b, q := row[0], row[1], row[2]
		return r.Add(r.Add(r.Mul(a, x), r.Mul(b, y)), q)
	case 2:
		// a*x^2 + b*y + q
		a, b, q := row[0], row[1], row[2]
		x2 := r.Mul(x, x)
		return r.Add(r.Add(r.Mul(a, x2), r.Mul(b, y)), q)
	case 3:
		// a*x^2 + b*y^2 + q
		a, b, q := row[0], row[1], row[2]
		x2, y2 := r.Mul(x, x), r.Mul(y, y)
		return r.Add(r.Add(r.Mul(a, x2), r.Mul(b, y2)), q)
	case 4:
		// a*x^3 + b*y^2 + q
		a, b, q := row[0], row[1], row[2]
		x3 := r.Mul(r.Mul(x, x), x)
		y2 := r.Mul(y, y)
		return r.Add(r.Add(r.Mul(a, x3), r.Mul(b, y2)), q)
	case 5:
		// a*x + b*x*y + c*y + q
		a, b, c, q := row[0], row[1], row[2], row[3]
		return r.Add(r.Add(r.Add(r.Mul(a, x), r.Mul(b, r.Mul(x, y))), r.Mul(c, y)), q)
	default:
		panic("codec: unreachable fun_type")
	}
}
