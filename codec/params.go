package codec

// Params configures a Codec instance. The Codec keeps its own copy; callers
// that need different parameters construct a new Codec or call Configure
// again.
type Params struct {
	BitsM int // word width of the arithmetic ring, [1,31]
	BitsQ int // information bits per symbol, [1,16]
	// FunType selects the polynomial family: 1-4 use 3 coefficients per
	// row, 5 uses 4.
	FunType int
	H1, H2  int32 // initial rolling state words

	// InfoInsteadOfRand selects the collision-fallback dialect: when set,
	// a non-colliding direct-info value is preferred over a random draw.
	InfoInsteadOfRand bool

	// DebugMode and StatsMode are observability flags with no effect on
	// encode/decode semantics. DebugMode installs a stderr logger;
	// StatsMode is read by callers (transfer.Session) to print a metrics
	// snapshot. The Stats counters are maintained either way.
	DebugMode bool
	StatsMode bool
}

func (p Params) validate() *Error {
	if p.BitsM < 1 || p.BitsM > 31 {
		return newError(InvalidParameter, "bits_m %d out of [1,31]", p.BitsM)
	}
	if p.BitsQ < 1 || p.BitsQ > 16 {
		return newError(InvalidParameter, "bits_q %d out of [1,16]", p.BitsQ)
	}
	if p.FunType < 1 || p.FunType > 5 {
		return newError(InvalidParameter, "fun_type %d out of [1,5]", p.FunType)
	}
	return nil
}

// FunCount returns 2^BitsQ, the number of coding functions / symbol values.
func (p Params) FunCount() int {
	return 1 << uint(p.BitsQ)
}

// CoeffColumns returns the number of coefficient columns per row for this
// FunType: 3 for families 1-4, 4 for family 5.
func (p Params) CoeffColumns() int {
	if p.FunType == 5 {
		return 4
	}
	return 3
}
