package codec

import (
	"math/rand"
	"os"
	"time"

	"github.com/ringcast/ringcast/internal/entropy"
	"github.com/ringcast/ringcast/internal/logging"
	"github.com/ringcast/ringcast/ring"
)

// Codec is the nonlinear recursive digital codec's state machine: params
// captured at Configure and a coefficient table installed by
// LoadCoefficients, plus a small mutable inner record (enc/dec rolling
// state) that Reset and SyncStates operate on. The zero value is usable but
// must be Configure'd before use.
//
// A Codec is not safe for concurrent encode/decode calls; it is a strictly
// sequential state machine (package transfer uses one instance per endpoint
// for both directions, calling it from a single goroutine).
type Codec struct {
	params       Params
	r            ring.Ring
	coeffs       CoefficientTable
	configured   bool
	coeffsLoaded bool

	encH1, encH2 int32
	decH1, decH2 int32

	entropy *entropy.Source
	logger  logging.Logger
	stats   counters
}

// New allocates and configures a Codec in one step.
func New(p Params) (*Codec, *Error) {
	c := &Codec{}
	if err := c.Configure(p); err != nil {
		return nil, err
	}
	return c, nil
}

// Configure validates p, resets the coefficient table and rolling state,
// and clears statistics. It may be called again on an existing Codec to
// reconfigure it from scratch.
func (c *Codec) Configure(p Params) *Error {
	if err := p.validate(); err != nil {
		return err
	}
	r, rerr := ring.New(p.BitsM)
	if rerr != nil {
		return newError(InvalidParameter, "%v", rerr)
	}
	c.params = p
	c.r = r
	c.coeffs = CoefficientTable{}
	c.coeffsLoaded = false
	c.configured = true
	if c.entropy == nil {
		c.entropy = entropy.New(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	if p.DebugMode {
		c.logger = logging.NewStdLogger(os.Stderr)
	} else {
		c.logger = logging.NoopLogger{}
	}
	c.Reset()
	return nil
}

// SetEntropySource overrides the randomness source used by the collision
// fallback, primarily so tests can make it deterministic.
func (c *Codec) SetEntropySource(s *entropy.Source) {
	c.entropy = s
}

// SetLogger overrides the logger debug_mode would otherwise install,
// e.g. so a caller can route codec debug lines into its own log sink
// instead of stderr. A nil logger is treated as logging.NoopLogger{}.
func (c *Codec) SetLogger(l logging.Logger) {
	if l == nil {
		l = logging.NoopLogger{}
	}
	c.logger = l
}

// LoadCoefficients installs the coefficient table. It fails with
// OrderingError if called before Configure, or InvalidCoefficients if the
// table's row count doesn't match 2^BitsQ.
func (c *Codec) LoadCoefficients(t CoefficientTable) *Error {
	if !c.configured {
		return newError(OrderingError, "coefficients loaded before configure")
	}
	if t.Len() != c.params.FunCount() {
		return newError(InvalidCoefficients, "table has %d rows, want %d", t.Len(), c.params.FunCount())
	}
	c.coeffs = t
	c.coeffsLoaded = true
	return nil
}

// Reset sets both sides' rolling state to wrap(h1,h2) and clears
// statistics counters.
func (c *Codec) Reset() {
	h1 := c.r.Wrap(int64(c.params.H1))
	h2 := c.r.Wrap(int64(c.params.H2))
	c.encH1, c.encH2 = h1, h2
	c.decH1, c.decH2 = h1, h2
	c.stats.reset()
}

// SyncStates overwrites both sides' rolling state with wrap(h1,h2) without
// touching statistics. It models the out-of-band sync packet's effect.
func (c *Codec) SyncStates(h1, h2 int32) {
	w1 := c.r.Wrap(int64(h1))
	w2 := c.r.Wrap(int64(h2))
	c.encH1, c.encH2 = w1, w2
	c.decH1, c.decH2 = w1, w2
}

// EncoderState returns the encoder side's current (h1, h2), the pair a
// session embeds in an out-of-band sync packet.
func (c *Codec) EncoderState() (h1, h2 int32) {
	return c.encH1, c.encH2
}

// DecoderState returns the decoder side's current (h1, h2).
func (c *Codec) DecoderState() (h1, h2 int32) {
	return c.decH1, c.decH2
}

// Stats returns a point-in-time snapshot of the counters.
func (c *Codec) Stats() Stats {
	return c.stats.snapshot()
}

// Ring exposes the configured ring arithmetic, e.g. for serialization by
// callers building their own wire layout.
func (c *Codec) Ring() ring.Ring { return c.r }

// Params returns the configured parameters.
func (c *Codec) Params() Params { return c.params }

func (c *Codec) computeRR(x, y int32) []int32 {
	n := c.params.FunCount()
	rr := make([]int32, n)
	for k := 0; k < n; k++ {
		rr[k] = evalFunction(c.r, c.params.FunType, c.coeffs.Row(k), x, y)
	}
	return rr
}

// dupIndices returns the set of indices whose value already appeared
// earlier in rr, and whether rr contains any duplicate at all.
func dupIndices(rr []int32) (dup map[int]bool, hasDup bool) {
	seen := make(map[int32]int, len(rr))
	dup = make(map[int]bool)
	for k, v := range rr {
		if _, ok := seen[v]; ok {
			dup[k] = true
			hasDup = true
		} else {
			seen[v] = k
		}
	}
	return dup, hasDup
}

func contains(rr []int32, v int32) bool {
	for _, x := range rr {
		if x == v {
			return true
		}
	}
	return false
}

// EncodeSymbol encodes symbol s in [0, 2^BitsQ) against the current
// encoder state, advances the encoder state, and returns the ring word to
// transmit. skipped reports whether this symbol was sent via the
// unrecoverable random-substitution fallback (case 4.E.4.d); the decoder
// must also treat the corresponding position as skipped.
func (c *Codec) EncodeSymbol(s int) (word int32, skipped bool, err *Error) {
	if !c.coeffsLoaded {
		return 0, false, newError(OrderingError, "encode before coefficients loaded")
	}
	x, y := c.encH1, c.encH2
	rr := c.computeRR(x, y)
	dup, hasDup := dupIndices(rr)

	var next int32
	switch {
	case !hasDup:
		next = rr[s]
	case s < firstDupIndex(dup):
		next = rr[s]
	default:
		c.stats.collisionsSeen.Add(1)
		c.logger.Debugf("encode: collision in RR at state (%d,%d), symbol=%d", x, y, s)
		direct := int32(s + 1)
		if c.params.InfoInsteadOfRand && !contains(rr, direct) {
			next = direct
			c.stats.directInfoUsed.Add(1)
			c.logger.Debugf("encode: direct-info substitution symbol=%d value=%d", s, direct)
		} else {
			next = c.drawNonColliding(rr)
			skipped = true
			c.stats.symbolsSkipped.Add(1)
			c.logger.Debugf("encode: symbol=%d skipped, substituted value=%d", s, next)
		}
	}

	c.encH2, c.encH1 = c.encH1, next
	return next, skipped, nil
}

// firstDupIndex returns the smallest index marked as a duplicate, or a
// sentinel larger than any valid symbol if dup is empty.
func firstDupIndex(dup map[int]bool) int {
	min := -1
	for k := range dup {
		if min == -1 || k < min {
			min = k
		}
	}
	if min == -1 {
		return int(^uint(0) >> 1)
	}
	return min
}

func (c *Codec) drawNonColliding(rr []int32) int32 {
	n := c.params.FunCount()
	for {
		v := c.r.Wrap(int64(c.entropy.Intn(1 << uint(c.params.BitsM))))
		if contains(rr, v) {
			continue
		}
		if c.params.InfoInsteadOfRand && int64(v) >= 1 && int64(v) <= int64(n) {
			continue
		}
		return v
	}
}

// DecodeSymbol decodes one ring word against the current decoder state and
// advances the decoder state. ok is false when the word could not be
// matched (a skipped position); no symbol is emitted in that case.
func (c *Codec) DecodeSymbol(w int32) (sym int, ok bool, err *Error) {
	if !c.coeffsLoaded {
		return 0, false, newError(OrderingError, "decode before coefficients loaded")
	}
	x, y := c.decH1, c.decH2
	rr := c.computeRR(x, y)

	switch {
	case indexOf(rr, w) >= 0:
		sym, ok = indexOf(rr, w), true
	case c.params.InfoInsteadOfRand && int64(w) >= 1 && int64(w) <= int64(c.params.FunCount()):
		sym, ok = int(w)-1, true
	default:
		ok = false
		c.logger.Debugf("decode: word=%d unmatched at state (%d,%d), skipping", w, x, y)
	}

	c.decH2, c.decH1 = c.decH1, w
	return sym, ok, nil
}

func indexOf(rr []int32, v int32) int {
	for k, x := range rr {
		if x == v {
			return k
		}
	}
	return -1
}
