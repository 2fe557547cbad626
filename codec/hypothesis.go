package codec

// EncodeSymbolPair implements the optional 1-1 dialect (§4.G): each symbol
// produces a paired (h,v) block instead of a single ring word, roughly
// doubling wire size in exchange for single-bit-error recovery on decode.
func (c *Codec) EncodeSymbolPair(s int) (h, v int32, err *Error) {
	if !c.coeffsLoaded {
		return 0, 0, newError(OrderingError, "encode before coefficients loaded")
	}
	vPrev, hPrev := c.encH1, c.encH2
	rr := c.computeRR(vPrev, hPrev)
	h = rr[s]
	rrv := c.computeRR(h, vPrev)
	v = rrv[s]

	c.encH2, c.encH1 = h, v
	return h, v, nil
}

// DecodeSymbolPair decodes a paired (h,v) block, testing the no-error
// hypothesis first, then single-bit-flip hypotheses over h and over v in
// that order. corrected is "", "h", or "v" depending on which hypothesis
// matched. ok is false if no hypothesis matched any function index.
func (c *Codec) DecodeSymbolPair(h, v int32) (sym int, corrected string, ok bool, err *Error) {
	if !c.coeffsLoaded {
		return 0, "", false, newError(OrderingError, "decode before coefficients loaded")
	}
	vPrev, hPrev := c.decH1, c.decH2
	rr := c.computeRR(vPrev, hPrev)
	q := c.params.BitsQ

	if k, found := matchPair(c, rr, h, vPrev, v); found {
		sym, ok = k, true
	} else if k, hFixed, found := c.tryFlipH(rr, h, vPrev, v, q); found {
		sym, corrected, ok = k, "h", true
		h = hFixed
		c.stats.errorsCorrectedH.Add(1)
	} else if k, vFixed, found := c.tryFlipV(rr, h, vPrev, v, q); found {
		sym, corrected, ok = k, "v", true
		v = vFixed
		c.stats.errorsCorrectedV.Add(1)
	}

	c.decH2, c.decH1 = h, v
	return sym, corrected, ok, nil
}

func matchPair(c *Codec, rr []int32, h, vPrev, v int32) (int, bool) {
	rrv := c.computeRR(h, vPrev)
	for k := range rr {
		if rr[k] == h && rrv[k] == v {
			return k, true
		}
	}
	return -1, false
}

func (c *Codec) tryFlipH(rr []int32, h, vPrev, v int32, q int) (k int, hFixed int32, ok bool) {
	for p := 1; p <= q; p++ {
		candidate := flipBit(h, p)
		if k, found := matchPair(c, rr, candidate, vPrev, v); found {
			return k, candidate, true
		}
	}
	return -1, h, false
}

func (c *Codec) tryFlipV(rr []int32, h, vPrev, v int32, q int) (k int, vFixed int32, ok bool) {
	for p := 1; p <= q; p++ {
		candidate := flipBit(v, p)
		if k, found := matchPair(c, rr, h, vPrev, candidate); found {
			return k, candidate, true
		}
	}
	return -1, v, false
}

// flipBit inverts 1-based bit position pos of x, leaving x unchanged if
// pos is out of [1,32].
func flipBit(x int32, pos int) int32 {
	if pos < 1 || pos > 32 {
		return x
	}
	return x ^ (1 << uint(pos-1))
}
