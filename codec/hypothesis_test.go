package codec

import "testing"

func pairTestCodec(t *testing.T) *Codec {
	t.Helper()
	table := CoefficientTable{
		rows: [][]int32{{1, 0, 0}, {1, 0, 5}}, // f_k(x,y) = x + 5k
		cols: 3,
	}
	c, err := New(Params{BitsM: 8, BitsQ: 1, FunType: 1, H1: 10, H2: 3})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.LoadCoefficients(table); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestEncodeDecodeSymbolPairNoError(t *testing.T) {
	c := pairTestCodec(t)
	h, v, err := c.EncodeSymbolPair(1)
	if err != nil {
		t.Fatal(err)
	}
	if h != 15 || v != 20 {
		t.Fatalf("got (h,v)=(%d,%d), want (15,20)", h, v)
	}

	d := pairTestCodec(t)
	sym, corrected, ok, err := d.DecodeSymbolPair(h, v)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || sym != 1 || corrected != "" {
		t.Fatalf("got sym=%d corrected=%q ok=%v, want sym=1 corrected=\"\" ok=true", sym, corrected, ok)
	}
}

func TestDecodeSymbolPairCorrectsBitInH(t *testing.T) {
	c := pairTestCodec(t)
	h, v, err := c.EncodeSymbolPair(1)
	if err != nil {
		t.Fatal(err)
	}
	corruptH := flipBit(h, 1)

	d := pairTestCodec(t)
	sym, corrected, ok, err := d.DecodeSymbolPair(corruptH, v)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || sym != 1 || corrected != "h" {
		t.Fatalf("got sym=%d corrected=%q ok=%v, want sym=1 corrected=\"h\" ok=true", sym, corrected, ok)
	}
	if d.Stats().ErrorsCorrectedH != 1 {
		t.Fatalf("expected ErrorsCorrectedH=1, got %d", d.Stats().ErrorsCorrectedH)
	}
}

func TestDecodeSymbolPairCorrectsBitInV(t *testing.T) {
	c := pairTestCodec(t)
	h, v, err := c.EncodeSymbolPair(1)
	if err != nil {
		t.Fatal(err)
	}
	corruptV := flipBit(v, 1)

	d := pairTestCodec(t)
	sym, corrected, ok, err := d.DecodeSymbolPair(h, corruptV)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || sym != 1 || corrected != "v" {
		t.Fatalf("got sym=%d corrected=%q ok=%v, want sym=1 corrected=\"v\" ok=true", sym, corrected, ok)
	}
	if d.Stats().ErrorsCorrectedV != 1 {
		t.Fatalf("expected ErrorsCorrectedV=1, got %d", d.Stats().ErrorsCorrectedV)
	}
}
