package ring

import "testing"

func TestWrapScenario1(t *testing.T) {
	r, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		in   int64
		want int32
	}{
		{130, -126},
		{-130, 126},
		{0, 0},
		{127, 127},
		{128, -128},
	}
	for _, c := range cases {
		if got := r.Wrap(c.in); got != c.want {
			t.Errorf("Wrap(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestWrapClosure(t *testing.T) {
	for m := 1; m <= 31; m++ {
		r, err := New(m)
		if err != nil {
			t.Fatal(err)
		}
		half := int64(1) << uint(m-1)
		inputs := []int64{0, 1, -1, half - 1, -half, half, -half - 1, 1 << 30, -(1 << 30)}
		for _, v := range inputs {
			got := r.Wrap(v)
			if int64(got) < -half || int64(got) >= half {
				t.Fatalf("Wrap(%d) with M=%d out of range: %d", v, m, got)
			}
		}
	}
}

func TestNewRejectsOutOfRange(t *testing.T) {
	for _, m := range []int{0, -1, 32, 100} {
		if _, err := New(m); err == nil {
			t.Errorf("New(%d) expected error", m)
		}
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	r, err := New(17)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, r.BytesPerWord())
	for _, v := range []int32{0, 1, -1, 12345, -12345, r.Wrap(1 << 16)} {
		r.PutWord(buf, v)
		got := r.Word(buf)
		if got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
	}
}

func TestAddMul(t *testing.T) {
	r, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Add(127, 1); got != -128 {
		t.Errorf("Add(127,1) = %d, want -128", got)
	}
	if got := r.Mul(16, 16); got != 0 {
		t.Errorf("Mul(16,16) = %d, want 0", got)
	}
}
