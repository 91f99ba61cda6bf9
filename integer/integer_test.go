package integer

import "testing"

func TestModularAddWraps(t *testing.T) {
	// integer<16> scenario: 0x4D2 + 0xD431 = 0xD903 (wraps, no error).
	a := FromUint64[uint16](16, 0x04D2)
	b := FromUint64[uint16](16, 0xD431)
	got, err := a.Add(b)
	if err != nil {
		t.Fatalf("modular add should not error: %v", err)
	}
	if got.ToUint64() != 0xD903 {
		t.Errorf("got 0x%X, want 0xD903", got.ToUint64())
	}
}

func TestTrappingAddOverflows(t *testing.T) {
	a := FromInt64[uint16](16, 0x7FFF).WithOverflowTrap()
	one := FromInt64[uint16](16, 1)
	_, err := a.Add(one)
	if err == nil {
		t.Fatal("expected overflow error for 0x7FFF + 1 in trapping mode")
	}
}

func TestTrappingAddWithinRangeSucceeds(t *testing.T) {
	a := FromInt64[uint16](16, 100).WithOverflowTrap()
	b := FromInt64[uint16](16, 200)
	got, err := a.Add(b)
	if err != nil {
		t.Fatalf("unexpected overflow: %v", err)
	}
	if got.ToInt64() != 300 {
		t.Errorf("got %d, want 300", got.ToInt64())
	}
}

func TestTrappingSubOverflows(t *testing.T) {
	a := FromInt64[uint8](8, -128).WithOverflowTrap()
	one := FromInt64[uint8](8, 1)
	_, err := a.Sub(one)
	if err == nil {
		t.Fatal("expected overflow error for -128 - 1 in trapping mode")
	}
}

func TestTrappingMulOverflows(t *testing.T) {
	a := FromInt64[uint8](8, 100).WithOverflowTrap()
	b := FromInt64[uint8](8, 3)
	_, err := a.Mul(b)
	if err == nil {
		t.Fatal("expected overflow error for 100 * 3 in 8-bit trapping mode")
	}
}

func TestModularMulWraps(t *testing.T) {
	a := FromInt64[uint8](8, 100)
	b := FromInt64[uint8](8, 3)
	got, err := a.Mul(b)
	if err != nil {
		t.Fatalf("modular mul should not error: %v", err)
	}
	if got.ToInt64() != 44 {
		t.Errorf("got %d, want 44", got.ToInt64())
	}
}

func TestDivModSignedTruncation(t *testing.T) {
	a := FromInt64[uint16](16, -8)
	b := FromInt64[uint16](16, 3)
	q, r, err := a.DivMod(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ToInt64() != -2 || r.ToInt64() != -2 {
		t.Errorf("DivMod(-8, 3) = (%d, %d), want (-2, -2)", q.ToInt64(), r.ToInt64())
	}
}

func TestDivByZeroPropagates(t *testing.T) {
	a := FromInt64[uint16](16, 5)
	zero := FromInt64[uint16](16, 0)
	_, _, err := a.DivMod(zero)
	if err == nil {
		t.Fatal("expected divide-by-zero error")
	}
}

func TestTrappingDivMinNegByNegOneOverflows(t *testing.T) {
	a := FromInt64[uint8](8, -128).WithOverflowTrap()
	negOne := FromInt64[uint8](8, -1)
	_, _, err := a.DivMod(negOne)
	if err == nil {
		t.Fatal("expected overflow: +128 cannot be represented in 8 bits")
	}
}

func TestModularDivMinNegByNegOneWraps(t *testing.T) {
	a := FromInt64[uint8](8, -128)
	negOne := FromInt64[uint8](8, -1)
	q, r, err := a.DivMod(negOne)
	if err != nil {
		t.Fatalf("modular division should not error: %v", err)
	}
	if q.ToInt64() != -128 || !r.IsZero() {
		t.Errorf("got (%d, %d), want (-128, 0)", q.ToInt64(), r.ToInt64())
	}
}

func TestParseDecimalAndHex(t *testing.T) {
	r := New[uint16](16)
	if err := Parse(&r, "1234"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ToInt64() != 1234 {
		t.Errorf("got %d, want 1234", r.ToInt64())
	}
	if err := Parse(&r, "0xFF'FF"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ToInt64() != -1 {
		t.Errorf("got %d, want -1", r.ToInt64())
	}
}

func TestParseFailureLeavesUnchanged(t *testing.T) {
	r := FromInt64[uint16](16, 7)
	if err := Parse(&r, "not-a-number"); err == nil {
		t.Fatal("expected parse error")
	}
	if r.ToInt64() != 7 {
		t.Errorf("value changed on parse failure: got %d, want 7", r.ToInt64())
	}
}

func TestQuoRem(t *testing.T) {
	a := FromInt64[uint16](16, 17)
	b := FromInt64[uint16](16, 5)
	q, err := a.Quo(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := a.Rem(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ToInt64() != 3 || r.ToInt64() != 2 {
		t.Errorf("Quo/Rem(17,5) = (%d,%d), want (3,2)", q.ToInt64(), r.ToInt64())
	}
}
