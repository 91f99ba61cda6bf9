package fixpnt

import (
	"testing"

	"github.com/bitforms/numeric/blockbinary"
)

func TestModularAddExample(t *testing.T) {
	// fixpnt<8,4,modular>: 0x14 + 0x0C = 0x20, i.e. 1.25 + 0.75 = 2.0
	a := FromRaw[uint8, Modular](blockbinary.FromUint64[uint8](8, 0x14), 4)
	b := FromRaw[uint8, Modular](blockbinary.FromUint64[uint8](8, 0x0C), 4)
	got := a.Add(b)
	if got.Raw().ToUint64() != 0x20 {
		t.Errorf("raw = 0x%X, want 0x20", got.Raw().ToUint64())
	}
	if got.ToFloat64() != 2.0 {
		t.Errorf("value = %v, want 2.0", got.ToFloat64())
	}
}

func TestSaturatingVsModularMul(t *testing.T) {
	// fixpnt<8,4>: 0x7F * 0x7F: saturating clamps to 0x7F, modular
	// wraps to 0x31.
	aSat := FromRaw[uint8, Saturating](blockbinary.FromUint64[uint8](8, 0x7F), 4)
	bSat := FromRaw[uint8, Saturating](blockbinary.FromUint64[uint8](8, 0x7F), 4)
	gotSat := aSat.Mul(bSat)
	if gotSat.Raw().ToUint64() != 0x7F {
		t.Errorf("saturating 0x7F*0x7F raw = 0x%X, want 0x7F", gotSat.Raw().ToUint64())
	}

	aMod := FromRaw[uint8, Modular](blockbinary.FromUint64[uint8](8, 0x7F), 4)
	bMod := FromRaw[uint8, Modular](blockbinary.FromUint64[uint8](8, 0x7F), 4)
	gotMod := aMod.Mul(bMod)
	if gotMod.Raw().ToUint64() != 0x31 {
		t.Errorf("modular 0x7F*0x7F raw = 0x%X, want 0x31", gotMod.Raw().ToUint64())
	}
}

func TestSaturatingAddClampsToMaxPos(t *testing.T) {
	max := MaxPos[uint8, Saturating](8, 4)
	one := FromRaw[uint8, Saturating](blockbinary.FromInt64[uint8](8, 1), 4)
	got := max.Add(one)
	if !got.Equal(max) {
		t.Errorf("saturating add past MaxPos should clamp to MaxPos, got raw 0x%X", got.Raw().ToUint64())
	}
}

func TestFromFloat64RoundTrip(t *testing.T) {
	tests := []float64{0, 1.25, -1.25, 0.0625, 7.9375, -8}
	for _, v := range tests {
		f, err := FromFloat64[uint16, Modular](16, 8, v)
		if err != nil {
			t.Fatalf("FromFloat64(%v): %v", v, err)
		}
		if got := f.ToFloat64(); got != v {
			t.Errorf("FromFloat64(%v).ToFloat64() = %v", v, got)
		}
	}
}

func TestFromFloat64RoundsToNearestEven(t *testing.T) {
	// 8 fraction bits: 1/512 is exactly halfway between 0 and 1/256.
	f, err := FromFloat64[uint16, Modular](16, 8, 1.0/512)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Raw().ToInt64() != 0 {
		t.Errorf("expected tie to round to even (0), got raw %d", f.Raw().ToInt64())
	}
}

func TestStringFractionDigits(t *testing.T) {
	f, err := FromFloat64[uint16, Modular](16, 4, 2.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := f.String()
	if got != "2.5000" {
		t.Errorf("String() = %q, want \"2.5000\"", got)
	}
}

func TestStringWideValue(t *testing.T) {
	// 80 total bits forces the multi-block decimal expansion path.
	f, err := FromFloat64[uint64, Modular](80, 16, -2.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "-2.5000000000000000"
	if got := f.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDivModSimple(t *testing.T) {
	a, _ := FromFloat64[uint32, Modular](32, 16, 10.0)
	b, _ := FromFloat64[uint32, Modular](32, 16, 4.0)
	qr, err := a.DivMod(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qr.Quo.ToFloat64() != 2.5 {
		t.Errorf("10/4 = %v, want 2.5", qr.Quo.ToFloat64())
	}
}

func TestDivByZero(t *testing.T) {
	a, _ := FromFloat64[uint32, Modular](32, 16, 1.0)
	zero := New[uint32, Modular](32, 16)
	_, err := a.DivMod(zero)
	if err == nil {
		t.Fatal("expected divide-by-zero error")
	}
}

func TestParseDecimalAndHex(t *testing.T) {
	r := New[uint16, Modular](16, 8)
	if err := Parse(&r, "3.25"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ToFloat64() != 3.25 {
		t.Errorf("got %v, want 3.25", r.ToFloat64())
	}
	if err := Parse(&r, "0xFF'00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Raw().ToUint64() != 0xFF00 {
		t.Errorf("got raw 0x%X, want 0xFF00", r.Raw().ToUint64())
	}
}

func TestParseFailureLeavesUnchanged(t *testing.T) {
	r, _ := FromFloat64[uint16, Modular](16, 8, 1.5)
	err := Parse(&r, "garbage")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if r.ToFloat64() != 1.5 {
		t.Error("failed parse should leave destination unchanged")
	}
}

func TestFromFloat64NaN(t *testing.T) {
	_, err := FromFloat64[uint16, Modular](16, 8, nan())
	if err == nil {
		t.Fatal("expected error assigning NaN to a fixed-point value")
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}
