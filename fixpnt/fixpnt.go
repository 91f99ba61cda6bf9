// Package fixpnt implements a fixed-point number: an N-bit signed
// two's-complement integer with an implied binary radix point R bits
// up from the LSB, so its value is raw/2^R. The overflow behavior on
// addition, subtraction, and multiplication is a policy supplied as a
// Go type parameter (Modular wraps, Saturating clamps to the extreme
// representable value), mirroring the template-bool the original
// carried for the same choice; N and R, which the original also took
// as compile-time values, are runtime fields since Go generics have
// no value parameters.
package fixpnt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bitforms/numeric/block"
	"github.com/bitforms/numeric/blockbinary"
	"github.com/bitforms/numeric/numerr"
)

// Policy controls what Add/Sub/Mul do when a result would not fit.
type Policy interface {
	// Saturates reports whether overflow clamps to the extreme
	// representable value (true) or wraps modulo 2^N (false).
	Saturates() bool
}

// Modular wraps silently on overflow.
type Modular struct{}

func (Modular) Saturates() bool { return false }

// Saturating clamps to MaxPos/MaxNeg on overflow.
type Saturating struct{}

func (Saturating) Saturates() bool { return true }

// Fixed is a fixed-point value over Block-sized storage words with
// overflow policy P.
type Fixed[Block block.Word, P Policy] struct {
	v     blockbinary.BlockBinary[Block]
	rbits int
}

func policySaturates[P Policy]() bool {
	var p P
	return p.Saturates()
}

// New returns the zero value with nbits total bits and rbits fraction
// bits.
func New[Block block.Word, P Policy](nbits, rbits int) Fixed[Block, P] {
	return Fixed[Block, P]{v: blockbinary.New[Block](nbits), rbits: rbits}
}

// FromRaw builds a fixed-point value directly from its raw two's
// complement encoding, interpreted with rbits fraction bits.
func FromRaw[Block block.Word, P Policy](raw blockbinary.BlockBinary[Block], rbits int) Fixed[Block, P] {
	return Fixed[Block, P]{v: raw, rbits: rbits}
}

// MaxPos returns the most positive representable value.
func MaxPos[Block block.Word, P Policy](nbits, rbits int) Fixed[Block, P] {
	return Fixed[Block, P]{v: blockbinary.MaxPos[Block](nbits), rbits: rbits}
}

// MaxNeg returns the most negative representable value.
func MaxNeg[Block block.Word, P Policy](nbits, rbits int) Fixed[Block, P] {
	return Fixed[Block, P]{v: blockbinary.MaxNeg[Block](nbits), rbits: rbits}
}

// NBits and RBits report the configured widths.
func (f Fixed[Block, P]) NBits() int { return f.v.NBits() }
func (f Fixed[Block, P]) RBits() int { return f.rbits }

// Raw exposes the underlying two's complement encoding.
func (f Fixed[Block, P]) Raw() blockbinary.BlockBinary[Block] { return f.v }

// IsZero, Sign, Equal, Cmp delegate to the raw encoding: since both
// operands of any comparison share the same rbits, comparing the raw
// two's complement bits is equivalent to comparing values.
func (f Fixed[Block, P]) IsZero() bool                    { return f.v.IsZero() }
func (f Fixed[Block, P]) Sign() bool                      { return f.v.Sign() }
func (f Fixed[Block, P]) Equal(o Fixed[Block, P]) bool    { return f.v.Equal(o.v) }
func (f Fixed[Block, P]) Cmp(o Fixed[Block, P]) int       { return f.v.Cmp(o.v) }
func (f Fixed[Block, P]) Less(o Fixed[Block, P]) bool     { return f.v.Less(o.v) }
func (f Fixed[Block, P]) Greater(o Fixed[Block, P]) bool  { return f.v.Greater(o.v) }

func clampOverflow[Block block.Word, P Policy](f Fixed[Block, P], wasNeg bool, r blockbinary.BlockBinary[Block]) blockbinary.BlockBinary[Block] {
	if !policySaturates[P]() {
		return r
	}
	if wasNeg {
		return blockbinary.MaxNeg[Block](f.v.NBits())
	}
	return blockbinary.MaxPos[Block](f.v.NBits())
}

// Add adds o to f. On overflow, Saturating clamps to MaxPos/MaxNeg;
// Modular wraps (spec scenario: fixpnt<8,4,modular> 0x14+0x0C=0x20).
func (f Fixed[Block, P]) Add(o Fixed[Block, P]) Fixed[Block, P] {
	r := f.v.Add(o.v)
	if f.v.Sign() == o.v.Sign() && r.Sign() != f.v.Sign() {
		r = clampOverflow(f, f.v.Sign(), r)
	}
	return Fixed[Block, P]{v: r, rbits: f.rbits}
}

// Sub subtracts o from f, with the same overflow policy as Add.
func (f Fixed[Block, P]) Sub(o Fixed[Block, P]) Fixed[Block, P] {
	r := f.v.Sub(o.v)
	if f.v.Sign() != o.v.Sign() && r.Sign() != f.v.Sign() {
		r = clampOverflow(f, f.v.Sign(), r)
	}
	return Fixed[Block, P]{v: r, rbits: f.rbits}
}

// Neg returns the negation.
func (f Fixed[Block, P]) Neg() Fixed[Block, P] {
	return Fixed[Block, P]{v: f.v.Neg(), rbits: f.rbits}
}

// Abs returns the magnitude.
func (f Fixed[Block, P]) Abs() Fixed[Block, P] {
	return Fixed[Block, P]{v: f.v.Abs(), rbits: f.rbits}
}

// roundShiftDown rounds wide (which carries 2*rbits fraction bits)
// down to rbits fraction bits, round-to-nearest-even, and returns the
// result still at wide's bit width.
func roundShiftDown[Block block.Word](wide blockbinary.BlockBinary[Block], rbits int) blockbinary.BlockBinary[Block] {
	if rbits <= 0 {
		return wide
	}
	decision := wide.RoundingDecision(rbits - 1)
	shifted := wide.Shr(rbits)
	switch {
	case decision > 0:
		shifted = shifted.Add(blockbinary.FromInt64[Block](wide.NBits(), 1))
	case decision == 0 && shifted.At(0):
		shifted = shifted.Add(blockbinary.FromInt64[Block](wide.NBits(), 1))
	}
	return shifted
}

// Mul computes the product, rounding the doubled fraction width back
// to rbits with round-to-nearest-even, then applying the overflow
// policy if the rounded result does not fit in nbits (spec scenario:
// fixpnt<8,4,saturating> 0x7F*0x7F=0x7F vs modular 0x7F*0x7F=0x31).
func (f Fixed[Block, P]) Mul(o Fixed[Block, P]) Fixed[Block, P] {
	wide := f.v.UrMul(o.v) // 2*nbits bits, 2*rbits fraction bits
	rounded := roundShiftDown(wide, f.rbits)
	truncated := rounded.Widen(f.v.NBits())
	reextended := truncated.Widen(rounded.NBits())
	if !reextended.Equal(rounded) {
		wasNeg := rounded.Sign()
		truncated = clampOverflow(f, wasNeg, truncated)
	}
	return Fixed[Block, P]{v: truncated, rbits: f.rbits}
}

// QuoRem is the quotient/remainder pair DivMod returns.
type QuoRem[Block block.Word, P Policy] struct {
	Quo Fixed[Block, P]
	Rem Fixed[Block, P]
}

// DivMod divides f by o, rounding the quotient to rbits fraction bits
// with round-to-nearest-even (one extra guard bit plus the long
// division remainder as the sticky signal), and sets the remainder to
// f - Quo*o. DivideByZero is the only error this returns; overflow (a
// quotient magnitude too large for nbits) follows the same clamp/wrap
// policy as Mul.
func (f Fixed[Block, P]) DivMod(o Fixed[Block, P]) (QuoRem[Block, P], error) {
	if o.v.IsZero() {
		return QuoRem[Block, P]{}, numerr.New(numerr.DivideByZero, "division by zero")
	}
	guardBits := f.rbits + 1
	workBits := f.v.NBits() + guardBits + 1

	numerator := f.v.Widen(workBits).Shl(guardBits)
	denominator := o.v.Widen(workBits)

	qx, rx, err := numerator.DivMod(denominator)
	if err != nil {
		return QuoRem[Block, P]{}, err
	}

	guardSet := qx.At(0)
	sticky := !rx.IsZero()
	quotient := qx.Shr(1)
	if guardSet && (sticky || quotient.At(0)) {
		quotient = quotient.Add(blockbinary.FromInt64[Block](workBits, 1))
	}

	truncated := quotient.Widen(f.v.NBits())
	reextended := truncated.Widen(quotient.NBits())
	if !reextended.Equal(quotient) {
		truncated = clampOverflow(f, quotient.Sign(), truncated)
	}
	quo := Fixed[Block, P]{v: truncated, rbits: f.rbits}
	rem := f.Sub(quo.Mul(o))
	return QuoRem[Block, P]{Quo: quo, Rem: rem}, nil
}

// Quo and Rem are convenience wrappers around DivMod.
func (f Fixed[Block, P]) Quo(o Fixed[Block, P]) (Fixed[Block, P], error) {
	qr, err := f.DivMod(o)
	return qr.Quo, err
}

func (f Fixed[Block, P]) Rem(o Fixed[Block, P]) (Fixed[Block, P], error) {
	qr, err := f.DivMod(o)
	return qr.Rem, err
}

// FromFloat64 converts a float64 to the nearest representable value,
// rounding to nearest even. Like the original's long-double assignment
// (left explicitly unreliable upstream), fraction precision beyond
// float64's 53-bit mantissa is not preserved; that is the accepted
// limit of this conversion, not a bug to chase.
func FromFloat64[Block block.Word, P Policy](nbits, rbits int, v float64) (Fixed[Block, P], error) {
	if math.IsNaN(v) {
		return Fixed[Block, P]{}, numerr.New(numerr.OperandIsNaN, "cannot assign NaN to a fixed-point value")
	}
	z := New[Block, P](nbits, rbits)
	if math.IsInf(v, 0) {
		if !policySaturates[P]() {
			return z, numerr.New(numerr.Overflow, "%v has no fixed-point representation", v)
		}
		if v > 0 {
			return MaxPos[Block, P](nbits, rbits), nil
		}
		return MaxNeg[Block, P](nbits, rbits), nil
	}
	scaled := math.RoundToEven(math.Ldexp(v, rbits))
	maxMag := math.Ldexp(1, nbits-1)
	if scaled >= maxMag || scaled < -maxMag {
		if !policySaturates[P]() {
			raw := int64(math.Mod(scaled, math.Ldexp(1, nbits)))
			return Fixed[Block, P]{v: blockbinary.FromInt64[Block](nbits, raw), rbits: rbits}, nil
		}
		if scaled > 0 {
			return MaxPos[Block, P](nbits, rbits), nil
		}
		return MaxNeg[Block, P](nbits, rbits), nil
	}
	return Fixed[Block, P]{v: blockbinary.FromInt64[Block](nbits, int64(scaled)), rbits: rbits}, nil
}

// ToFloat64 returns the nearest float64 approximation of the value by
// summing the weight 2^(i-rbits) of each set bit of the magnitude. The
// magnitude is taken at nbits+1 so the most-negative value has one.
func (f Fixed[Block, P]) ToFloat64() float64 {
	neg := f.v.Sign()
	mag := f.v.Widen(f.v.NBits() + 1).Abs()
	var v float64
	for i := mag.FindMsb(); i >= 0; i-- {
		if mag.At(i) {
			v += math.Ldexp(1, i-f.rbits)
		}
	}
	if neg {
		v = -v
	}
	return v
}

// String renders exactly rbits decimal fraction digits: a binary
// fraction k/2^R equals k*5^R/10^R, a terminating decimal with
// exactly R digits, produced here via the standard repeated-
// multiply-by-ten expansion of the binary fraction.
func (f Fixed[Block, P]) String() string {
	neg := f.v.Sign()
	// Widen before Abs so the most-negative value has a magnitude, then
	// leave room for the multiply-by-ten steps (frac*10 < 2^(rbits+4))
	// to stay clear of the working sign bit.
	workBits := f.v.NBits() + 5
	mag := f.v.Widen(f.v.NBits() + 1).Abs().Widen(workBits)
	intPart := mag.Shr(f.rbits)

	frac := mag.Sub(intPart.Shl(f.rbits))
	ten := blockbinary.FromInt64[Block](workBits, 10)
	var fracDigits strings.Builder
	for i := 0; i < f.rbits; i++ {
		frac = frac.Mul(ten)
		d := frac.Shr(f.rbits)
		fracDigits.WriteByte(byte('0' + d.ToInt64()))
		frac = frac.Sub(d.Shl(f.rbits))
	}

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	sb.WriteString(intPart.String())
	if f.rbits > 0 {
		sb.WriteByte('.')
		sb.WriteString(fracDigits.String())
	}
	return sb.String()
}

// Parse parses a decimal "[-]digits[.digits]" literal, or a raw
// "0x..." hexadecimal encoding (apostrophes are digit separators and
// are ignored), into r, leaving it unchanged on failure.
func Parse[Block block.Word, P Policy](r *Fixed[Block, P], s string) error {
	clean := strings.ReplaceAll(s, "'", "")
	if strings.HasPrefix(clean, "0x") || strings.HasPrefix(clean, "0X") {
		raw := blockbinary.New[Block](r.v.NBits())
		if err := blockbinary.Parse(&raw, clean); err != nil {
			return err
		}
		r.v = raw
		return nil
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return numerr.New(numerr.ParseFailure, "invalid fixed-point literal %q", s)
	}
	parsed, err := FromFloat64[Block, P](r.v.NBits(), r.rbits, f)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (f Fixed[Block, P]) GoString() string {
	return fmt.Sprintf("fixpnt<%d,%d>(%s)", f.v.NBits(), f.rbits, f.String())
}
