// Package blocktriple implements the normalized (sign, scale,
// significand) triple that cfloat uses internally to carry out
// arithmetic: operands are decomposed into a triple, combined at
// whatever extra width the operation needs to stay exact, and handed
// back together with a rounding decision so the caller can fold the
// result into its own, narrower, representation. blocktriple never
// rounds on its own: every Add/Sub/Mul/Div returns the decision
// (-1/0/+1, in the same sense as block.RoundingDecision) alongside
// the unrounded triple, and it is up to the caller to apply it.
package blocktriple

import (
	"github.com/bitforms/numeric/block"
	"github.com/bitforms/numeric/blockbinary"
)

// Op names the operation a triple is sized for. Representation holds
// a plain value (hidden bit plus F fraction bits); AddOp needs two
// spare bits for alignment shifts and a possible carry; MulOp needs
// the full double-width product; DivOp needs enough working bits for
// long division to produce F correctly rounded quotient bits.
type Op int

const (
	Representation Op = iota
	AddOp
	MulOp
	DivOp
)

// Width returns the documented significand bit width for operation op
// over a value with F fraction bits: the number of bits that actually
// carry value.
func Width(op Op, f int) int {
	switch op {
	case Representation:
		return f + 1
	case AddOp:
		return f + 3
	case MulOp:
		return 2*f + 1
	case DivOp:
		return 3*f + 1
	default:
		return f + 1
	}
}

// storageWidth is what significand is actually allocated at: Width
// plus headroom so the most significant value bit never reaches the
// blockbinary sign-bit position. A normalized Representation value's
// leading bit sits at exactly Width-1; a Mul product's leading bit
// can reach Width; four spare bits covers every op with margin to
// spare for carries produced while combining two triples.
func storageWidth(op Op, f int) int {
	return Width(op, f) + 4
}

// Triple is a normalized (sign, scale, significand) value: its
// magnitude is significand * 2^(scale-f), with significand's leading
// set bit ordinarily at position f (the implicit "1." of a normalized
// float) for a finite nonzero value. significand is always stored
// nonnegative; Triple.sign carries the value's sign separately.
type Triple[Block block.Word] struct {
	f     int
	op    Op
	sign  bool
	scale int

	significand blockbinary.BlockBinary[Block]

	isZero    bool
	isInf     bool
	isNaN     bool
	signaling bool // meaningful only when isNaN
}

// New builds a finite nonzero triple from its components. significand
// is widened to this op's storage width.
func New[Block block.Word](f int, op Op, sign bool, scale int, significand blockbinary.BlockBinary[Block]) Triple[Block] {
	return Triple[Block]{f: f, op: op, sign: sign, scale: scale, significand: significand.Widen(storageWidth(op, f))}
}

// Zero builds a signed zero.
func Zero[Block block.Word](f int, op Op, sign bool) Triple[Block] {
	return Triple[Block]{f: f, op: op, sign: sign, isZero: true, significand: blockbinary.New[Block](storageWidth(op, f))}
}

// Inf builds a signed infinity.
func Inf[Block block.Word](f int, op Op, sign bool) Triple[Block] {
	return Triple[Block]{f: f, op: op, sign: sign, isInf: true, significand: blockbinary.New[Block](storageWidth(op, f))}
}

// NaN builds a quiet or signaling NaN.
func NaN[Block block.Word](f int, op Op, signaling bool) Triple[Block] {
	return Triple[Block]{f: f, op: op, isNaN: true, signaling: signaling, significand: blockbinary.New[Block](storageWidth(op, f))}
}

func (t Triple[Block]) IsZero() bool                                { return t.isZero }
func (t Triple[Block]) IsInf() bool                                 { return t.isInf }
func (t Triple[Block]) IsNaN() bool                                 { return t.isNaN }
func (t Triple[Block]) IsSignaling() bool                           { return t.isNaN && t.signaling }
func (t Triple[Block]) Sign() bool                                  { return t.sign }
func (t Triple[Block]) Scale() int                                  { return t.scale }
func (t Triple[Block]) F() int                                      { return t.f }
func (t Triple[Block]) Op() Op                                      { return t.op }
func (t Triple[Block]) Significand() blockbinary.BlockBinary[Block] { return t.significand }

// RoundingDecision exposes the block-level rounding oracle on the
// significand at the given bit position.
func (t Triple[Block]) RoundingDecision(pos int) int {
	return t.significand.RoundingDecision(pos)
}

// resized rebuilds the triple at another operation's storage width,
// widening or truncating the significand (no rounding: callers
// needing a rounded narrowing should consult RoundingDecision first).
func (t Triple[Block]) resized(op Op) Triple[Block] {
	t.op = op
	t.significand = t.significand.Widen(storageWidth(op, t.f))
	return t
}

// combineSpecial applies the propagation rules shared by every binary
// operation: a signaling NaN operand is contagious and forces a
// signaling NaN result; a quiet NaN operand (with no signaling
// operand present) propagates as a quiet NaN; infinities combine per
// the usual IEEE rules, with opposite-signed infinities meeting in an
// addition producing a signaling NaN (an indeterminate form, flagged
// rather than silently quieted). The infinity results it returns are
// those of addition; Mul and Div adjust them to their own rules. It
// returns (result, true) when a special case fully determines the
// outcome.
func combineSpecial[Block block.Word](a, b Triple[Block], isAdd bool) (Triple[Block], bool) {
	f, op := a.f, a.op
	if a.IsSignaling() || b.IsSignaling() {
		return NaN[Block](f, op, true), true
	}
	if a.IsNaN() || b.IsNaN() {
		return NaN[Block](f, op, false), true
	}
	if a.IsInf() && b.IsInf() {
		if isAdd && a.sign != b.sign {
			return NaN[Block](f, op, true), true
		}
		return Inf[Block](f, op, a.sign), true
	}
	if a.IsInf() {
		return Inf[Block](f, op, a.sign), true
	}
	if b.IsInf() {
		return Inf[Block](f, op, b.sign), true
	}
	return Triple[Block]{}, false
}

// normalize shifts the significand so its leading set bit sits at
// position f, adjusting scale to compensate, and returns the bits
// shifted away as a rounding decision (-1 if nothing was discarded).
func (t Triple[Block]) normalize() (Triple[Block], int) {
	if t.significand.IsZero() {
		t.isZero = true
		return t, -1
	}
	msb := t.significand.FindMsb()
	shift := msb - t.f
	decision := -1
	switch {
	case shift > 0:
		decision = t.significand.RoundingDecision(shift - 1)
		t.significand = t.significand.Shr(shift)
		t.scale += shift
	case shift < 0:
		t.significand = t.significand.Shl(-shift)
		t.scale += shift
	}
	return t, decision
}

// Add returns a+b (or a-b if sub is true) together with the rounding
// decision for the bits that do not fit the result significand. The
// magnitudes are carried in working registers with three extra bits
// below the fraction (guard, round, sticky); whatever the alignment
// shift or the post-add normalization pushes off the bottom is folded
// into the sticky position, so a single decision at the end covers
// both discard stages.
func Add[Block block.Word](a, b Triple[Block], sub bool) (Triple[Block], int) {
	if sub {
		b.sign = !b.sign
	}
	if r, ok := combineSpecial(a, b, true); ok {
		return r, -1
	}
	if a.isZero {
		return b.resized(AddOp), -1
	}
	if b.isZero {
		return a.resized(AddOp), -1
	}

	width := storageWidth(AddOp, a.f)
	const ext = 3
	one := blockbinary.FromInt64[Block](width, 1)

	hi, lo := a, b
	if lo.scale > hi.scale {
		hi, lo = lo, hi
	}
	diff := hi.scale - lo.scale

	hiMag := hi.significand.Widen(width).Shl(ext)
	loMag := lo.significand.Widen(width).Shl(ext)
	if diff > 0 {
		shifted := loMag.Shr(diff)
		if !shifted.Shl(diff).Equal(loMag) {
			shifted = shifted.Or(one)
		}
		loMag = shifted
	}

	var sum blockbinary.BlockBinary[Block]
	var sign bool
	switch {
	case hi.sign == lo.sign:
		sum = hiMag.Add(loMag)
		sign = hi.sign
	case hiMag.Cmp(loMag) == 0:
		// Exact cancellation: the sticky fold cannot fire here, since a
		// fold needs diff > ext, which keeps the magnitudes apart.
		return Zero[Block](a.f, AddOp, false), -1
	case hiMag.Greater(loMag):
		sum = hiMag.Sub(loMag)
		sign = hi.sign
	default:
		sum = loMag.Sub(hiMag)
		sign = lo.sign
	}

	scale := hi.scale
	msb := sum.FindMsb()
	target := a.f + ext
	switch {
	case msb > target:
		s := msb - target
		shifted := sum.Shr(s)
		if !shifted.Shl(s).Equal(sum) {
			shifted = shifted.Or(one)
		}
		sum = shifted
		scale += s
	case msb < target:
		sum = sum.Shl(target - msb)
		scale -= target - msb
	}

	decision := sum.RoundingDecision(ext - 1)
	result := Triple[Block]{f: a.f, op: AddOp, sign: sign, scale: scale, significand: sum.Shr(ext)}
	return result, decision
}

// Mul returns a*b with the rounding decision for the bits dropped in
// renormalizing the double-width product back to a leading bit at f.
// The product of two significands carries its radix at 2f, so the
// scale is rebased by -f before normalize moves the leading bit down.
func Mul[Block block.Word](a, b Triple[Block]) (Triple[Block], int) {
	if r, ok := combineSpecial(a, b, false); ok {
		if r.IsInf() {
			// 0*inf is indeterminate; otherwise the sign is the XOR.
			if a.isZero || b.isZero {
				return NaN[Block](a.f, a.op, true), -1
			}
			r.sign = a.sign != b.sign
		}
		return r, -1
	}
	sign := a.sign != b.sign
	if a.isZero || b.isZero {
		return Zero[Block](a.f, MulOp, sign), -1
	}
	sigWidth := storageWidth(Representation, a.f)
	prod := a.significand.Widen(sigWidth).UrMul(b.significand.Widen(sigWidth))
	prod = prod.Widen(storageWidth(MulOp, a.f))
	result := Triple[Block]{f: a.f, op: MulOp, sign: sign, scale: a.scale + b.scale - a.f, significand: prod}
	return result.normalize()
}

// Div returns a/b together with the rounding decision derived from the
// long-division remainder. A zero b yields a signed infinity (0/0 a
// signaling NaN); callers needing the DivideByZero error category
// should check IsZero before calling Div.
func Div[Block block.Word](a, b Triple[Block]) (Triple[Block], int) {
	if r, ok := combineSpecial(a, b, false); ok {
		switch {
		case r.IsNaN():
		case a.isInf && b.isInf: // inf/inf is indeterminate
			r = NaN[Block](a.f, a.op, true)
		case b.isInf: // finite/inf is a signed zero
			r = Zero[Block](a.f, DivOp, a.sign != b.sign)
		default:
			r.sign = a.sign != b.sign
		}
		return r, -1
	}
	sign := a.sign != b.sign
	if a.isZero && b.isZero { // 0/0 is indeterminate
		return NaN[Block](a.f, a.op, true), -1
	}
	if a.isZero {
		return Zero[Block](a.f, DivOp, sign), -1
	}
	if b.isZero {
		return Inf[Block](a.f, DivOp, sign), -1
	}

	// A subnormal operand carries its significand below position f;
	// normalize both sides (an exact left shift for representation
	// triples) so the quotient always lands with its leading bit at
	// f or f+1 and the remainder holds the entire discarded fraction.
	a, _ = a.normalize()
	b, _ = b.normalize()

	extra := a.f + 1
	width := storageWidth(DivOp, a.f) + extra + 1
	numerator := a.significand.Widen(width).Shl(extra)
	denominator := b.significand.Widen(width)

	qx, rx, err := numerator.DivMod(denominator)
	if err != nil {
		return Inf[Block](a.f, DivOp, sign), -1
	}

	msb := qx.FindMsb()
	shift := msb - a.f
	var sig blockbinary.BlockBinary[Block]
	decision := -1
	switch {
	case shift > 0:
		// Quotient bits fall below the result; the remainder can only
		// add sticky weight underneath them.
		decision = qx.RoundingDecision(shift - 1)
		if decision == 0 && !rx.IsZero() {
			decision = 1
		}
		sig = qx.Shr(shift)
	case shift < 0:
		sig = qx.Shl(-shift)
	default:
		// The quotient's LSB is the result LSB: the discarded fraction
		// is exactly rx/denominator, compared against one half.
		sig = qx
		switch cmp := rx.Shl(1).Cmp(denominator); {
		case cmp > 0:
			decision = 1
		case cmp == 0:
			decision = 0
		}
	}

	scale := a.scale - b.scale - 1 + shift
	result := Triple[Block]{f: a.f, op: DivOp, sign: sign, scale: scale, significand: sig.Widen(storageWidth(DivOp, a.f))}
	return result, decision
}
