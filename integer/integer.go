// Package integer is a thin, overflow-policy layer over blockbinary:
// a fixed-width signed integer that is modular by default and can be
// switched to trap on overflow, mirroring the arithmetic-bool toggle
// the original template carried as a type parameter.
package integer

import (
	"github.com/bitforms/numeric/block"
	"github.com/bitforms/numeric/blockbinary"
	"github.com/bitforms/numeric/numerr"
)

// Integer is a signed integer of width NBits, built over Block-sized
// storage words.
type Integer[Block block.Word] struct {
	v     blockbinary.BlockBinary[Block]
	traps bool
}

// New returns the zero value of the given width, modular (wraps on
// overflow) by default.
func New[Block block.Word](nbits int) Integer[Block] {
	return Integer[Block]{v: blockbinary.New[Block](nbits)}
}

// WithOverflowTrap returns a copy of n configured to report Overflow
// errors from Add/Sub/Mul/DivMod instead of wrapping silently.
func (n Integer[Block]) WithOverflowTrap() Integer[Block] {
	n.traps = true
	return n
}

// FromInt64 builds a width-nbits integer from a native signed value,
// clipping and sign-extending.
func FromInt64[Block block.Word](nbits int, v int64) Integer[Block] {
	return Integer[Block]{v: blockbinary.FromInt64[Block](nbits, v)}
}

// FromUint64 builds a width-nbits integer from a native unsigned
// value, clipping and zero-extending.
func FromUint64[Block block.Word](nbits int, v uint64) Integer[Block] {
	return Integer[Block]{v: blockbinary.FromUint64[Block](nbits, v)}
}

// NBits returns the configured bit width.
func (n Integer[Block]) NBits() int { return n.v.NBits() }

// Raw exposes the underlying blockbinary value.
func (n Integer[Block]) Raw() blockbinary.BlockBinary[Block] { return n.v }

// ToInt64 clips and sign-extends to a native signed integer.
func (n Integer[Block]) ToInt64() int64 { return n.v.ToInt64() }

// ToUint64 returns the low 64 bits, unsigned.
func (n Integer[Block]) ToUint64() uint64 { return n.v.ToUint64() }

// String renders the decimal value.
func (n Integer[Block]) String() string { return n.v.String() }

// IsZero reports whether the value is exactly zero.
func (n Integer[Block]) IsZero() bool { return n.v.IsZero() }

// Sign reports the sign bit.
func (n Integer[Block]) Sign() bool { return n.v.Sign() }

// Equal reports value equality.
func (n Integer[Block]) Equal(o Integer[Block]) bool { return n.v.Equal(o.v) }

// Cmp compares as signed integers.
func (n Integer[Block]) Cmp(o Integer[Block]) int { return n.v.Cmp(o.v) }

// Add adds o to n. In trapping mode, a result whose sign cannot be
// explained by the operands' signs (same-sign operands, opposite-sign
// result) reports Overflow and returns n unchanged.
func (n Integer[Block]) Add(o Integer[Block]) (Integer[Block], error) {
	r := n.v.Add(o.v)
	if n.traps && n.v.Sign() == o.v.Sign() && r.Sign() != n.v.Sign() {
		return n, numerr.New(numerr.Overflow, "%s + %s overflows %d bits", n, o, n.NBits())
	}
	return Integer[Block]{v: r, traps: n.traps}, nil
}

// Sub subtracts o from n, trapping on overflow the same way Add does.
func (n Integer[Block]) Sub(o Integer[Block]) (Integer[Block], error) {
	r := n.v.Sub(o.v)
	if n.traps && n.v.Sign() != o.v.Sign() && r.Sign() != n.v.Sign() {
		return n, numerr.New(numerr.Overflow, "%s - %s overflows %d bits", n, o, n.NBits())
	}
	return Integer[Block]{v: r, traps: n.traps}, nil
}

// Mul multiplies n by o. In trapping mode it computes the full
// double-width product and reports Overflow if truncating it back to
// NBits and sign-extending it back out does not reproduce the wide
// product, i.e. information was lost to truncation.
func (n Integer[Block]) Mul(o Integer[Block]) (Integer[Block], error) {
	wide := n.v.UrMul(o.v)
	if n.traps {
		truncated := wide.Widen(n.NBits())
		reextended := truncated.Widen(wide.NBits())
		if !reextended.Equal(wide) {
			return n, numerr.New(numerr.Overflow, "%s * %s overflows %d bits", n, o, n.NBits())
		}
	}
	return Integer[Block]{v: wide.Widen(n.NBits()), traps: n.traps}, nil
}

// DivMod returns the quotient and remainder, truncating toward zero.
// DivideByZero propagates from blockbinary; in trapping mode, dividing
// the most-negative value by -1 (the one integer division that
// overflows) is also reported as Overflow.
func (n Integer[Block]) DivMod(o Integer[Block]) (quotient, remainder Integer[Block], err error) {
	q, r, err := n.v.DivMod(o.v)
	if err != nil {
		return n, n, err
	}
	if n.traps {
		negOne := blockbinary.FromInt64[Block](n.NBits(), -1)
		isMinNeg := n.v.Sign() && n.v.Abs().Equal(n.v)
		if isMinNeg && o.v.Equal(negOne) {
			return n, n, numerr.New(numerr.Overflow, "%s / -1 overflows %d bits", n, n.NBits())
		}
	}
	return Integer[Block]{v: q, traps: n.traps}, Integer[Block]{v: r, traps: n.traps}, nil
}

// Quo is DivMod's quotient.
func (n Integer[Block]) Quo(o Integer[Block]) (Integer[Block], error) {
	q, _, err := n.DivMod(o)
	return q, err
}

// Rem is DivMod's remainder.
func (n Integer[Block]) Rem(o Integer[Block]) (Integer[Block], error) {
	_, r, err := n.DivMod(o)
	return r, err
}

// Parse parses a decimal `[0-9]+` or hexadecimal `0x[0-9A-F']+` string
// (apostrophes are digit separators) into r, leaving r unchanged on
// failure.
func Parse[Block block.Word](r *Integer[Block], s string) error {
	return blockbinary.Parse(&r.v, s)
}

// Neg returns the two's complement negation.
func (n Integer[Block]) Neg() Integer[Block] {
	return Integer[Block]{v: n.v.Neg(), traps: n.traps}
}

// Abs returns the magnitude.
func (n Integer[Block]) Abs() Integer[Block] {
	return Integer[Block]{v: n.v.Abs(), traps: n.traps}
}
