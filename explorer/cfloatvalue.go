// Package explorer implements an interactive inspector for a cfloat's
// encoding space: it walks the encoding with the ++/-- sequence and
// shows the current value's decimal form, bit fields, raw bits, and
// discriminant predicates. It does not reinterpret the bits as
// blockbinary/integer/fixpnt and does not show rounding decisions.
package explorer

import (
	"fmt"

	"github.com/bitforms/numeric/cfloat"
)

// CfloatValue erases a cfloat.Float's Block/Policy type parameters so
// a Session can hold and step through one without knowing its shape
// at compile time: the policy is chosen interactively, at a prompt,
// not fixed by the Go type system ahead of time.
type CfloatValue interface {
	NBits() int
	ES() int
	PolicyName() string
	Raw() uint64
	Binary() string
	String() string
	Sign() bool
	ToFloat64() float64
	IsZero() bool
	IsInf() bool
	IsNaN() bool
	IsSignalingNaN() bool
	IsNormal() bool
	IsSubnormal() bool
	IsSupernormal() bool
	Next() CfloatValue
	Prev() CfloatValue
	Add(CfloatValue) (CfloatValue, error)
	Mul(CfloatValue) (CfloatValue, error)
}

// cfloatAdapter wraps a cfloat.Float[uint64, P] so its methods satisfy
// CfloatValue. uint64 blocks cover every shape the explorer needs
// (nbits up to 64); only the policy varies interactively.
type cfloatAdapter[P cfloat.Policy] struct {
	v    cfloat.Float[uint64, P]
	name string
}

func (a cfloatAdapter[P]) NBits() int         { return a.v.NBits() }
func (a cfloatAdapter[P]) ES() int            { return a.v.ES() }
func (a cfloatAdapter[P]) PolicyName() string { return a.name }
func (a cfloatAdapter[P]) Raw() uint64        { return a.v.Raw().ToUint64() }
func (a cfloatAdapter[P]) Binary() string     { return a.v.Binary() }
func (a cfloatAdapter[P]) String() string     { return a.v.String() }
func (a cfloatAdapter[P]) Sign() bool         { return a.v.Sign() }
func (a cfloatAdapter[P]) ToFloat64() float64 { return a.v.ToFloat64() }
func (a cfloatAdapter[P]) IsZero() bool       { return a.v.IsZero() }
func (a cfloatAdapter[P]) IsInf() bool        { return a.v.IsInf() }
func (a cfloatAdapter[P]) IsNaN() bool        { return a.v.IsNaN() }
func (a cfloatAdapter[P]) IsSignalingNaN() bool { return a.v.IsSignalingNaN() }
func (a cfloatAdapter[P]) IsNormal() bool       { return a.v.IsNormal() }
func (a cfloatAdapter[P]) IsSubnormal() bool    { return a.v.IsSubnormal() }
func (a cfloatAdapter[P]) IsSupernormal() bool  { return a.v.IsSupernormal() }

func (a cfloatAdapter[P]) Next() CfloatValue {
	return cfloatAdapter[P]{v: a.v.Next(), name: a.name}
}

func (a cfloatAdapter[P]) Prev() CfloatValue {
	return cfloatAdapter[P]{v: a.v.Prev(), name: a.name}
}

func (a cfloatAdapter[P]) Add(o CfloatValue) (CfloatValue, error) {
	other, ok := o.(cfloatAdapter[P])
	if !ok {
		return nil, fmt.Errorf("operand policy %s does not match %s", o.PolicyName(), a.name)
	}
	return cfloatAdapter[P]{v: a.v.Add(other.v), name: a.name}, nil
}

func (a cfloatAdapter[P]) Mul(o CfloatValue) (CfloatValue, error) {
	other, ok := o.(cfloatAdapter[P])
	if !ok {
		return nil, fmt.Errorf("operand policy %s does not match %s", o.PolicyName(), a.name)
	}
	return cfloatAdapter[P]{v: a.v.Mul(other.v), name: a.name}, nil
}

// PolicyNames lists every selectable policy, in the order the help
// text and the TUI's policy cycle present them.
var PolicyNames = []string{"ieee", "standard", "extended", "saturating"}

// NewCfloatValue builds a CfloatValue of the named policy, shape, and
// initial decimal value. Exported so apiserver can build the same
// erased values the TUI does from an HTTP request body.
func NewCfloatValue(policyName string, nbits, es int, v float64) (CfloatValue, error) {
	switch policyName {
	case "ieee":
		return cfloatAdapter[cfloat.IEEE]{v: cfloat.FromFloat64[uint64, cfloat.IEEE](nbits, es, v), name: policyName}, nil
	case "standard":
		return cfloatAdapter[cfloat.Standard]{v: cfloat.FromFloat64[uint64, cfloat.Standard](nbits, es, v), name: policyName}, nil
	case "extended":
		return cfloatAdapter[cfloat.Extended]{v: cfloat.FromFloat64[uint64, cfloat.Extended](nbits, es, v), name: policyName}, nil
	case "saturating":
		return cfloatAdapter[cfloat.Saturating]{v: cfloat.FromFloat64[uint64, cfloat.Saturating](nbits, es, v), name: policyName}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q (want one of %v)", policyName, PolicyNames)
	}
}
