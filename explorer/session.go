package explorer

import (
	"fmt"
	"strconv"
	"strings"
)

// Session holds the interactive state of one explorer run: the
// current value being inspected, its command history, and an output
// buffer commands append to.
type Session struct {
	Current CfloatValue
	NBits   int
	ES      int
	Policy  string

	History     []string
	LastCommand string
	Output      strings.Builder
}

// NewSession starts a session on a fresh zero value of the given
// shape and policy.
func NewSession(policyName string, nbits, es int) (*Session, error) {
	v, err := NewCfloatValue(policyName, nbits, es, 0)
	if err != nil {
		return nil, err
	}
	return &Session{Current: v, NBits: nbits, ES: es, Policy: policyName}, nil
}

// GetOutput returns and clears the accumulated output buffer.
func (s *Session) GetOutput() string {
	out := s.Output.String()
	s.Output.Reset()
	return out
}

// ExecuteCommand parses and dispatches one command line: empty input
// repeats the last command, every non-empty line is recorded in
// History before dispatch.
func (s *Session) ExecuteCommand(cmdLine string) error {
	cmdLine = strings.TrimSpace(cmdLine)
	if cmdLine == "" {
		cmdLine = s.LastCommand
	}
	if cmdLine != "" {
		s.History = append(s.History, cmdLine)
		s.LastCommand = cmdLine
	}

	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return nil
	}
	return s.handleCommand(strings.ToLower(parts[0]), parts[1:])
}

func (s *Session) handleCommand(cmd string, args []string) error {
	switch cmd {
	case "set":
		return s.cmdSet(args)
	case "next", "n":
		return s.cmdNext(args)
	case "prev", "p":
		return s.cmdPrev(args)
	case "add":
		return s.cmdBinaryOp(args, CfloatValue.Add, "+")
	case "mul":
		return s.cmdBinaryOp(args, CfloatValue.Mul, "*")
	case "policy":
		return s.cmdPolicy(args)
	case "shape":
		return s.cmdShape(args)
	case "info", "i":
		return s.cmdInfo(args)
	case "help", "h", "?":
		return s.cmdHelp(args)
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
}

func (s *Session) cmdSet(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: set <decimal-value>")
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("set: %w", err)
	}
	nv, err := NewCfloatValue(s.Policy, s.NBits, s.ES, v)
	if err != nil {
		return err
	}
	s.Current = nv
	fmt.Fprintf(&s.Output, "%s\n", s.describe())
	return nil
}

func (s *Session) cmdNext(args []string) error {
	s.Current = s.Current.Next()
	fmt.Fprintf(&s.Output, "%s\n", s.describe())
	return nil
}

func (s *Session) cmdPrev(args []string) error {
	s.Current = s.Current.Prev()
	fmt.Fprintf(&s.Output, "%s\n", s.describe())
	return nil
}

func (s *Session) cmdBinaryOp(args []string, op func(CfloatValue, CfloatValue) (CfloatValue, error), symbol string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <decimal-operand>", symbol)
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%s: %w", symbol, err)
	}
	operand, err := NewCfloatValue(s.Policy, s.NBits, s.ES, v)
	if err != nil {
		return err
	}
	result, err := op(s.Current, operand)
	if err != nil {
		return err
	}
	fmt.Fprintf(&s.Output, "%s %s %s = %s\n", s.Current.String(), symbol, operand.String(), result.String())
	s.Current = result
	return nil
}

func (s *Session) cmdPolicy(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: policy <%s>", strings.Join(PolicyNames, "|"))
	}
	nv, err := NewCfloatValue(args[0], s.NBits, s.ES, s.Current.ToFloat64())
	if err != nil {
		return err
	}
	s.Policy = args[0]
	s.Current = nv
	fmt.Fprintf(&s.Output, "%s\n", s.describe())
	return nil
}

func (s *Session) cmdShape(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: shape <nbits> <es>")
	}
	nbits, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("shape: invalid nbits: %w", err)
	}
	es, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("shape: invalid es: %w", err)
	}
	nv, err := NewCfloatValue(s.Policy, nbits, es, s.Current.ToFloat64())
	if err != nil {
		return err
	}
	s.NBits, s.ES = nbits, es
	s.Current = nv
	fmt.Fprintf(&s.Output, "%s\n", s.describe())
	return nil
}

func (s *Session) cmdInfo(args []string) error {
	fmt.Fprintf(&s.Output, "%s\n", s.describe())
	return nil
}

func (s *Session) cmdHelp(args []string) error {
	fmt.Fprint(&s.Output, helpText)
	return nil
}

const helpText = `commands:
  set <v>        assign a decimal value
  next            step to the next encoding
  prev            step to the previous encoding
  add <v>         add a decimal operand to the current value
  mul <v>         multiply the current value by a decimal operand
  policy <name>   switch policy: ieee, standard, extended, saturating
  shape <n> <es>  change the total bit width and exponent width
  info            show the current value's bit layout and predicates
  help            show this text
`

// describe renders the current value's decimal form, raw bits, and
// discriminant predicates in one block, the information a TUI's info
// panel and an apiserver response both need.
func (s *Session) describe() string {
	v := s.Current
	var b strings.Builder
	fmt.Fprintf(&b, "value   : %s\n", v.String())
	fmt.Fprintf(&b, "shape   : cfloat<%d,%d> policy=%s\n", v.NBits(), v.ES(), v.PolicyName())
	fmt.Fprintf(&b, "bits    : %s\n", v.Binary())
	fmt.Fprintf(&b, "raw     : 0x%x\n", v.Raw())
	fmt.Fprintf(&b, "state   : zero=%v inf=%v nan=%v snan=%v normal=%v subnormal=%v supernormal=%v\n",
		v.IsZero(), v.IsInf(), v.IsNaN(), v.IsSignalingNaN(), v.IsNormal(), v.IsSubnormal(), v.IsSupernormal())
	return b.String()
}
