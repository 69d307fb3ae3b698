package timeline

import (
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type OpName string

const (
	OpNameAdd   OpName = "add"
	OpNameSet   OpName = "set"
	OpNameReset OpName = "reset"
)

// Op is one replayable mutation. The numeric fields are loose on purpose:
// payloads come from yaml or json written by hand, and a field that cannot
// be read as a number fails with ErrInvalidType instead of applying
// garbage.
type Op struct {
	Name   OpName `yaml:"op" json:"op"`
	From   any    `yaml:"from,omitempty" json:"from,omitempty"`
	To     any    `yaml:"to,omitempty" json:"to,omitempty"`
	Amount any    `yaml:"amount,omitempty" json:"amount,omitempty"`
}

func ParseOps(d []byte) (ops []Op, err error) {
	err = yaml.Unmarshal(d, &ops)

	return
}

func ApplyOps(tl Timeline, ops []Op) error {
	for _, op := range ops {
		if err := ApplyOp(tl, op); err != nil {
			return err
		}
	}

	return nil
}

func ApplyOp(tl Timeline, op Op) error {
	switch op.Name {
	case OpNameAdd:
		from, to, amount, err := opRangeArgs(op)
		if err != nil {
			return err
		}

		return tl.Add(from, to, amount)
	case OpNameSet:
		from, to, amount, err := opRangeArgs(op)
		if err != nil {
			return err
		}

		return tl.Set(from, to, amount)
	case OpNameReset:
		tl.Reset()

		return nil
	default:
		return ErrUnknownOp
	}
}

func opRangeArgs(op Op) (from, to, amount float64, err error) {
	from, err = opNumber(op.From)
	if err != nil {
		return
	}

	to, err = opNumber(op.To)
	if err != nil {
		return
	}

	amount, err = opNumber(op.Amount)

	return
}

func opNumber(v any) (float64, error) {
	// cast maps nil to 0, a missing field must not apply as 0
	if v == nil {
		return 0, ErrInvalidType
	}

	n, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, ErrInvalidType
	}

	return n, nil
}
