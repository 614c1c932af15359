package polysat

import (
	"fmt"
	"math/big"
)

// Var values identify bit-vector unknowns within a single solver
// session. The zero value is not a valid variable.
type Var uint32

func (v Var) String() string {
	return fmt.Sprintf("v%d", uint32(v))
}

// Lbool is a three-valued boolean as assigned by the boolean layer of
// the decision trail.
type Lbool int8

const (
	Undef Lbool = iota
	True
	False
)

func (l Lbool) String() string {
	switch l {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "undef"
	}
}

// Model exposes the arithmetic layer of the current partial
// assignment.
type Model interface {
	// Value returns the concrete ring value of an assigned variable.
	// The second return is false if the variable is unassigned.
	Value(v Var) (*big.Int, bool)
}

// ViableSet tracks the feasible range of each variable under the
// constraints asserted so far.
type ViableSet interface {
	// MaxViable returns the largest value the variable can still
	// take, i.e. 2^w - 1 tightened by any asserted upper bounds.
	MaxViable(v Var) *big.Int
}

// ErrUnassigned is returned by trail operations that require a fully
// assigned variable.
type ErrUnassigned Var

func (e ErrUnassigned) Error() string {
	return fmt.Sprintf("variable %s is unassigned", Var(e))
}
