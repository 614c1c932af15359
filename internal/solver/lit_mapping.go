package solver

import (
	"fmt"
	"strings"

	"github.com/go-air/gini/z"

	"github.com/go-polysat/polysat/pkg/polysat/constraint"
)

type inconsistentLitMapping []error

func (inconsistentLitMapping) Error() string {
	return "internal boolean layer failure"
}

// litMapping performs translation between signed constraints and the
// literals understood by the underlying SAT engine. Constraints are
// interned by their canonical positive form; polarity is carried by
// the sign of the returned literal.
type litMapping struct {
	lits        map[string]z.Lit
	constraints map[z.Lit]constraint.Constraint
	next        z.Var
	errs        inconsistentLitMapping
}

func newLitMapping() *litMapping {
	return &litMapping{
		lits:        make(map[string]z.Lit),
		constraints: make(map[z.Lit]constraint.Constraint),
		next:        1,
	}
}

// LitOf returns the literal corresponding to the signed constraint c,
// allocating a fresh SAT variable for constraints not seen before.
func (d *litMapping) LitOf(c constraint.Constraint) z.Lit {
	pos := c
	if !c.Positive() {
		pos = c.Not()
	}
	key := pos.String()
	m, ok := d.lits[key]
	if !ok {
		m = d.next.Pos()
		d.next++
		d.lits[key] = m
		d.constraints[m] = pos
	}
	if !c.Positive() {
		return m.Not()
	}
	return m
}

// ConstraintOf returns the signed constraint corresponding to the
// provided literal.
func (d *litMapping) ConstraintOf(m z.Lit) (constraint.Constraint, bool) {
	if c, ok := d.constraints[m]; ok {
		return c, true
	}
	if c, ok := d.constraints[m.Not()]; ok {
		return c.Not(), true
	}
	d.errs = append(d.errs, fmt.Errorf("no constraint corresponding to %s", m))
	return constraint.Constraint{}, false
}

// Error returns a single error value that is an aggregation of all
// errors encountered during a litMapping's lifetime, or nil if there
// have been no errors. A non-nil return value likely indicates a bug
// in the trail or the constraint implementations.
func (d *litMapping) Error() error {
	if len(d.errs) == 0 {
		return nil
	}
	s := make([]string, len(d.errs))
	for i, err := range d.errs {
		s[i] = err.Error()
	}
	return fmt.Errorf("%d errors encountered: %s", len(s), strings.Join(s, ", "))
}
