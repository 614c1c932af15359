// Package poly implements the polynomial term facility of the solver:
// normalized multivariate polynomials over the ring of integers modulo
// 2^w. Polynomials are immutable once constructed and may be aliased
// freely across constraints and inference rules.
package poly

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/go-polysat/polysat/pkg/polysat"
)

// Manager owns all polynomials of one bit width. Polynomials from
// different managers must never be mixed.
type Manager struct {
	width uint
	bound *big.Int
}

// NewManager returns a manager for polynomials over Z/2^width.
func NewManager(width uint) *Manager {
	if width == 0 {
		panic("poly: zero bit width")
	}
	bound := new(big.Int).Lsh(big.NewInt(1), width)
	return &Manager{width: width, bound: bound}
}

// Width returns the bit width of the ring.
func (m *Manager) Width() uint { return m.width }

// Bound returns 2^width, the modulus of the ring. The caller must not
// mutate the returned value.
func (m *Manager) Bound() *big.Int { return m.bound }

// reduce maps an integer into [0, 2^width).
func (m *Manager) reduce(c *big.Int) *big.Int {
	r := new(big.Int).Mod(c, m.bound)
	return r
}

// monomial is a coefficient times a product of variables. Variables
// are kept sorted, with multiplicity encoding powers. The coefficient
// is always in [1, 2^width).
type monomial struct {
	coeff *big.Int
	vars  []polysat.Var
}

// Poly is a normalized sum of monomials. The zero polynomial has no
// monomials. Monomials are kept in a canonical order so that equal
// polynomials are structurally identical.
type Poly struct {
	m     *Manager
	monos []monomial
}

// Manager returns the manager that owns p.
func (p Poly) Manager() *Manager { return p.m }

// Zero returns the zero polynomial.
func (m *Manager) Zero() Poly { return Poly{m: m} }

// One returns the constant polynomial 1.
func (m *Manager) One() Poly { return m.Val(big.NewInt(1)) }

// Val returns the constant polynomial c mod 2^width.
func (m *Manager) Val(c *big.Int) Poly {
	r := m.reduce(c)
	if r.Sign() == 0 {
		return m.Zero()
	}
	return Poly{m: m, monos: []monomial{{coeff: r}}}
}

// Uint64Val returns the constant polynomial for a small value.
func (m *Manager) Uint64Val(c uint64) Poly {
	return m.Val(new(big.Int).SetUint64(c))
}

// Var returns the polynomial consisting of the single variable v.
func (m *Manager) Var(v polysat.Var) Poly {
	return Poly{m: m, monos: []monomial{{coeff: big.NewInt(1), vars: []polysat.Var{v}}}}
}

func varsLess(a, b []polysat.Var) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func varsEqual(a, b []polysat.Var) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// normalize sorts monomials, merges duplicates and drops zero
// coefficients.
func (m *Manager) normalize(monos []monomial) Poly {
	for i := range monos {
		sort.Slice(monos[i].vars, func(a, b int) bool { return monos[i].vars[a] < monos[i].vars[b] })
	}
	sort.Slice(monos, func(i, j int) bool { return varsLess(monos[i].vars, monos[j].vars) })
	out := make([]monomial, 0, len(monos))
	for _, mo := range monos {
		c := m.reduce(mo.coeff)
		if len(out) > 0 && varsEqual(out[len(out)-1].vars, mo.vars) {
			last := &out[len(out)-1]
			last.coeff = m.reduce(new(big.Int).Add(last.coeff, c))
			continue
		}
		out = append(out, monomial{coeff: c, vars: mo.vars})
	}
	kept := out[:0]
	for _, mo := range out {
		if mo.coeff.Sign() != 0 {
			kept = append(kept, mo)
		}
	}
	if len(kept) == 0 {
		return Poly{m: m}
	}
	return Poly{m: m, monos: kept}
}

// Add returns p + q.
func (p Poly) Add(q Poly) Poly {
	p.sameManager(q)
	monos := make([]monomial, 0, len(p.monos)+len(q.monos))
	for _, mo := range p.monos {
		monos = append(monos, monomial{coeff: new(big.Int).Set(mo.coeff), vars: copyVars(mo.vars)})
	}
	for _, mo := range q.monos {
		monos = append(monos, monomial{coeff: new(big.Int).Set(mo.coeff), vars: copyVars(mo.vars)})
	}
	return p.m.normalize(monos)
}

// Neg returns -p.
func (p Poly) Neg() Poly {
	monos := make([]monomial, 0, len(p.monos))
	for _, mo := range p.monos {
		monos = append(monos, monomial{coeff: new(big.Int).Neg(mo.coeff), vars: copyVars(mo.vars)})
	}
	return p.m.normalize(monos)
}

// Sub returns p - q.
func (p Poly) Sub(q Poly) Poly { return p.Add(q.Neg()) }

// Mul returns p * q.
func (p Poly) Mul(q Poly) Poly {
	p.sameManager(q)
	monos := make([]monomial, 0, len(p.monos)*len(q.monos))
	for _, a := range p.monos {
		for _, b := range q.monos {
			vars := make([]polysat.Var, 0, len(a.vars)+len(b.vars))
			vars = append(vars, a.vars...)
			vars = append(vars, b.vars...)
			monos = append(monos, monomial{
				coeff: new(big.Int).Mul(a.coeff, b.coeff),
				vars:  vars,
			})
		}
	}
	return p.m.normalize(monos)
}

// MulConst returns c * p.
func (p Poly) MulConst(c *big.Int) Poly {
	return p.Mul(p.m.Val(c))
}

func (p Poly) sameManager(q Poly) {
	if p.m != q.m {
		panic("poly: mixed managers")
	}
}

func copyVars(vs []polysat.Var) []polysat.Var {
	if len(vs) == 0 {
		return nil
	}
	out := make([]polysat.Var, len(vs))
	copy(out, vs)
	return out
}

// Equal reports structural equality.
func (p Poly) Equal(q Poly) bool {
	if p.m != q.m || len(p.monos) != len(q.monos) {
		return false
	}
	for i := range p.monos {
		if p.monos[i].coeff.Cmp(q.monos[i].coeff) != 0 || !varsEqual(p.monos[i].vars, q.monos[i].vars) {
			return false
		}
	}
	return true
}

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool { return len(p.monos) == 0 }

// IsVal reports whether p is a constant.
func (p Poly) IsVal() bool {
	return len(p.monos) == 0 || (len(p.monos) == 1 && len(p.monos[0].vars) == 0)
}

// Val returns the value of a constant polynomial.
func (p Poly) Val() *big.Int {
	if !p.IsVal() {
		panic("poly: Val on non-constant")
	}
	if len(p.monos) == 0 {
		return new(big.Int)
	}
	return new(big.Int).Set(p.monos[0].coeff)
}

// IsVar reports whether p is a bare variable.
func (p Poly) IsVar() bool {
	return len(p.monos) == 1 && len(p.monos[0].vars) == 1 && p.monos[0].coeff.Cmp(bigOne) == 0
}

// VarID returns the variable of a bare-variable polynomial.
func (p Poly) VarID() polysat.Var {
	if !p.IsVar() {
		panic("poly: VarID on non-variable")
	}
	return p.monos[0].vars[0]
}

// IsUnary reports whether p is a single variable scaled by a ring
// constant. Bare variables count, with coefficient one.
func (p Poly) IsUnary() bool {
	return len(p.monos) == 1 && len(p.monos[0].vars) == 1
}

// UnaryCoeff returns the constant scale of a unary polynomial.
func (p Poly) UnaryCoeff() *big.Int {
	if !p.IsUnary() {
		panic("poly: UnaryCoeff on non-unary")
	}
	return new(big.Int).Set(p.monos[0].coeff)
}

// UnaryVar returns the variable of a unary polynomial.
func (p Poly) UnaryVar() polysat.Var {
	if !p.IsUnary() {
		panic("poly: UnaryVar on non-unary")
	}
	return p.monos[0].vars[0]
}

var bigOne = big.NewInt(1)

// Degree returns the degree of p in v.
func (p Poly) Degree(v polysat.Var) int {
	max := 0
	for _, mo := range p.monos {
		d := 0
		for _, mv := range mo.vars {
			if mv == v {
				d++
			}
		}
		if d > max {
			max = d
		}
	}
	return max
}

// Factor decomposes p as v^pow * q with no remainder. It returns
// false if any monomial of p is not divisible by v^pow. The quotient
// may still contain v when p has higher degree in v than pow.
func (p Poly) Factor(v polysat.Var, pow int) (Poly, bool) {
	if p.IsZero() {
		return p, false
	}
	monos := make([]monomial, 0, len(p.monos))
	for _, mo := range p.monos {
		rest := make([]polysat.Var, 0, len(mo.vars))
		removed := 0
		for _, mv := range mo.vars {
			if mv == v && removed < pow {
				removed++
				continue
			}
			rest = append(rest, mv)
		}
		if removed < pow {
			return Poly{m: p.m}, false
		}
		monos = append(monos, monomial{coeff: new(big.Int).Set(mo.coeff), vars: rest})
	}
	return p.m.normalize(monos), true
}

// TryDivConst divides every coefficient of p exactly by c. It returns
// false if c is zero or some coefficient is not an exact multiple.
func (p Poly) TryDivConst(c *big.Int) (Poly, bool) {
	if c.Sign() == 0 {
		return Poly{m: p.m}, false
	}
	monos := make([]monomial, 0, len(p.monos))
	for _, mo := range p.monos {
		quo, rem := new(big.Int).QuoRem(mo.coeff, c, new(big.Int))
		if rem.Sign() != 0 {
			return Poly{m: p.m}, false
		}
		monos = append(monos, monomial{coeff: quo, vars: copyVars(mo.vars)})
	}
	return p.m.normalize(monos), true
}

// Eval evaluates p under the given model, reducing into the ring. The
// second return is false if any referenced variable is unassigned.
func (p Poly) Eval(model polysat.Model) (*big.Int, bool) {
	sum := new(big.Int)
	for _, mo := range p.monos {
		term := new(big.Int).Set(mo.coeff)
		for _, v := range mo.vars {
			val, ok := model.Value(v)
			if !ok {
				return nil, false
			}
			term.Mul(term, val)
		}
		sum.Add(sum, term)
	}
	return p.m.reduce(sum), true
}

// Vars returns the distinct variables occurring in p, in ascending
// order.
func (p Poly) Vars() []polysat.Var {
	seen := map[polysat.Var]struct{}{}
	var out []polysat.Var
	for _, mo := range p.monos {
		for _, v := range mo.vars {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders p for tracing and error messages.
func (p Poly) String() string {
	if len(p.monos) == 0 {
		return "0"
	}
	parts := make([]string, 0, len(p.monos))
	for _, mo := range p.monos {
		var b strings.Builder
		if len(mo.vars) == 0 || mo.coeff.Cmp(bigOne) != 0 {
			b.WriteString(mo.coeff.String())
		}
		for i, v := range mo.vars {
			if i > 0 || b.Len() > 0 {
				b.WriteString("*")
			}
			b.WriteString(v.String())
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, " + ")
}

// GoString implements fmt.GoStringer for test diagnostics.
func (p Poly) GoString() string {
	return fmt.Sprintf("poly.Poly(%s)", p.String())
}
