package demo

import (
	"context"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/go-polysat/polysat/pkg/polysat"
	"github.com/go-polysat/polysat/pkg/polysat/constraint"
	"github.com/go-polysat/polysat/pkg/polysat/poly"
	"github.com/go-polysat/polysat/pkg/polysat/solver"
)

func NewDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Runs saturation on a built-in conflict and prints the derivation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return saturate()
		},
	}
}

type conflictSource struct {
	man        *poly.Manager
	assignment map[polysat.Var]*big.Int
	conflict   []constraint.Constraint
}

func (c *conflictSource) Manager() *poly.Manager {
	return c.man
}

func (c *conflictSource) Assignment(_ context.Context) (map[polysat.Var]*big.Int, error) {
	return c.assignment, nil
}

func (c *conflictSource) Conflict(_ context.Context) ([]constraint.Constraint, error) {
	return c.conflict, nil
}

func saturate() error {
	// A conflict in the 4-bit ring: with v1 = 2, v2 = 5 and v3 = 3 the
	// bound v2 <= v1 fails, and raising the factor v1 inside
	// v1*v3 <= 2*v3 exposes the contradiction as a lemma over v2.
	man := poly.NewManager(4)
	x, y, w := man.Var(1), man.Var(2), man.Var(3)
	source := &conflictSource{
		man: man,
		assignment: map[polysat.Var]*big.Int{
			1: big.NewInt(2),
			2: big.NewInt(5),
			3: big.NewInt(3),
		},
		conflict: []constraint.Constraint{
			constraint.Ule(y, x),
			constraint.Ule(x.Mul(w), w.MulConst(big.NewInt(2))),
		},
	}

	fmt.Println("conflict:")
	for _, c := range source.conflict {
		fmt.Printf("- %s\n", c)
	}

	sat := solver.NewSaturation(source)
	resolution, err := sat.Saturate(context.Background(), []polysat.Var{1, 2, 3}, solver.KeepSteps())
	if err != nil {
		return err
	}
	if !resolution.Saturated() {
		fmt.Println("no rule applies")
		return nil
	}

	for _, step := range resolution.Steps() {
		fmt.Printf("rule %s on %s derived:\n- %s\n", step.Rule, step.Var, step.Derived)
		fmt.Println("side conditions:")
		for _, c := range step.Side {
			fmt.Printf("- %s\n", c)
		}
	}

	fmt.Println("saturated core:")
	for _, c := range resolution.Constraints() {
		fmt.Printf("- %s\n", c)
	}

	return nil
}
