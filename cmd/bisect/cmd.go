package bisect

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/go-polysat/polysat/internal/solver"
	"github.com/go-polysat/polysat/pkg/polysat"
	"github.com/go-polysat/polysat/pkg/polysat/constraint"
	"github.com/go-polysat/polysat/pkg/polysat/poly"
)

func NewBisectCommand() *cobra.Command {
	var width uint
	var xVal, yVal, xMax, yMax uint64

	cmd := &cobra.Command{
		Use:   "bisect",
		Short: "Derives non-overflow premises for a product of two assigned variables",
		Long: `Derives premises under which the product x*y stays below 2^width, given
the current values of x and y and upper bounds on how far each may
still grow. The premises take the form x <= cx and y <= cy for a
maximal corner (cx, cy) of the non-overflow region reachable without
decreasing either value.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(width, xVal, yVal, xMax, yMax)
		},
	}

	cmd.Flags().UintVar(&width, "width", 8, "bit width of the ring")
	cmd.Flags().Uint64Var(&xVal, "x", 1, "current value of x")
	cmd.Flags().Uint64Var(&yVal, "y", 1, "current value of y")
	cmd.Flags().Uint64Var(&xMax, "x-max", 0, "largest viable value of x (defaults to 2^width - 1)")
	cmd.Flags().Uint64Var(&yMax, "y-max", 0, "largest viable value of y (defaults to 2^width - 1)")

	return cmd
}

const (
	varX = polysat.Var(1)
	varY = polysat.Var(2)
)

func run(width uint, xVal, yVal, xMax, yMax uint64) error {
	man := poly.NewManager(width)
	maxVal := new(big.Int).Sub(man.Bound(), big.NewInt(1))
	if xMax == 0 {
		xMax = maxVal.Uint64()
	}
	if yMax == 0 {
		yMax = maxVal.Uint64()
	}
	if xVal > xMax || yVal > yMax {
		return fmt.Errorf("current values (%d, %d) exceed their bounds (%d, %d)", xVal, yVal, xMax, yMax)
	}
	product := new(big.Int).Mul(new(big.Int).SetUint64(xVal), new(big.Int).SetUint64(yVal))
	if product.Cmp(man.Bound()) >= 0 {
		return fmt.Errorf("%d * %d already overflows 2^%d", xVal, yVal, width)
	}

	x, y := man.Var(varX), man.Var(varY)

	trail := solver.NewTrail(man)
	trail.AssignUint64(varX, xVal)
	trail.AssignUint64(varY, yVal)

	viable := solver.NewViableStore(man)
	viable.RestrictMax(varX, new(big.Int).SetUint64(xMax), constraint.Ule(x, man.Uint64Val(xMax)))
	viable.RestrictMax(varY, new(big.Int).SetUint64(yMax), constraint.Ule(y, man.Uint64Val(yMax)))

	saturator, err := solver.NewSaturator(solver.WithTrail(trail), solver.WithViable(viable))
	if err != nil {
		return err
	}

	fmt.Printf("premises for %s*%s < 2^%d:\n", x, y, width)
	for _, c := range saturator.OmegaPremises(x, y) {
		fmt.Printf("- %s\n", c)
	}

	return nil
}
