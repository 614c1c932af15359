package solver

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-polysat/polysat/pkg/polysat/constraint"
	"github.com/go-polysat/polysat/pkg/polysat/poly"
)

func TestLoggingTracer(t *testing.T) {
	man := poly.NewManager(4)
	x := man.Var(v1)

	var buf strings.Builder
	tracer := LoggingTracer{Writer: &buf}
	tracer.Trace(InferenceStep{
		Rule:     "ugt_x",
		Var:      v1,
		Premises: []constraint.Constraint{constraint.Ule(x.MulConst(big.NewInt(5)), x.MulConst(big.NewInt(2)))},
		Derived:  constraint.Ule(man.Uint64Val(5), man.Uint64Val(2)),
		Side:     []constraint.Constraint{constraint.Eq(x).Not()},
	})

	assert.Equal(t, `---
Rule ugt_x on v1
Premises:
- 5*v1 <= 2*v1
Derived:
- 5 <= 2
Side conditions:
- ~(v1 == 0)
`, buf.String())
}
