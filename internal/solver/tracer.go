package solver

import (
	"fmt"
	"io"

	"github.com/go-polysat/polysat/pkg/polysat"
	"github.com/go-polysat/polysat/pkg/polysat/constraint"
)

// InferenceStep describes one successful rule application: the
// critical premises it consumed, the lemma it derived and the side
// conditions that accompany it.
type InferenceStep struct {
	Rule     string
	Var      polysat.Var
	Premises []constraint.Constraint
	Derived  constraint.Constraint
	Side     []constraint.Constraint
}

type Tracer interface {
	Trace(step InferenceStep)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ InferenceStep) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(step InferenceStep) {
	fmt.Fprintf(t.Writer, "---\nRule %s on %s\nPremises:\n", step.Rule, step.Var)
	for _, c := range step.Premises {
		fmt.Fprintf(t.Writer, "- %s\n", c)
	}
	fmt.Fprintf(t.Writer, "Derived:\n- %s\n", step.Derived)
	fmt.Fprintf(t.Writer, "Side conditions:\n")
	for _, c := range step.Side {
		fmt.Fprintf(t.Writer, "- %s\n", c)
	}
}
