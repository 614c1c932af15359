package solver

import (
	"context"
	"math/big"

	"github.com/go-polysat/polysat/internal/solver"
	"github.com/go-polysat/polysat/pkg/polysat"
	"github.com/go-polysat/polysat/pkg/polysat/constraint"
	"github.com/go-polysat/polysat/pkg/polysat/poly"
)

// ConflictSource supplies one conflict episode: the polynomial ring it
// lives in, the partial assignment the conflict arose under, and the
// constraints found jointly unsatisfiable.
type ConflictSource interface {
	Manager() *poly.Manager
	Assignment(ctx context.Context) (map[polysat.Var]*big.Int, error)
	Conflict(ctx context.Context) ([]constraint.Constraint, error)
}

// Step is one applied inference, as recorded during saturation.
type Step struct {
	Rule     string
	Var      polysat.Var
	Premises []constraint.Constraint
	Derived  constraint.Constraint
	Side     []constraint.Constraint
}

// Resolution is returned by Saturation when the inference engine ran
// to completion over the conflict. A resolution without a lemma is
// still a valid outcome: no rule matched the core.
type Resolution struct {
	saturated   bool
	constraints []constraint.Constraint
	steps       []Step
}

// Saturated reports whether any inference rule fired.
func (r *Resolution) Saturated() bool {
	return r.saturated
}

// Constraints returns the conflict core after saturation, in core
// order. Without a fired rule this is the input conflict unchanged.
func (r *Resolution) Constraints() []constraint.Constraint {
	return r.constraints
}

// Steps returns the recorded inferences. Note: these are only present
// if the KeepSteps option is passed to the Saturate call that produced
// the resolution.
func (r *Resolution) Steps() []Step {
	return r.steps
}

type resolutionOptions struct {
	keepSteps bool
}

func (r *resolutionOptions) apply(options ...Option) *resolutionOptions {
	for _, applyOption := range options {
		applyOption(r)
	}
	return r
}

func defaultResolutionOptions() *resolutionOptions {
	return &resolutionOptions{
		keepSteps: false,
	}
}

type Option func(resolutionOptions *resolutionOptions)

// KeepSteps is a Saturate option that instructs the engine to record
// every applied inference in the Resolution it produces.
func KeepSteps() Option {
	return func(resolutionOptions *resolutionOptions) {
		resolutionOptions.keepSteps = true
	}
}

// Saturation drives the inference rules over a conflict. One Saturate
// call derives at most one lemma, mirroring a single step of conflict
// resolution; callers resolve, re-seed the source and call again for
// more.
type Saturation struct {
	source ConflictSource
}

func NewSaturation(source ConflictSource) *Saturation {
	return &Saturation{
		source: source,
	}
}

// Saturate tries the inference rules on the conflict for each variable
// in vars, in order, stopping at the first variable whose rules
// derive a lemma.
func (s Saturation) Saturate(ctx context.Context, vars []polysat.Var, options ...Option) (*Resolution, error) {
	resolutionOpts := defaultResolutionOptions().apply(options...)

	conflict, err := s.source.Conflict(ctx)
	if err != nil {
		return nil, err
	}
	assignment, err := s.source.Assignment(ctx)
	if err != nil {
		return nil, err
	}

	trail := solver.NewTrail(s.source.Manager())
	for v, val := range assignment {
		trail.Assign(v, val)
	}

	recorder := &stepRecorder{}
	saturator, err := solver.NewSaturator(solver.WithTrail(trail), solver.WithTracer(recorder))
	if err != nil {
		return nil, err
	}

	core := solver.NewCore(conflict...)
	resolution := &Resolution{}
	for _, v := range vars {
		if saturator.Perform(v, core) {
			resolution.saturated = true
			break
		}
	}

	resolution.constraints = core.Constraints()
	if resolutionOpts.keepSteps {
		resolution.steps = recorder.steps
	}
	return resolution, nil
}

type stepRecorder struct {
	steps []Step
}

func (r *stepRecorder) Trace(step solver.InferenceStep) {
	r.steps = append(r.steps, Step{
		Rule:     step.Rule,
		Var:      step.Var,
		Premises: step.Premises,
		Derived:  step.Derived,
		Side:     step.Side,
	})
}
