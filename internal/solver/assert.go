package solver

import "fmt"

// invariant aborts on violated internal consistency conditions.
// A failure here means a matcher or the bisection produced a state it
// promised it could not; an unsound lemma must never be emitted
// silently.
func invariant(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("solver: invariant violation: "+format, args...))
	}
}
