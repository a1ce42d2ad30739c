package domain

// Outcome holds either a successful value of type T or a failure of type E,
// never both. Use cases return an Outcome for expected failures; defects are
// surfaced as panics or plain errors and handled at the HTTP boundary.
type Outcome[T any, E error] struct {
	ok    bool
	set   bool
	value T
	err   E
}

// Success wraps v as a successful Outcome.
func Success[T any, E error](v T) Outcome[T, E] {
	return Outcome[T, E]{ok: true, set: true, value: v}
}

// Failure wraps e as a failed Outcome.
func Failure[T any, E error](e E) Outcome[T, E] {
	return Outcome[T, E]{set: true, err: e}
}

// IsSuccess reports whether the outcome carries a value.
func (o Outcome[T, E]) IsSuccess() bool {
	return o.set && o.ok
}

// Value returns the success payload. The boolean is false for failures.
func (o Outcome[T, E]) Value() (T, bool) {
	if !o.IsSuccess() {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Err returns the failure payload. The boolean is false for successes.
func (o Outcome[T, E]) Err() (E, bool) {
	if !o.set || o.ok {
		var zero E
		return zero, false
	}
	return o.err, true
}

// Match calls exactly one of onSuccess or onFailure and returns its result.
// It panics on the zero Outcome, which is never produced by Success or Failure.
func Match[T any, E error, R any](o Outcome[T, E], onSuccess func(T) R, onFailure func(E) R) R {
	if !o.set {
		panic("domain: Match called on an uninitialized Outcome")
	}
	if o.ok {
		return onSuccess(o.value)
	}
	return onFailure(o.err)
}
