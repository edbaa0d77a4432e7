package result

import "errors"

// Result is the outcome of an operation without a payload. The zero value is
// a success.
type Result struct {
	errs []Error
}

// Outcome is implemented by Result and Of so both can be combined.
type Outcome interface {
	Errors() []Error
}

func Success() Result { return Result{} }

// Failure returns a failed Result. Passing None yields a success.
func Failure(err Error) Result {
	if err.IsNone() {
		return Success()
	}
	return Result{errs: []Error{err}}
}

// FailureOf returns a failed Result holding errs. An empty list yields a
// success. None entries are dropped.
func FailureOf(errs []Error) Result {
	cleaned := withoutNone(errs)
	if len(cleaned) == 0 {
		return Success()
	}
	return Result{errs: cleaned}
}

func (r Result) IsSuccess() bool { return len(r.errs) == 0 }
func (r Result) IsFailure() bool { return !r.IsSuccess() }

// Errors returns a copy of the failure list; nil on success.
func (r Result) Errors() []Error { return cloneErrors(r.errs) }

// Err returns the failure as a Go error, or nil on success.
func (r Result) Err() error { return joinErrors(r.errs) }

// Combine concatenates the errors of every failed outcome in input order.
// Duplicates are kept. No inputs, or only successes, yields a success.
func Combine(outcomes ...Outcome) Result {
	var errs []Error
	for _, o := range outcomes {
		if o == nil {
			continue
		}
		errs = append(errs, o.Errors()...)
	}
	return FailureOf(errs)
}

// Match calls onSuccess or onFailure depending on r.
func Match[R any](r Result, onSuccess func() R, onFailure func([]Error) R) R {
	if r.IsSuccess() {
		return onSuccess()
	}
	return onFailure(r.Errors())
}

// Of is the outcome of an operation producing a T.
type Of[T any] struct {
	value T
	errs  []Error
}

func Ok[T any](value T) Of[T] { return Of[T]{value: value} }

// Fail returns a failed Of. It panics on None: a failure must carry a real error.
func Fail[T any](err Error) Of[T] {
	if err.IsNone() {
		panic("result: cannot create a failure result with result.None")
	}
	return Of[T]{errs: []Error{err}}
}

// FailMany returns a failed Of holding errs. It panics when errs contains no
// real error.
func FailMany[T any](errs []Error) Of[T] {
	cleaned := withoutNone(errs)
	if len(cleaned) == 0 {
		panic("result: collection of errors cannot be empty for a failure result")
	}
	return Of[T]{errs: cleaned}
}

func (r Of[T]) IsSuccess() bool { return len(r.errs) == 0 }
func (r Of[T]) IsFailure() bool { return !r.IsSuccess() }
func (r Of[T]) Errors() []Error { return cloneErrors(r.errs) }
func (r Of[T]) Err() error      { return joinErrors(r.errs) }

// Value returns the payload. Calling it on a failure is a programming error
// and panics.
func (r Of[T]) Value() T {
	if r.IsFailure() {
		panic("result: cannot access Value on a failed result; check IsSuccess first")
	}
	return r.value
}

// Result drops the payload.
func (r Of[T]) Result() Result { return Result{errs: r.errs} }

// MatchOf calls onSuccess with the value or onFailure with the errors.
func MatchOf[T, R any](r Of[T], onSuccess func(T) R, onFailure func([]Error) R) R {
	if r.IsSuccess() {
		return onSuccess(r.value)
	}
	return onFailure(r.Errors())
}

// CombineOf concatenates the errors of every failed input. On success it
// returns the value of the first input; with no inputs the zero T.
func CombineOf[T any](results ...Of[T]) Of[T] {
	var errs []Error
	for _, r := range results {
		errs = append(errs, r.errs...)
	}
	if len(errs) > 0 {
		return FailMany[T](errs)
	}
	if len(results) == 0 {
		var zero T
		return Ok(zero)
	}
	return Ok(results[0].value)
}

// Propagate converts a failed outcome into a failed Of[T]. It panics when o
// is a success.
func Propagate[T any](o Outcome) Of[T] {
	return FailMany[T](o.Errors())
}

func withoutNone(errs []Error) []Error {
	if len(errs) == 0 {
		return nil
	}
	out := make([]Error, 0, len(errs))
	for _, e := range errs {
		if e.IsNone() {
			continue
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func cloneErrors(errs []Error) []Error {
	if len(errs) == 0 {
		return nil
	}
	out := make([]Error, len(errs))
	copy(out, errs)
	return out
}

func joinErrors(errs []Error) error {
	if len(errs) == 0 {
		return nil
	}
	joined := make([]error, 0, len(errs))
	for _, e := range errs {
		joined = append(joined, e)
	}
	return errors.Join(joined...)
}
