package result

import (
	"errors"
	"testing"
)

var (
	errA = NewError("A.Failed", "a failed")
	errB = NewError("B.Failed", "b failed")
)

func TestFailureWithNoneCollapsesToSuccess(t *testing.T) {
	if r := Failure(None); !r.IsSuccess() {
		t.Fatalf("Failure(None) should be success, got %v", r.Errors())
	}
	if r := FailureOf(nil); !r.IsSuccess() {
		t.Fatalf("FailureOf(nil) should be success")
	}
	if r := FailureOf([]Error{None}); !r.IsSuccess() {
		t.Fatalf("FailureOf([None]) should be success")
	}
}

func TestGenericFailureRejectsEmpty(t *testing.T) {
	assertPanics(t, "Fail(None)", func() { _ = Fail[int](None) })
	assertPanics(t, "FailMany(nil)", func() { _ = FailMany[int](nil) })
	assertPanics(t, "FailMany([None])", func() { _ = FailMany[int]([]Error{None}) })
}

func TestValueOnFailurePanics(t *testing.T) {
	r := Fail[string](errA)
	assertPanics(t, "Value", func() { _ = r.Value() })
}

func TestCombineKeepsOrderAndDuplicates(t *testing.T) {
	r := Combine(Failure(errA), Success(), Fail[int](errB), Failure(errA))
	got := r.Errors()
	want := []Error{errA, errB, errA}
	if len(got) != len(want) {
		t.Fatalf("errors: want=%v got=%v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("errors[%d]: want=%v got=%v", i, want[i], got[i])
		}
	}
}

func TestCombineSuccessCases(t *testing.T) {
	if !Combine().IsSuccess() {
		t.Fatalf("Combine() should be success")
	}
	if !Combine(Success(), Ok(1)).IsSuccess() {
		t.Fatalf("Combine of successes should be success")
	}
}

func TestCombineOfPicksFirstValue(t *testing.T) {
	r := CombineOf(Ok("first"), Ok("second"))
	if r.Value() != "first" {
		t.Fatalf("value: want=first got=%s", r.Value())
	}
	if v := CombineOf[int]().Value(); v != 0 {
		t.Fatalf("empty CombineOf value: want=0 got=%d", v)
	}
	failed := CombineOf(Ok(1), Fail[int](errB))
	if failed.IsSuccess() || failed.Errors()[0] != errB {
		t.Fatalf("expected failure with errB, got %v", failed.Errors())
	}
}

func TestMatch(t *testing.T) {
	got := MatchOf(Ok(2), func(v int) string { return "ok" }, func([]Error) string { return "fail" })
	if got != "ok" {
		t.Fatalf("MatchOf success: got %s", got)
	}
	got = Match(Failure(errA), func() string { return "ok" }, func(errs []Error) string { return errs[0].Code })
	if got != errA.Code {
		t.Fatalf("Match failure: got %s", got)
	}
}

func TestErrorsAreCopied(t *testing.T) {
	r := Failure(errA)
	errs := r.Errors()
	errs[0] = errB
	if r.Errors()[0] != errA {
		t.Fatalf("result mutated through Errors()")
	}
}

func TestErrExposesEveryError(t *testing.T) {
	err := Combine(Failure(errA), Failure(errB)).Err()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected joined error to contain both, got %v", err)
	}
	if Success().Err() != nil {
		t.Fatalf("success Err should be nil")
	}
}

func TestErrorEquality(t *testing.T) {
	if NewError("X.Y", "d") != NewError("X.Y", "d") {
		t.Fatalf("equal code+description should be equal")
	}
	if NewError("X.Y", "d") == NewError("X.Y", "other") {
		t.Fatalf("different descriptions should differ")
	}
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}
