package todo

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kovalchuka569/taskflow/internal/pkg/result"
)

// fakeClock replaces the aggregate clock for the duration of a test.
func fakeClock(t *testing.T, start time.Time) func(time.Duration) {
	t.Helper()
	current := start
	prev := now
	now = func() time.Time { return current }
	t.Cleanup(func() { now = prev })
	return func(d time.Duration) { current = current.Add(d) }
}

func mustCreate(t *testing.T, title string) *Todo {
	t.Helper()
	r := Create(NewProjectID(), NewAuthorID(), title, "", nil, time.Time{}, time.Time{})
	if r.IsFailure() {
		t.Fatalf("Create: %v", r.Errors())
	}
	return r.Value()
}

func priorityPtr(p Priority) *Priority { return &p }

func TestCreateDefaults(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	fakeClock(t, start)

	td := mustCreate(t, "Write docs")
	if td.Status() != StatusNew {
		t.Fatalf("status: want=New got=%v", td.Status())
	}
	if td.Priority() != PriorityLow {
		t.Fatalf("priority: want=Low got=%v", td.Priority())
	}
	if !td.CreatedAt().Equal(start) || !td.ChangedAt().Equal(start) {
		t.Fatalf("stamps: want=%v got created=%v changed=%v", start, td.CreatedAt(), td.ChangedAt())
	}
	if td.ID().IsZero() {
		t.Fatalf("id must not be empty")
	}
	if PublicIDFromString(td.PublicID().String()).IsFailure() {
		t.Fatalf("generated public id %q is invalid", td.PublicID())
	}
}

func TestCreateReportsAllValidationErrors(t *testing.T) {
	r := Create(NewProjectID(), NewAuthorID(), "", strings.Repeat("x", DescriptionMaxLength+1), priorityPtr(Priority(9)), time.Time{}, time.Time{})
	if r.IsSuccess() {
		t.Fatalf("expected failure")
	}
	want := []result.Error{ErrTitleCannotBeEmpty, ErrDescriptionIsTooLong, ErrPriorityIsInvalid}
	got := r.Errors()
	if len(got) != len(want) {
		t.Fatalf("errors: want=%v got=%v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("errors[%d]: want=%v got=%v", i, want[i], got[i])
		}
	}
}

func TestCreateWithExplicitPriority(t *testing.T) {
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	r := Create(NewProjectID(), NewAuthorID(), "Ship", "release", priorityPtr(PriorityHigh), due, time.Time{})
	if r.IsFailure() {
		t.Fatalf("Create: %v", r.Errors())
	}
	td := r.Value()
	if td.Priority() != PriorityHigh || !td.DueDate().Equal(due) || td.Description().String() != "release" {
		t.Fatalf("unexpected todo %+v", td.Snapshot())
	}
}

func TestChangeTitleOnlyInNewStatus(t *testing.T) {
	advance := fakeClock(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	td := mustCreate(t, "Draft")

	advance(time.Minute)
	if r := td.ChangeTitle(NewTitle("Final").Value()); r.IsFailure() {
		t.Fatalf("ChangeTitle in New: %v", r.Errors())
	}
	if td.Title().String() != "Final" {
		t.Fatalf("title: want=Final got=%s", td.Title())
	}
	stamp := td.ChangedAt()
	if !stamp.After(td.CreatedAt()) {
		t.Fatalf("ChangedAt should advance on a real change")
	}

	advance(time.Minute)
	td.ChangeStatus(StatusInProgress)
	changedByStatus := td.ChangedAt()

	advance(time.Minute)
	r := td.ChangeTitle(NewTitle("Again").Value())
	if r.IsSuccess() || r.Errors()[0] != ErrTitleCanOnlyBeChangedInNewStatus {
		t.Fatalf("expected status guard, got %v", r.Errors())
	}
	if td.Title().String() != "Final" || !td.ChangedAt().Equal(changedByStatus) {
		t.Fatalf("a rejected change must not mutate the todo")
	}

	// Same title is a no-op even outside New.
	if r := td.ChangeTitle(NewTitle("Final").Value()); r.IsFailure() {
		t.Fatalf("same title should succeed: %v", r.Errors())
	}
	if !td.ChangedAt().Equal(changedByStatus) {
		t.Fatalf("no-op must not touch ChangedAt")
	}
}

func TestNoOpChangesKeepChangedAt(t *testing.T) {
	advance := fakeClock(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	td := mustCreate(t, "Same")
	before := td.ChangedAt()
	advance(time.Hour)

	checks := []struct {
		name string
		fn   func() result.Result
	}{
		{"description", func() result.Result { return td.ChangeDescription(td.Description()) }},
		{"status", func() result.Result { return td.ChangeStatus(td.Status()) }},
		{"priority", func() result.Result { return td.ChangePriority(td.Priority()) }},
		{"title", func() result.Result { return td.ChangeTitle(td.Title()) }},
	}
	for _, c := range checks {
		if r := c.fn(); r.IsFailure() {
			t.Fatalf("%s: %v", c.name, r.Errors())
		}
		if !td.ChangedAt().Equal(before) {
			t.Fatalf("%s: ChangedAt moved on a no-op", c.name)
		}
	}
}

func TestChangeStatusAndPriorityRejectUndefined(t *testing.T) {
	td := mustCreate(t, "Enums")
	if r := td.ChangeStatus(Status(7)); r.IsSuccess() || r.Errors()[0] != ErrStatusIsInvalid {
		t.Fatalf("expected invalid status, got %v", r.Errors())
	}
	if r := td.ChangePriority(Priority(0)); r.IsSuccess() || r.Errors()[0] != ErrPriorityIsInvalid {
		t.Fatalf("expected invalid priority, got %v", r.Errors())
	}
	if td.Status() != StatusNew || td.Priority() != PriorityLow {
		t.Fatalf("rejected changes must not mutate")
	}
}

func TestAnyStatusTransitionIsAllowed(t *testing.T) {
	td := mustCreate(t, "Flow")
	for _, s := range []Status{StatusDone, StatusNew, StatusTesting, StatusInProgress} {
		if r := td.ChangeStatus(s); r.IsFailure() {
			t.Fatalf("transition to %v: %v", s, r.Errors())
		}
		if td.Status() != s {
			t.Fatalf("status: want=%v got=%v", s, td.Status())
		}
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	fakeClock(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	td := mustCreate(t, "Persist me")
	td.ChangeStatus(StatusTesting)

	r := Restore(td.Snapshot())
	if r.IsFailure() {
		t.Fatalf("Restore: %v", r.Errors())
	}
	if r.Value().Snapshot() != td.Snapshot() {
		t.Fatalf("round trip: want=%+v got=%+v", td.Snapshot(), r.Value().Snapshot())
	}
}

func TestRestoreNormalizesStampsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	snap := mustCreate(t, "Zones").Snapshot()
	snap.CreatedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, loc)
	snap.ChangedAt = snap.CreatedAt

	td := Restore(snap).Value()
	if td.CreatedAt().Location() != time.UTC || td.CreatedAt().Hour() != 10 {
		t.Fatalf("CreatedAt not normalized: %v", td.CreatedAt())
	}
}

func TestRestoreRejectsCorruptRows(t *testing.T) {
	snap := Snapshot{
		ID:        uuid.Nil,
		ProjectID: uuid.New(),
		AuthorID:  uuid.New(),
		PublicID:  "short",
		Title:     "",
		Status:    Status(12),
		Priority:  PriorityLow,
	}
	r := Restore(snap)
	if r.IsSuccess() {
		t.Fatalf("expected failure")
	}
	codes := map[string]bool{}
	for _, e := range r.Errors() {
		codes[e.Code] = true
	}
	for _, want := range []string{"StronglyTypedId.CannotBeEmpty", ErrPublicIDIsTooShort.Code, ErrTitleCannotBeEmpty.Code, ErrStatusIsInvalid.Code} {
		if !codes[want] {
			t.Fatalf("missing %s in %v", want, r.Errors())
		}
	}
}

// A todo walks through its whole lifecycle: created, renamed, moved forward
// and finally closed with a higher priority.
func TestTodoLifecycle(t *testing.T) {
	advance := fakeClock(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	td := mustCreate(t, "Fix bug")

	advance(time.Minute)
	td.ChangeTitle(NewTitle("Fix login bug").Value())
	advance(time.Minute)
	td.ChangeStatus(StatusInProgress)
	advance(time.Minute)
	if r := td.ChangeTitle(NewTitle("Rename").Value()); r.IsSuccess() {
		t.Fatalf("rename after start should fail")
	}
	advance(time.Minute)
	td.ChangePriority(PriorityCritical)
	advance(time.Minute)
	td.ChangeStatus(StatusDone)

	if td.Title().String() != "Fix login bug" || td.Status() != StatusDone || td.Priority() != PriorityCritical {
		t.Fatalf("unexpected final state %+v", td.Snapshot())
	}
	if want := td.CreatedAt().Add(5 * time.Minute); !td.ChangedAt().Equal(want) {
		t.Fatalf("ChangedAt: want=%v got=%v", want, td.ChangedAt())
	}
}
