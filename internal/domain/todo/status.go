package todo

import (
	"database/sql/driver"
	"fmt"
)

// Status is the lifecycle stage of a todo. Any defined status may follow any
// other; only membership is validated.
type Status int

const (
	// StatusNew: created, work has not started.
	StatusNew Status = iota
	// StatusInProgress: being worked on.
	StatusInProgress
	// StatusCodeReview: implementation done, under peer review.
	StatusCodeReview
	// StatusTesting: being verified by QA or automated tests.
	StatusTesting
	// StatusDone: meets the definition of done.
	StatusDone
)

var statusNames = []string{"New", "InProgress", "CodeReview", "Testing", "Done"}

// Statuses lists every defined status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusNew, StatusInProgress, StatusCodeReview, StatusTesting, StatusDone}
}

func (s Status) IsDefined() bool { return s >= StatusNew && s <= StatusDone }

func (s Status) String() string {
	if !s.IsDefined() {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// ParseStatus accepts a status name (case-insensitive) or its number.
func ParseStatus(raw string) (Status, error) {
	n, err := parseEnum(raw, statusNames, int(StatusNew))
	if err != nil {
		return 0, fmt.Errorf("todo: parse status: %w", err)
	}
	return Status(n), nil
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.IsDefined() {
		return nil, fmt.Errorf("todo: undefined status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s *Status) UnmarshalJSON(data []byte) error {
	n, err := unmarshalEnumJSON(data, statusNames, int(StatusNew))
	if err != nil {
		return fmt.Errorf("todo: decode status: %w", err)
	}
	*s = Status(n)
	return nil
}

// Value stores the status name.
func (s Status) Value() (driver.Value, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

func (s *Status) Scan(src any) error {
	raw, err := scanEnumText(src)
	if err != nil {
		return fmt.Errorf("todo: scan status: %w", err)
	}
	return s.UnmarshalText([]byte(raw))
}
