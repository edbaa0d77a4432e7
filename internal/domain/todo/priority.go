package todo

import (
	"database/sql/driver"
	"fmt"
)

// Priority ranks the urgency of a todo.
type Priority int

const (
	// PriorityLow: minor, can be deferred.
	PriorityLow Priority = iota + 1
	// PriorityMedium: routine work.
	PriorityMedium
	// PriorityHigh: affects project goals or milestones.
	PriorityHigh
	// PriorityCritical: blockers and production bugs.
	PriorityCritical
)

var priorityNames = []string{"Low", "Medium", "High", "Critical"}

func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

func (p Priority) IsDefined() bool { return p >= PriorityLow && p <= PriorityCritical }

func (p Priority) String() string {
	if !p.IsDefined() {
		return fmt.Sprintf("Priority(%d)", int(p))
	}
	return priorityNames[p-PriorityLow]
}

// ParsePriority accepts a priority name (case-insensitive) or its number.
func ParsePriority(raw string) (Priority, error) {
	n, err := parseEnum(raw, priorityNames, int(PriorityLow))
	if err != nil {
		return 0, fmt.Errorf("todo: parse priority: %w", err)
	}
	return Priority(n), nil
}

func (p Priority) MarshalText() ([]byte, error) {
	if !p.IsDefined() {
		return nil, fmt.Errorf("todo: undefined priority %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(text []byte) error {
	v, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	n, err := unmarshalEnumJSON(data, priorityNames, int(PriorityLow))
	if err != nil {
		return fmt.Errorf("todo: decode priority: %w", err)
	}
	*p = Priority(n)
	return nil
}

// Value stores the priority name.
func (p Priority) Value() (driver.Value, error) {
	text, err := p.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

func (p *Priority) Scan(src any) error {
	raw, err := scanEnumText(src)
	if err != nil {
		return fmt.Errorf("todo: scan priority: %w", err)
	}
	return p.UnmarshalText([]byte(raw))
}
