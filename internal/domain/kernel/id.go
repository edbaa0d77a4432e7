// Package kernel holds the building blocks shared by every domain package:
// strongly-typed identifiers and the unit-of-work contract.
package kernel

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kovalchuka569/taskflow/internal/pkg/result"
)

// ErrIDCannotBeEmpty is returned when an identifier is built from uuid.Nil.
var ErrIDCannotBeEmpty = result.NewError("StronglyTypedId.CannotBeEmpty", "StronglyTypedId cannot be empty.")

// ErrIDIsMalformed is returned when a raw string is not a UUID.
var ErrIDIsMalformed = result.NewError("StronglyTypedId.IsMalformed", "StronglyTypedId is not a valid UUID.")

// Kind distinguishes identifier families. Each family declares an empty
// struct implementing Kind; ID[TodoKind] and ID[ProjectKind] are then
// distinct types even when they wrap the same UUID.
type Kind interface {
	KindName() string
}

// ID is a strongly-typed wrapper around a UUID. The zero value is not a
// valid identifier; obtain one through New, FromUUID or Parse.
type ID[K Kind] struct {
	value uuid.UUID
}

// New returns a fresh random identifier. It cannot collide with uuid.Nil.
func New[K Kind]() ID[K] {
	return ID[K]{value: uuid.New()}
}

// FromUUID validates a raw UUID.
func FromUUID[K Kind](value uuid.UUID) result.Of[ID[K]] {
	if value == uuid.Nil {
		return result.Fail[ID[K]](ErrIDCannotBeEmpty)
	}
	return result.Ok(ID[K]{value: value})
}

// Parse validates a textual UUID.
func Parse[K Kind](raw string) result.Of[ID[K]] {
	u, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return result.Fail[ID[K]](ErrIDIsMalformed)
	}
	return FromUUID[K](u)
}

func (id ID[K]) UUID() uuid.UUID { return id.value }
func (id ID[K]) IsZero() bool    { return id.value == uuid.Nil }
func (id ID[K]) String() string  { return id.value.String() }

// Kind returns the family name, e.g. "TodoId".
func (id ID[K]) Kind() string {
	var k K
	return k.KindName()
}

// Equals reports whether other is an identifier of the same kind wrapping
// the same value. Identifiers of different kinds are never equal.
func (id ID[K]) Equals(other any) bool {
	o, ok := other.(ID[K])
	if !ok {
		return false
	}
	return o.value == id.value
}

func (id ID[K]) GoString() string {
	return fmt.Sprintf("%s(%s)", id.Kind(), id.value)
}
