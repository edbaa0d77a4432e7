package todo

import (
	"unicode/utf8"

	"github.com/kovalchuka569/taskflow/internal/pkg/result"
)

// DescriptionMaxLength is the longest accepted description, in characters.
const DescriptionMaxLength = 2500

// Description is free text of at most DescriptionMaxLength characters. The
// empty description is valid.
type Description struct {
	value string
}

func NewDescription(raw string) result.Of[Description] {
	if utf8.RuneCountInString(raw) > DescriptionMaxLength {
		return result.Fail[Description](ErrDescriptionIsTooLong)
	}
	return result.Ok(Description{value: raw})
}

func (d Description) String() string { return d.value }
