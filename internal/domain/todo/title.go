package todo

import (
	"strings"
	"unicode/utf8"

	"github.com/kovalchuka569/taskflow/internal/pkg/result"
)

// TitleMaxLength is the longest accepted title, in characters.
const TitleMaxLength = 255

// Title is a non-blank todo title of at most TitleMaxLength characters.
type Title struct {
	value string
}

func NewTitle(raw string) result.Of[Title] {
	if strings.TrimSpace(raw) == "" {
		return result.Fail[Title](ErrTitleCannotBeEmpty)
	}
	if utf8.RuneCountInString(raw) > TitleMaxLength {
		return result.Fail[Title](ErrTitleIsTooLong)
	}
	return result.Ok(Title{value: raw})
}

func (t Title) String() string { return t.value }
