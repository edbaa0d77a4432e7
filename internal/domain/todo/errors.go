package todo

import "github.com/kovalchuka569/taskflow/internal/pkg/result"

// Title
var (
	ErrTitleIsTooLong                   = result.NewError("TodoTitle.IsTooLong", "Todo title is too long.")
	ErrTitleCannotBeEmpty               = result.NewError("TodoTitle.CannotBeEmpty", "Todo title cannot be empty.")
	ErrTitleCanOnlyBeChangedInNewStatus = result.NewError("TodoTitle.CanOnlyBeChangedInNewStatus", "Todo title can only be changed in the new status.")
)

// Description
var ErrDescriptionIsTooLong = result.NewError("TodoDescription.IsTooLong", "Todo description is too long.")

// Public id
var (
	ErrPublicIDIsTooLong                 = result.NewError("PublicId.IsTooLong", "Public ID is too long.")
	ErrPublicIDIsTooShort                = result.NewError("PublicId.IsTooShort", "Public ID is too short.")
	ErrPublicIDContainsInvalidCharacters = result.NewError("PublicId.ContainsInvalidCharacters", "Public ID contains invalid characters.")
)

// Enums
var (
	ErrStatusIsInvalid   = result.NewError("TodoStatus.IsInvalid", "The provided status is not valid.")
	ErrPriorityIsInvalid = result.NewError("TodoPriority.IsInvalid", "The provided priority is not valid.")
)

// ErrNotFound is reported when a todo is absent or outside the requested project.
var ErrNotFound = result.NewError("Todo.NotFound", "Todo not found")
