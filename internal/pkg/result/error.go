// Package result provides the outcome values returned by every fallible
// domain and application operation.
//
// Expected failures (validation, not-found, persistence) travel as data inside
// a Result. Panics are reserved for caller contract violations such as reading
// the value of a failed Of.
package result

import "strings"

// Error is a structured, comparable failure description. Code is a
// dot-namespaced taxonomy key such as "TodoTitle.IsTooLong".
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// None is the "no error" sentinel. It is never part of a failure list.
var None = Error{}

// DatabaseUnexpectedError is the only persistence failure callers ever see.
var DatabaseUnexpectedError = NewError("Database.UnexpectedError", "Database unexpected error.")

func NewError(code, description string) Error {
	return Error{Code: strings.TrimSpace(code), Description: strings.TrimSpace(description)}
}

func (e Error) IsNone() bool { return e == None }

func (e Error) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return e.Code + ": " + e.Description
}
