package domain

import "fmt"

// DefaultErrorMessage is reported when a failure carries no message.
const DefaultErrorMessage = "Something went wrong"

// Result is the outcome of a call into a collaborator. Exactly one of Value
// or Err is meaningful: Err is empty on success.
type Result[T any] struct {
	Value T
	Err   string
}

// Ok reports whether the call succeeded.
func (r Result[T]) Ok() bool {
	return r.Err == ""
}

// Capture runs fn and converts its error, or a panic, into a Result.
func Capture[T any](fn func() (T, error)) (res Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			var zero T
			res = Result[T]{Value: zero, Err: messageOf(fmt.Sprint(p))}
		}
	}()
	value, err := fn()
	if err != nil {
		var zero T
		return Result[T]{Value: zero, Err: messageOf(err.Error())}
	}
	return Result[T]{Value: value}
}

func messageOf(msg string) string {
	if msg == "" {
		return DefaultErrorMessage
	}
	return msg
}
