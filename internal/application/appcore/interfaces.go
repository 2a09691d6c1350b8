package appcore

import "context"

// UseCase is the contract every command/query handler implements.
// TCommand is the input value object, TResult the output.
type UseCase[TCommand any, TResult any] interface {
	// Execute runs the use case with the given command or query.
	Execute(ctx context.Context, cmd TCommand) (TResult, error)
}

// Command is the marker interface for state-changing intents.
type Command interface {
	CommandName() string
}

// Query is the marker interface for read-only intents.
type Query interface {
	QueryName() string
}

// Validator validates commands before execution.
type Validator[T any] interface {
	// Validate checks the command and returns a ValidationError on the
	// first failing field.
	Validate(cmd T) error
}

// Result is the outcome of an operation producing a value.
type Result[T any] struct {
	Value T
	Error error
}

// IsSuccess reports whether the operation succeeded.
func (r Result[T]) IsSuccess() bool {
	return r.Error == nil
}

// IsFailure reports whether the operation failed.
func (r Result[T]) IsFailure() bool {
	return r.Error != nil
}

// CommandOutcome is the outcome of a command that produces no value:
// a success flag plus, on expected failure, a human-readable reason.
// Expected absence of the target (already-revoked token, missing
// record) is a failed outcome, not an error.
type CommandOutcome struct {
	Success       bool
	FailureReason string
}

// Succeed returns a successful outcome.
func Succeed() CommandOutcome {
	return CommandOutcome{Success: true}
}

// Fail returns a failed outcome with a reason.
func Fail(reason string) CommandOutcome {
	return CommandOutcome{Success: false, FailureReason: reason}
}
