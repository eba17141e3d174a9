package domain

// InvalidPointError reports coordinate input that cannot normalize to a
// canonical Point. Fatal to the call, never retried.
type InvalidPointError struct {
	Reason string
}

func (e *InvalidPointError) Error() string {
	return "invalid point: " + e.Reason
}

// InvalidInputError reports a request shape the engine cannot work with,
// such as a point collection smaller than the operation requires.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}
