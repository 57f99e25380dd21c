package flags

// ParseError reports an argument vector that does not fit the schema. The
// message names the offending token.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
