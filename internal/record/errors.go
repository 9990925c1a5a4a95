package record

import "fmt"

// MalformedEdgeError is returned when a usage or parentage line cannot be
// parsed.
type MalformedEdgeError struct {
	Kind   Kind
	Reason string
}

func (e *MalformedEdgeError) Error() string {
	return fmt.Sprintf("malformed %s edge: %s", e.Kind, e.Reason)
}

// MalformedRecordError is returned when a creature line has the wrong number
// of tokens or a numeric field that does not parse.
type MalformedRecordError struct {
	// Tokens is the number of tokens found on the line.
	Tokens int
	// Field and Value are set when a single field failed to parse.
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed creature record: %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("malformed creature record: %s", e.Reason)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
