package catalog

import "fmt"

// LoadError represents a failure while building the catalog. It carries the
// file and 1-based line number of the offending input; Line is 0 when the
// file itself could not be opened or read.
type LoadError struct {
	File string
	Line int
	Raw  string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("loading catalog from %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("loading catalog from %s:%d: %v (line: %q)", e.File, e.Line, e.Err, e.Raw)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
