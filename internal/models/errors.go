package models

// ValidationError marks malformed, irrecoverable configuration such as
// a segmenter overlap that is not smaller than the target chunk size.
// It is fatal: no fallback is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// IOError marks a failed read or write of one lesson's files. It fails
// that lesson only; the batch moves on to the next file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}
