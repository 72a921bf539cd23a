package engine

import "fmt"

// GenerationError reports which step of generating Path failed.
type GenerationError struct {
	Path    string
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

const (
	msgInvalidTable = "invalid table"
	msgTemplate     = "template error"
	msgPostprocess  = "post-processing failed"
	msgWrite        = "write failed"
)
