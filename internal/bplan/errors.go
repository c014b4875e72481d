package bplan

import (
	"errors"
	"fmt"
)

// ErrMissingFile is the sentinel wrapped by every missing-input-file
// error. Callers branch with errors.Is(err, ErrMissingFile).
var ErrMissingFile = errors.New("bplan: required input file is missing")

// MissingFileError names the specific file that could not be found.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("bplan: file %q cannot be found", e.Path)
}

func (e *MissingFileError) Unwrap() error { return ErrMissingFile }

func missingFile(path string) error { return &MissingFileError{Path: path} }
