package types

import "errors"

// Config locates a project's storage for Backend.Attach.
type Config struct {
	// DataDir is the .yo directory holding the entry log and the snapshot.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Config validation errors.
var (
	ErrDataDirEmpty = errors.New("data directory must not be empty")
)

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}
