package export

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName   = errors.New("invalid export name")
	ErrNameCollision = errors.New("export name already in use")
)

type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid export name %q: %s", e.Name, e.Reason)
}

func (e *InvalidNameError) Is(target error) bool {
	return target == ErrInvalidName
}

// NameCollisionError reports an existing file or directory that an export
// would have had to overwrite.
type NameCollisionError struct {
	Name string
	Path string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("export name %q collides with existing %s", e.Name, e.Path)
}

func (e *NameCollisionError) Is(target error) bool {
	return target == ErrNameCollision
}
