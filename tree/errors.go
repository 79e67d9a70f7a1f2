package tree

import (
	"errors"
	"fmt"
)

var ErrNoRoot = errors.New("intent tree has no root")

// DuplicateKeyError is returned when two siblings carry the same key.
type DuplicateKeyError struct {
	Parent ID
	Key    string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q under %s", e.Key, e.Parent)
}
