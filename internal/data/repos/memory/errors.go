package memory

import (
	"errors"
	"fmt"
)

var (
	errMissingID   = errors.New("memory repo: id required")
	errDuplicateID = errors.New("memory repo: duplicate id")
)

func unsupported(col string, val interface{}) error {
	return fmt.Errorf("memory repo: unsupported update %s=%T", col, val)
}
