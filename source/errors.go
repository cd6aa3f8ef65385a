package source

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable = errors.New("source unavailable")
	ErrEmptySource = fmt.Errorf("%w: empty source", ErrUnavailable)
)
