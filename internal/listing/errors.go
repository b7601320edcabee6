package listing

import "errors"

// ErrInvalidArgument is returned for a negative window offset or count
var ErrInvalidArgument = errors.New("invalid argument")
