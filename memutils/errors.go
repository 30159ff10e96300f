package memutils

import "github.com/pkg/errors"

// PowerOfTwoError is returned from CheckPow2 and NormalizeAlignment when an alignment or size
// that must be a power of two is not one
var PowerOfTwoError error = errors.New("number must be a power of two")
