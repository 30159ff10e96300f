package memutils

import (
	"unsafe"

	cerrors "github.com/cockroachdb/errors"
)

type Number interface {
	~int | ~uint
}

// DefaultAlignment is the alignment used by memory resources when a caller passes an alignment of 0
const DefaultAlignment uint = uint(unsafe.Sizeof(uintptr(0)))

func CheckPow2[T Number](number T, name string) error {
	if number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// NormalizeAlignment validates an alignment request and replaces 0 with DefaultAlignment
func NormalizeAlignment(alignment uint) (uint, error) {
	if alignment == 0 {
		return DefaultAlignment, nil
	}

	err := CheckPow2(alignment, "alignment")
	if err != nil {
		return 0, err
	}
	return alignment, nil
}

func AlignUp(value int, alignment uint) int {
	return (value + int(alignment) - 1) & int(^(alignment - 1))
}

// AlignAddress rounds an address up to the next multiple of alignment, which must be a power of two
func AlignAddress(address uintptr, alignment uint) uintptr {
	mask := uintptr(alignment) - 1
	return (address + mask) &^ mask
}
