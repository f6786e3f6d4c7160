package util

import (
	"strconv"
	"strings"

	"github.com/kbukum/lazykit/errors"
)

// Digits returns the number of decimal digits in v, ignoring the sign.
// Zero has one digit.
func Digits(v int64) int {
	if v == 0 {
		return 1
	}
	n := 0
	for v != 0 {
		v /= 10
		n++
	}
	return n
}

// FormatInt writes v zero-padded to at least width digits. A negative
// sign is written before the padding.
func FormatInt(v int64, width int) string {
	digits := strconv.FormatUint(absInt(v), 10)
	if pad := width - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	if v < 0 {
		return "-" + digits
	}
	return digits
}

// FormatFloat writes v with exactly precision fractional digits.
func FormatFloat(v float64, precision int) (string, error) {
	if precision < 0 {
		return "", errors.InvalidArgument("precision", "cannot be negative")
	}
	return strconv.FormatFloat(v, 'f', precision, 64), nil
}

func absInt(v int64) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}
