// Package errors provides the error taxonomy shared by lazykit packages.
//
// Every failure is an *AppError carrying a machine-readable ErrorCode. Two
// codes belong to the optional-value core: NULL_ARGUMENT is returned when a
// required value or function is missing, and EMPTY_VALUE when a caller asks
// to unwrap an absent value into an error. The utility packages add
// INDEX_OUT_OF_RANGE and INVALID_ARGUMENT; callers receive them unchanged.
//
// Sentinels match by code, so wrapped errors compare with the standard
// library helpers:
//
//	if errors.Is(err, lkerrors.ErrNullArgument) { ... }
package errors
