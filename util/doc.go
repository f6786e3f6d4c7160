// Package util provides small generic helpers used across lazykit.
//
// Index and Range address sequences from either end:
//
//	r := util.NewRange(2, -1) // [2..^1]
//	s, err := util.Slice(items, r)
//
// It also has rune trimming, pooled string building, fixed-width number
// formatting, tuples and pointer helpers.
package util
