package util

import "unicode"

// Trim removes leading and trailing whitespace from s. With symbols it
// removes those runes instead. The result shares s's backing array.
func Trim(s []rune, symbols ...rune) []rune {
	return TrimEnd(TrimStart(s, symbols...), symbols...)
}

// TrimStart is Trim for the leading side only.
func TrimStart(s []rune, symbols ...rune) []rune {
	match := matcher(symbols)
	i := 0
	for i < len(s) && match(s[i]) {
		i++
	}
	return s[i:]
}

// TrimEnd is Trim for the trailing side only.
func TrimEnd(s []rune, symbols ...rune) []rune {
	match := matcher(symbols)
	i := len(s)
	for i > 0 && match(s[i-1]) {
		i--
	}
	return s[:i]
}

func matcher(symbols []rune) func(rune) bool {
	if len(symbols) == 0 {
		return unicode.IsSpace
	}
	return func(r rune) bool {
		for _, s := range symbols {
			if r == s {
				return true
			}
		}
		return false
	}
}
