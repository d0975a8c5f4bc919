package config

import "strings"

// CleanFileName makes name usable as a single path element: separators and
// characters reserved by the platform are dropped, leading dots trimmed.
func CleanFileName(in string) string {
	out := strings.TrimLeft(strings.Map(func(sym rune) rune {
		if sym == 0 || strings.ContainsRune(reservedChars, sym) {
			return -1
		}
		return sym
	}, in), ".")
	if len(out) == 0 {
		out = "_bad_file_name_"
	}
	return out
}
