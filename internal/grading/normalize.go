package grading

import "strconv"

// Normalize converts a raw field to a mark. The value counts only when it is
// non-empty and made entirely of ASCII decimal digits; anything else,
// including signs, decimal points, white space and digit strings too large
// for an int, is zero.
func Normalize(raw string) int {
	n, ok := parseMark(raw)
	if !ok {
		return 0
	}
	return n
}

// IsClean reports whether Normalize would keep raw rather than coerce it to zero.
func IsClean(raw string) bool {
	_, ok := parseMark(raw)
	return ok
}

func parseMark(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
