package utils

// Truncate cuts s to maxLen runes and appends "..." when it was longer.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
