// Package text provides utilities for preparing prompt text.
// Length limits operate on Unicode characters (runes) rather than bytes so
// that Chinese and other multi-byte text is never cut mid-character.
package text

// CountRunes counts the number of Unicode characters (runes) in the given text.
//
// Examples:
//
//	CountRunes("hello")          // returns 5 (ASCII text)
//	CountRunes("你好")            // returns 2 (Chinese text)
//	CountRunes("hello世界")       // returns 7 (mixed text)
//	CountRunes("")               // returns 0 (empty string)
func CountRunes(text string) int {
	return len([]rune(text))
}

// Truncate returns text cut to at most limit runes, with "..." appended when
// anything was removed. Multi-byte characters are never split.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
