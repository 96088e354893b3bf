package textpos

import "unicode/utf8"

// runeOffsets returns the byte offset of every code point in text followed
// by len(text), so text[offsets[i]:offsets[j]] is the code point range
// [i, j). An invalid UTF-8 byte counts as one code point, the same as in
// utf8.RuneCountInString, and is sliced out unchanged.
func runeOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for i := 0; i < len(text); {
		offsets = append(offsets, i)
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return append(offsets, len(text))
}
