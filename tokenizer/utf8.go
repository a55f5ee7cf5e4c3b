package tokenizer

import "unicode/utf8"

// fullRuneAvailable reports whether buf[pos:] contains a complete UTF-8
// sequence (as opposed to a multi-byte sequence truncated by the end of
// the chunk).
func fullRuneAvailable(buf []byte, pos int) bool {
	return utf8.FullRune(buf[pos:])
}

// decodeRuneAt decodes the rune starting at buf[pos].
func decodeRuneAt(buf []byte, pos int) (rune, int) {
	return utf8.DecodeRune(buf[pos:])
}
