package dtd

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nanoxml/helium/charclass"
)

// expandCharRefs replaces every `&#N;` (decimal) or `&#xH;` (hex)
// character reference in s with the UTF-8 encoding of the referenced
// codepoint. It leaves every other byte, including `%...;` parameter
// entity references and `&name;` general entity references, untouched.
//
// It is applied once, at declaration time, to both parameter-entity
// values (parsePEDeclBody) and internal general-entity values
// (parseEntityDecl); the stored values therefore no longer contain
// character references. General entity references (`&name;`) inside a
// value are left for package entityresolve, which itself skips character
// references.
func expandCharRefs(s string) (string, error) {
	if !strings.Contains(s, "&#") {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if s[i] != '&' || !strings.HasPrefix(s[i:], "&#") {
			b.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated character reference at offset %d", errInvalidCharRef, i)
		}
		end += i
		ref := s[i+2 : end] // digits, or "xHEX"
		var (
			cp  int64
			err error
		)
		if strings.HasPrefix(ref, "x") || strings.HasPrefix(ref, "X") {
			cp, err = strconv.ParseInt(ref[1:], 16, 32)
		} else {
			cp, err = strconv.ParseInt(ref, 10, 32)
		}
		if err != nil || !isValidRef(rune(cp)) {
			return "", fmt.Errorf("%w: &#%s;", errInvalidCharRef, ref)
		}
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], rune(cp))
		b.Write(buf[:n])
		i = end + 1
	}
	return b.String(), nil
}

func isValidRef(r rune) bool {
	return r >= 0 && charclass.IsChar(r)
}

// sentinel error wrapped by expandCharRefs/expandCharRefs callers; kept
// unexported because callers are expected to match on the structured
// event.ErrInvalidCharRef kind, not on this Go error value.
var errInvalidCharRef = fmt.Errorf("invalid character reference")
