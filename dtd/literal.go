package dtd

import (
	"fmt"
	"strings"

	"github.com/nanoxml/helium/charclass"
)

// parseQuotedLiteral parses a `"..."` or `'...'` literal at the start of
// s (after skipping leading whitespace), returning its contents and the
// remainder of s after the closing quote.
func parseQuotedLiteral(s string) (value, rest string, err error) {
	s = strings.TrimLeft(s, " \t\r\n")
	if len(s) == 0 || (s[0] != '"' && s[0] != '\'') {
		return "", "", fmt.Errorf("expected_quote: expected a quoted literal")
	}
	q := s[0]
	end := strings.IndexByte(s[1:], q)
	if end < 0 {
		return "", "", fmt.Errorf("expected_quote: unterminated literal")
	}
	end += 1
	return s[1:end], s[end+1:], nil
}

// parseExternalID parses a SYSTEM or PUBLIC external identifier clause
// (the part of an ENTITY/NOTATION declaration starting at "SYSTEM" or
// "PUBLIC"), returning the resolved systemID/publicID. For `PUBLIC "pub"`
// with no following system literal (legal only in NOTATION), systemID is
// returned empty.
func parseExternalID(s string) (systemID, publicID string, err error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "SYSTEM"):
		rest := strings.TrimSpace(s[len("SYSTEM"):])
		sysLit, _, err := parseQuotedLiteral(rest)
		if err != nil {
			return "", "", err
		}
		return sysLit, "", nil

	case strings.HasPrefix(s, "PUBLIC"):
		rest := strings.TrimSpace(s[len("PUBLIC"):])
		pubLit, rest2, err := parseQuotedLiteral(rest)
		if err != nil {
			return "", "", err
		}
		if !validPubidLiteral(pubLit) {
			return "", "", fmt.Errorf("pubid_invalid_char: invalid character in public identifier %q", pubLit)
		}
		rest2 = strings.TrimSpace(rest2)
		if len(rest2) == 0 || rest2[0] == '>' {
			return "", pubLit, nil
		}
		sysLit, _, err := parseQuotedLiteral(rest2)
		if err != nil {
			return "", "", err
		}
		return sysLit, pubLit, nil
	}
	return "", "", fmt.Errorf("expected a SYSTEM or PUBLIC external identifier")
}

func validPubidLiteral(s string) bool {
	for _, r := range s {
		if !charclass.IsPubidChar(r) {
			return false
		}
	}
	return true
}
