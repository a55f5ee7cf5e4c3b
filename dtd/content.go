package dtd

import (
	"fmt"
	"strings"

	"github.com/nanoxml/helium/charclass"
)

// parseElementDecl parses the body of a `<!ELEMENT name contentspec>`
// declaration (everything between "<!ELEMENT" and the final ">",
// exclusive) and rejects every SGML-ism spec.md §4.5 enumerates.
func parseElementDecl(body string, ed charclass.Classifier) (name string, cm *ContentModel, err error) {
	s := strings.TrimSpace(body)
	name, rest, ok := splitName(s)
	if !ok || !validName(name, ed) {
		return "", nil, invalidElement("missing or invalid element name")
	}
	if len(rest) == 0 || !isXMLSpace(rest[0]) {
		return "", nil, invalidElement("missing whitespace before content spec")
	}
	spec := strings.TrimSpace(rest)

	// SGML inclusion/exclusion: "+(x)" / "-(x)" directly after the name.
	if strings.HasPrefix(spec, "+(") || strings.HasPrefix(spec, "-(") {
		return "", nil, invalidElement("inclusion/exclusion element lists are not valid XML")
	}
	if strings.HasPrefix(spec, "CDATA") || strings.HasPrefix(spec, "RCDATA") {
		return "", nil, invalidElement("CDATA/RCDATA content keywords are not valid XML")
	}

	switch {
	case spec == "EMPTY":
		return name, &ContentModel{Type: ContentEmpty}, nil
	case spec == "ANY":
		return name, &ContentModel{Type: ContentAny}, nil
	case strings.HasPrefix(spec, "("):
		cm, rem, err := parseGroup(spec, ed)
		if err != nil {
			return "", nil, err
		}
		if strings.TrimSpace(rem) != "" {
			return "", nil, invalidElement(fmt.Sprintf("unexpected trailing content %q after content spec", rem))
		}
		return name, cm, nil
	default:
		return "", nil, invalidElement(fmt.Sprintf("unrecognized content spec %q", spec))
	}
}

// parseGroup parses a parenthesized group starting at s[0]=='(' — either
// Mixed content (`(#PCDATA...)`) or a children group (choice/seq) — and
// returns the parsed ContentModel plus the unconsumed remainder of s.
// The group's own occurrence indicator, if any, is already consumed and
// recorded in the returned model's Occur.
func parseGroup(s string, ed charclass.Classifier) (*ContentModel, string, error) {
	if s[0] != '(' {
		return nil, s, invalidElement("expected '('")
	}
	inner := s[1:]
	if strings.HasPrefix(strings.TrimLeft(inner, " \t\r\n"), "#PCDATA") {
		return parseMixed(s, ed)
	}
	return parseChildrenGroup(s, ed)
}

// parseMixed parses `(#PCDATA)` or `(#PCDATA|a|b|...)*`.
func parseMixed(s string, ed charclass.Classifier) (*ContentModel, string, error) {
	i := skipWS(s, 1)
	if !strings.HasPrefix(s[i:], "#PCDATA") {
		return nil, "", invalidElement("#PCDATA must be first in a mixed-content group")
	}
	i += len("#PCDATA")

	var names []string
	for {
		i = skipWS(s, i)
		if i >= len(s) {
			return nil, "", invalidElement("unterminated mixed-content group")
		}
		switch s[i] {
		case ')':
			i++
			if len(names) == 0 {
				// Plain "(#PCDATA)": '*' is the only occurrence allowed, '+'/'?' rejected.
				if i < len(s) && (s[i] == '+' || s[i] == '?') {
					return nil, "", invalidElement("(#PCDATA)+ / (#PCDATA)? are not valid XML; use (#PCDATA)")
				}
				occur := OccurOne
				if i < len(s) && s[i] == '*' {
					occur = OccurZeroOrMore
					i++
				}
				return &ContentModel{Type: ContentMixed, Occur: occur}, s[i:], nil
			}
			if i >= len(s) || s[i] != '*' {
				return nil, "", invalidElement("mixed content with '|' must end in ')*'")
			}
			i++
			return &ContentModel{Type: ContentMixed, Names: names, Occur: OccurZeroOrMore}, s[i:], nil
		case ',':
			return nil, "", invalidElement("mixed content cannot mix ',' and '|'")
		case '|':
			i = skipWS(s, i+1)
			if i < len(s) && s[i] == '(' {
				return nil, "", invalidElement("mixed content cannot contain nested groups")
			}
			if i < len(s) && strings.HasPrefix(s[i:], "#PCDATA") {
				return nil, "", invalidElement("#PCDATA must be first in a mixed-content group")
			}
			name, rest, ok := splitNameStrict(s[i:])
			if !ok || !validName(name, ed) {
				return nil, "", invalidElement("invalid element name in mixed content")
			}
			if len(rest) > 0 && (rest[0] == '?' || rest[0] == '*' || rest[0] == '+') {
				return nil, "", invalidElement("mixed content names cannot carry occurrence indicators")
			}
			names = append(names, name)
			i += len(s[i:]) - len(rest)
		default:
			return nil, "", invalidElement("invalid character in mixed-content group")
		}
	}
}

// parseChildrenGroup parses a (choice | seq) group: items separated
// uniformly by ',' (seq) or '|' (choice), each item itself a cp (Name or
// nested group) optionally suffixed by one occurrence indicator with no
// preceding whitespace.
func parseChildrenGroup(s string, ed charclass.Classifier) (*ContentModel, string, error) {
	i := skipWS(s, 1)
	if i < len(s) && s[i] == ')' {
		return nil, "", invalidElement("empty group () is not valid XML")
	}

	var items []*ContentModel
	var sep byte // 0 until the first separator is seen
	for {
		cp, rest, err := parseCP(s[i:], ed)
		if err != nil {
			return nil, "", err
		}
		items = append(items, cp)
		i = len(s) - len(rest)
		i = skipWS(s, i)
		if i >= len(s) {
			return nil, "", invalidElement("unterminated group")
		}
		switch s[i] {
		case ')':
			i++
			occurEnd := i
			occur := OccurOne
			if i < len(s) {
				switch s[i] {
				case '?':
					occur, i = OccurOptional, i+1
				case '*':
					occur, i = OccurZeroOrMore, i+1
				case '+':
					occur, i = OccurOneOrMore, i+1
				}
			}
			_ = occurEnd
			typ := ContentSeq
			if sep == '|' {
				typ = ContentChoice
			}
			if len(items) == 1 && sep == 0 {
				typ = ContentSeq
			}
			return &ContentModel{Type: typ, Items: items, Occur: occur}, s[i:], nil
		case ',', '|':
			if sep == 0 {
				sep = s[i]
			} else if sep != s[i] {
				return nil, "", invalidElement("cannot mix ',' and '|' at one group level")
			}
			i = skipWS(s, i+1)
		default:
			return nil, "", invalidElement("expected ',', '|', or ')' in group")
		}
	}
}

// parseCP parses one content particle: a Name or a nested group, each
// optionally followed by a single occurrence indicator with no
// intervening whitespace (stacked indicators like "a**" or whitespace
// before the indicator, e.g. "a ?", are rejected).
func parseCP(s string, ed charclass.Classifier) (*ContentModel, string, error) {
	if len(s) == 0 {
		return nil, "", invalidElement("unexpected end of content spec")
	}
	if s[0] == '(' {
		cm, rest, err := parseGroup(s, ed)
		if err != nil {
			return nil, "", err
		}
		// parseGroup already consumed the group's indicator; another one
		// directly after it is stacked.
		if len(rest) > 0 && (rest[0] == '?' || rest[0] == '*' || rest[0] == '+') {
			return nil, "", invalidElement("stacked occurrence indicators are not valid XML")
		}
		return cm, rest, nil
	}

	name, rest, ok := splitNameStrict(s)
	if !ok || !validName(name, ed) {
		return nil, "", invalidElement("invalid element name in content spec")
	}
	cm := &ContentModel{Type: ContentSeq, Name: name}
	return applyOccurrence(cm, rest)
}

// applyOccurrence consumes at most one occurrence indicator directly
// following a Name particle (no whitespace before it) and rejects a
// second indicator right after the first (stacked, e.g. "a**").
func applyOccurrence(cm *ContentModel, rest string) (*ContentModel, string, error) {
	if len(rest) == 0 {
		return cm, rest, nil
	}
	switch rest[0] {
	case '?':
		cm.Occur = OccurOptional
		rest = rest[1:]
	case '*':
		cm.Occur = OccurZeroOrMore
		rest = rest[1:]
	case '+':
		cm.Occur = OccurOneOrMore
		rest = rest[1:]
	}
	if len(rest) > 0 && (rest[0] == '?' || rest[0] == '*' || rest[0] == '+') {
		return nil, "", invalidElement("stacked occurrence indicators are not valid XML")
	}
	return cm, rest, nil
}

// splitNameStrict splits a leading Name off s without the '(' stop-char
// splitName (in pe.go) allows — used inside content-spec parsing where a
// Name can never be immediately followed by '(' (that would be a nested
// group, a different grammar production).
func splitNameStrict(s string) (name, rest string, ok bool) {
	i := 0
	for i < len(s) {
		c := s[i]
		if isXMLSpace(c) || c == ')' || c == ',' || c == '|' || c == '?' || c == '*' || c == '+' {
			break
		}
		i++
	}
	if i == 0 {
		return "", s, false
	}
	return s[:i], s[i:], true
}

func skipWS(s string, i int) int {
	for i < len(s) && isXMLSpace(s[i]) {
		i++
	}
	return i
}

func invalidElement(detail string) error {
	return &PEError{Kind: "invalid_element", Detail: detail}
}
