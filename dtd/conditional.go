package dtd

import "strings"

// ProcessConditional rewrites every external-subset conditional section
// `<![INCLUDE[...]]>` / `<![IGNORE[...]]>` in dtdText into plain text: an
// INCLUDE section is replaced by its (recursively processed) content, an
// IGNORE section is dropped entirely (spec.md §4.6 "Conditional
// sections"). It must run after parameter-entity expansion has already
// replaced any `%name;` used as the section keyword (e.g. `<![%cond;[`)
// — by the time this runs, the keyword is expected to already read
// literally INCLUDE or IGNORE. A keyword that is still not one of those
// two literals (a PE that expands to something else, or one left
// unresolved) is reported as an error rather than silently guessed at,
// since the well-formedness of the rest of the document depends on the
// decision (spec.md §9 Open Question: undecidable PE-keyword sections).
func ProcessConditional(dtdText string) (string, error) {
	var b strings.Builder
	pos := 0
	for {
		idx := indexFrom(dtdText, pos, "<![")
		if idx < 0 {
			b.WriteString(dtdText[pos:])
			return b.String(), nil
		}
		b.WriteString(dtdText[pos:idx])

		kind, innerStart, end, err := scanConditionalHeader(dtdText, idx)
		if err != nil {
			return "", err
		}
		inner := dtdText[innerStart : end-3] // strip trailing "]]>"

		switch kind {
		case "INCLUDE":
			processed, err := ProcessConditional(inner)
			if err != nil {
				return "", err
			}
			b.WriteString(processed)
		case "IGNORE":
			// Dropped. Nested sections inside an IGNORE are not
			// independently validated — spec.md §4.6: IGNORE content is
			// opaque.
		default:
			return "", &PEError{Kind: "conditional_keyword_undecidable", Detail: "conditional section keyword is neither INCLUDE nor IGNORE after parameter-entity expansion: " + kind}
		}
		pos = end
	}
}

// scanConditionalHeader parses the `<![KEYWORD[` header starting at
// s[start:] (s[start:start+3] == "<![") and returns the keyword, the
// offset where the section body begins, and the offset just past the
// matching "]]>" (tracking nested "<![" opens, mirroring
// scanConditionalSpan in scan.go).
func scanConditionalHeader(s string, start int) (keyword string, bodyStart, end int, err error) {
	n := len(s)
	i := start + 3
	for i < n && isXMLSpace(s[i]) {
		i++
	}
	kwStart := i
	for i < n && s[i] != '[' && !isXMLSpace(s[i]) {
		i++
	}
	keyword = s[kwStart:i]
	for i < n && isXMLSpace(s[i]) {
		i++
	}
	if i >= n || s[i] != '[' {
		return "", 0, 0, &PEError{Kind: "conditional_malformed", Detail: "conditional section is missing its opening '['"}
	}
	bodyStart = i + 1

	depth := 1
	i = bodyStart
	for i < n {
		switch {
		case strings.HasPrefix(s[i:], "<!["):
			depth++
			i += 3
		case strings.HasPrefix(s[i:], "]]>"):
			depth--
			i += 3
			if depth == 0 {
				return keyword, bodyStart, i, nil
			}
		default:
			i++
		}
	}
	return "", 0, 0, &PEError{Kind: "conditional_malformed", Detail: "unterminated conditional section"}
}
