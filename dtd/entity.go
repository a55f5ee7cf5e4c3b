package dtd

import (
	"fmt"
	"strings"

	"github.com/nanoxml/helium/charclass"
)

// parseEntityDecl parses the body of a `<!ENTITY ...>` declaration
// (general entity only; parameter-entity declarations are handled by
// parsePEDeclBody in pe.go) and validates the name and value per spec.md
// §4.5.
func parseEntityDecl(body string, ed charclass.Classifier) (*Entity, error) {
	s := strings.TrimSpace(body)
	if strings.HasPrefix(s, "%") {
		return nil, nil // parameter entity; caller routes to pe.go
	}

	name, rest, ok := splitName(s)
	if !ok {
		return nil, &PEError{Kind: "name_invalid", Detail: "missing entity name"}
	}
	if !validName(name, ed) {
		return nil, &PEError{Kind: "name_invalid", Detail: fmt.Sprintf("invalid entity name %q", name)}
	}
	rest = strings.TrimSpace(rest)

	if strings.HasPrefix(rest, "SYSTEM") || strings.HasPrefix(rest, "PUBLIC") {
		systemID, publicID, err := parseExternalID(rest)
		if err != nil {
			return nil, err
		}
		ent := &Entity{Name: name, SystemID: systemID, PublicID: publicID}
		if publicID != "" {
			ent.Kind = EntityExternalPublic
		} else {
			ent.Kind = EntityExternalSystem
		}

		// Optional NDATA qualifier.
		after := afterExternalID(rest)
		after = strings.TrimSpace(after)
		if strings.HasPrefix(after, "NDATA") {
			ndataRest := strings.TrimSpace(after[len("NDATA"):])
			ndataName, _, ok := splitName(ndataRest)
			if !ok || !validName(ndataName, ed) {
				return nil, &PEError{Kind: "name_invalid", Detail: "invalid NDATA notation name"}
			}
			ent.NData = ndataName
		}
		return ent, nil
	}

	lit, _, err := parseQuotedLiteral(rest)
	if err != nil {
		return nil, err
	}
	if err := validateEntityLiteral(lit); err != nil {
		return nil, err
	}
	expanded, err := expandCharRefs(lit)
	if err != nil {
		return nil, &PEError{Kind: "invalid_char_ref", Detail: err.Error()}
	}
	if err := validateExpandedEntityValue(expanded); err != nil {
		return nil, err
	}
	return &Entity{Name: name, Kind: EntityInternal, Value: expanded}, nil
}

// afterExternalID skips past the SYSTEM/PUBLIC literal(s) already parsed
// by parseExternalID, re-parsing just enough to find the remainder (kept
// deliberately simple: re-run the same grammar and return the leftover).
func afterExternalID(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "SYSTEM") {
		_, rest, err := parseQuotedLiteral(strings.TrimSpace(s[len("SYSTEM"):]))
		if err != nil {
			return ""
		}
		return rest
	}
	if strings.HasPrefix(s, "PUBLIC") {
		_, rest, err := parseQuotedLiteral(strings.TrimSpace(s[len("PUBLIC"):]))
		if err != nil {
			return ""
		}
		rest = strings.TrimSpace(rest)
		if len(rest) == 0 || rest[0] == '>' || strings.HasPrefix(rest, "NDATA") {
			return rest
		}
		_, rest2, err := parseQuotedLiteral(rest)
		if err != nil {
			return ""
		}
		return rest2
	}
	return ""
}

// validateEntityLiteral rejects a bare '&' or '%' in the raw (pre
// character-reference-expansion) literal. An '&' must start a character
// reference or a `&name;` entity reference; a '%' is accepted whenever a
// ';' follows it somewhere later in the literal, in both the internal and
// the external subset. Character references such as `&#37;` pass this
// check as references; the characters they expand to are not re-checked
// for '%'.
func validateEntityLiteral(lit string) error {
	i := 0
	for i < len(lit) {
		switch lit[i] {
		case '&':
			end := strings.IndexByte(lit[i:], ';')
			if end < 0 {
				return &PEError{Kind: "entity_value_bare_amp", Detail: "bare '&' in entity value"}
			}
			ref := lit[i+1 : i+end]
			if ref == "" || (!strings.HasPrefix(ref, "#") && !isValidNameLoose(ref)) {
				return &PEError{Kind: "entity_value_bare_amp", Detail: "malformed reference in entity value"}
			}
			i += end + 1
		case '%':
			end := strings.IndexByte(lit[i:], ';')
			if end < 0 {
				return &PEError{Kind: "entity_value_bare_percent", Detail: "bare '%' in entity value"}
			}
			i += end + 1
		default:
			i++
		}
	}
	return nil
}

// isValidNameLoose is a permissive Name check used only to recognize the
// shape of `&name;` inside validateEntityLiteral, where no edition
// Classifier is threaded through; full name validation happens on
// element/attribute names elsewhere.
func isValidNameLoose(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !(r == ':' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
				return false
			}
			continue
		}
		if !(r == ':' || r == '_' || r == '-' || r == '.' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

// validateExpandedEntityValue re-checks the post-character-reference-
// expansion value for a bare '&' (spec.md §4.5: "after character
// reference expansion, the replacement text must not contain bare &"),
// "well-formed content" tag nesting, and a reserved `xml` PI target.
func validateExpandedEntityValue(expanded string) error {
	for i := 0; i < len(expanded); i++ {
		if expanded[i] != '&' {
			continue
		}
		end := strings.IndexByte(expanded[i:], ';')
		if end < 0 {
			return &PEError{Kind: "entity_value_bare_amp", Detail: "bare '&' in entity value after character reference expansion"}
		}
		ref := expanded[i+1 : i+end]
		if ref == "" || (!strings.HasPrefix(ref, "#") && !isValidNameLoose(ref)) {
			return &PEError{Kind: "entity_value_bare_amp", Detail: "bare '&' in entity value after character reference expansion"}
		}
	}
	if err := checkWellFormedContent(expanded); err != nil {
		return err
	}
	if hasReservedXMLPI(expanded) {
		return &PEError{Kind: "entity_value_reserved_pi", Detail: "entity value contains a reserved 'xml' processing instruction target"}
	}
	return nil
}

// hasReservedXMLPI reports whether s contains a `<?xml ...?>` (or any
// case-insensitive spelling of "xml") processing-instruction target.
func hasReservedXMLPI(s string) bool {
	i := 0
	for {
		idx := strings.Index(s[i:], "<?")
		if idx < 0 {
			return false
		}
		start := i + idx + 2
		j := start
		for j < len(s) && !isXMLSpace(s[j]) && s[j] != '?' {
			j++
		}
		target := s[start:j]
		if strings.EqualFold(target, "xml") {
			return true
		}
		i = j
	}
}

// checkWellFormedContent implements spec.md §4.5's "well-formed content"
// check for entity replacement text: extract all tags, classify each as
// start/end/self-closing by shape, and validate proper nesting with a
// stack. A leading end-tag or an unclosed `<...` without a `>` fails.
func checkWellFormedContent(s string) error {
	var stack []string
	i := 0
	for i < len(s) {
		lt := strings.IndexByte(s[i:], '<')
		if lt < 0 {
			break
		}
		start := i + lt
		gt := strings.IndexByte(s[start:], '>')
		if gt < 0 {
			return &PEError{Kind: "entity_value_not_well_formed", Detail: "unclosed tag in entity value"}
		}
		tag := s[start+1 : start+gt]
		i = start + gt + 1

		switch {
		case strings.HasPrefix(tag, "!") || strings.HasPrefix(tag, "?"):
			// Comment/PI/markup-decl inside the value: not a tag.
			continue
		case strings.HasPrefix(tag, "/"):
			name, _, _ := splitName(strings.TrimSpace(tag[1:]) + " ")
			if len(stack) == 0 || stack[len(stack)-1] != name {
				return &PEError{Kind: "entity_value_not_well_formed", Detail: fmt.Sprintf("unmatched end tag </%s>", name)}
			}
			stack = stack[:len(stack)-1]
		case strings.HasSuffix(tag, "/"):
			// self-closing: no stack push.
		default:
			name, _, _ := splitName(tag + " ")
			stack = append(stack, name)
		}
	}
	if len(stack) != 0 {
		return &PEError{Kind: "entity_value_not_well_formed", Detail: fmt.Sprintf("unclosed start tag <%s>", stack[len(stack)-1])}
	}
	return nil
}

// validName reports whether name is a syntactically valid XML Name under
// edition ed's NameStartChar/NameChar rules.
func validName(name string, ed charclass.Classifier) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 {
			if !ed.IsNameStartChar(r) {
				return false
			}
			continue
		}
		if !ed.IsNameChar(r) {
			return false
		}
	}
	return true
}
