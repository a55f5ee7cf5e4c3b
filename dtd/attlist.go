package dtd

import (
	"strings"

	"github.com/nanoxml/helium/charclass"
)

// parseAttlistDecl parses the body of a `<!ATTLIST elem attr type
// default ...>` declaration, returning the element name and its ordered
// attribute definitions (spec.md §4.5).
func parseAttlistDecl(body string, ed charclass.Classifier) (elem string, defs []AttributeDef, err error) {
	s := strings.TrimSpace(body)
	elem, rest, ok := splitName(s)
	if !ok || !validName(elem, ed) {
		return "", nil, invalidElement("missing or invalid element name in ATTLIST")
	}
	rest = strings.TrimSpace(rest)

	for rest != "" {
		var def AttributeDef
		def, rest, err = parseOneAttributeDef(rest, ed)
		if err != nil {
			return "", nil, err
		}
		defs = append(defs, def)
		rest = strings.TrimSpace(rest)
	}
	return elem, defs, nil
}

func parseOneAttributeDef(s string, ed charclass.Classifier) (AttributeDef, string, error) {
	name, rest, ok := splitName(s)
	if !ok || !validName(name, ed) {
		return AttributeDef{}, "", invalidElement("missing or invalid attribute name")
	}
	if len(rest) == 0 || !isXMLSpace(rest[0]) {
		return AttributeDef{}, "", invalidElement("missing whitespace after attribute name")
	}
	rest = strings.TrimSpace(rest)

	typ, values, rest, err := parseAttributeType(rest)
	if err != nil {
		return AttributeDef{}, "", err
	}
	if len(rest) == 0 || !isXMLSpace(rest[0]) {
		return AttributeDef{}, "", invalidElement("missing whitespace after attribute type")
	}
	rest = strings.TrimSpace(rest)

	def := AttributeDef{Name: name, Type: typ, Values: values}
	switch {
	case strings.HasPrefix(rest, "#REQUIRED"):
		def.Default = DefaultRequired
		rest = rest[len("#REQUIRED"):]
	case strings.HasPrefix(rest, "#IMPLIED"):
		def.Default = DefaultImplied
		rest = rest[len("#IMPLIED"):]
	case strings.HasPrefix(rest, "#FIXED"):
		def.Default = DefaultFixed
		rest = strings.TrimSpace(rest[len("#FIXED"):])
		lit, r2, err := parseQuotedLiteral(rest)
		if err != nil {
			return AttributeDef{}, "", err
		}
		def.Value = lit
		rest = r2
	case strings.HasPrefix(rest, "#ALL"):
		return AttributeDef{}, "", invalidElement("#ALL is not a valid attribute default")
	default:
		lit, r2, err := parseQuotedLiteral(rest)
		if err != nil {
			return AttributeDef{}, "", invalidElement("expected a default value, #REQUIRED, #IMPLIED, or #FIXED")
		}
		def.Default = DefaultValue
		def.Value = lit
		rest = r2
	}
	return def, rest, nil
}

// parseAttributeType recognizes the keyword types, an enumeration
// `(v1|v2|...)`, or `NOTATION (n1|n2|...)`.
func parseAttributeType(s string) (AttributeType, []string, string, error) {
	keywords := []struct {
		kw string
		t  AttributeType
	}{
		{"CDATA", AttrCDATA}, {"IDREFS", AttrIDRefs}, {"IDREF", AttrIDRef},
		{"ID", AttrID}, {"ENTITIES", AttrEntities}, {"ENTITY", AttrEntity},
		{"NMTOKENS", AttrNmtokens}, {"NMTOKEN", AttrNmtoken},
	}
	for _, k := range keywords {
		if strings.HasPrefix(s, k.kw) {
			after := s[len(k.kw):]
			if after == "" || isXMLSpace(after[0]) {
				return k.t, nil, after, nil
			}
		}
	}
	if strings.HasPrefix(s, "NOTATION") {
		after := strings.TrimSpace(s[len("NOTATION"):])
		if !strings.HasPrefix(after, "(") {
			return 0, nil, "", invalidElement("NOTATION requires a parenthesized list of names")
		}
		values, rest, err := parseEnumerationList(after, false)
		if err != nil {
			return 0, nil, "", err
		}
		return AttrNotation, values, rest, nil
	}
	if strings.HasPrefix(s, "(") {
		values, rest, err := parseEnumerationList(s, true)
		if err != nil {
			return 0, nil, "", err
		}
		return AttrEnumeration, values, rest, nil
	}
	return 0, nil, "", invalidElement("unrecognized attribute type")
}

// parseEnumerationList parses `(v1|v2|...)`, rejecting quoted values,
// comma separators, and empty lists. A single-member list such as `(v)`
// is accepted; isNmtoken does not change what is accepted.
func parseEnumerationList(s string, isNmtoken bool) ([]string, string, error) {
	if len(s) == 0 || s[0] != '(' {
		return nil, "", invalidElement("expected '('")
	}
	i := skipWS(s, 1)
	var values []string
	for {
		if i < len(s) && (s[i] == '"' || s[i] == '\'') {
			return nil, "", invalidElement("quoted values are not allowed in an enumeration")
		}
		name, rest, ok := splitNameStrict(s[i:])
		if !ok {
			return nil, "", invalidElement("empty or invalid enumeration member")
		}
		values = append(values, name)
		i = len(s) - len(rest)
		i = skipWS(s, i)
		if i >= len(s) {
			return nil, "", invalidElement("unterminated enumeration")
		}
		switch s[i] {
		case ')':
			i++
			if len(values) == 0 {
				return nil, "", invalidElement("empty enumeration list")
			}
			return values, s[i:], nil
		case ',':
			return nil, "", invalidElement("enumeration members must be separated by '|', not ','")
		case '|':
			i = skipWS(s, i+1)
		default:
			return nil, "", invalidElement("expected '|' or ')' in enumeration")
		}
	}
}
