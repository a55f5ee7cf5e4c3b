package dtd

import (
	"strings"

	"github.com/nanoxml/helium/charclass"
)

// DoctypeHeader is the parsed `<!DOCTYPE rootname ... ['['internal']']>`
// header (spec.md §4.2 "DOCTYPE extraction" produces the raw text; this
// package parses its structure).
type DoctypeHeader struct {
	RootElement    string
	SystemID       string
	PublicID       string
	HasExternal    bool
	InternalSubset string // content between '[' and ']', "" if absent
}

// ParseDoctypeHeader parses the raw DOCTYPE body (the text between
// `<!DOCTYPE` and the matching terminating `>`, exclusive on both ends —
// exactly the text carried by an event.KindDTD event).
func ParseDoctypeHeader(raw string) (*DoctypeHeader, error) {
	s := strings.TrimSpace(raw)
	name, rest, ok := splitName(s)
	if !ok {
		return nil, invalidElement("DOCTYPE is missing a root element name")
	}
	h := &DoctypeHeader{RootElement: name}
	rest = strings.TrimSpace(rest)

	if strings.HasPrefix(rest, "SYSTEM") || strings.HasPrefix(rest, "PUBLIC") {
		// Find where the external ID ends: the next '[' or end of string.
		bracket := strings.IndexByte(rest, '[')
		idPart := rest
		if bracket >= 0 {
			idPart = rest[:bracket]
		}
		systemID, publicID, err := parseExternalID(idPart)
		if err != nil {
			return nil, err
		}
		h.SystemID, h.PublicID, h.HasExternal = systemID, publicID, true
		if bracket >= 0 {
			rest = rest[bracket:]
		} else {
			rest = ""
		}
	}

	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "[") {
		end := matchingBracket(rest)
		if end < 0 {
			return nil, invalidElement("unterminated internal subset")
		}
		h.InternalSubset = rest[1:end]
	}
	return h, nil
}

// matchingBracket finds the index of the ']' matching the '[' at s[0],
// tracking quote state so a ']' inside a quoted literal (e.g. inside an
// ENTITY value) does not close the subset early.
func matchingBracket(s string) int {
	var quote byte
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ParseDeclarations walks dtdText's top-level constructs and populates
// model, applying first-declaration-wins for ELEMENT/ENTITY/NOTATION and
// accumulating ATTLIST declarations (spec.md §4.5). dtdText must
// already be PE-expanded within declarations (internal subset: only
// between declarations; external subset: fully, via ProcessPE).
//
// external selects external-subset mode. The only difference it makes
// here is that conditional sections are skipped instead of rejected with
// conditional_in_internal; entity values are validated the same way
// (validateEntityLiteral) in both modes.
func ParseDeclarations(dtdText string, ed charclass.Classifier, model *Model, external bool) error {
	pos := 0
	for {
		c, ok := nextTopLevelConstruct(dtdText, pos)
		if !ok {
			return nil
		}
		pos = c.end

		switch c.kind {
		case ckComment, ckPI, ckPERef:
			continue
		case ckConditional:
			if !external {
				return &PEError{Kind: "conditional_in_internal", Detail: "conditional sections are not allowed in the internal subset"}
			}
			continue // already expanded by ProcessConditional before this is called
		case ckDeclElement:
			name, cm, err := parseElementDecl(c.body, ed)
			if err != nil {
				return err
			}
			if _, exists := model.Elements[name]; !exists {
				model.Elements[name] = cm
			}
		case ckDeclAttlist:
			elem, defs, err := parseAttlistDecl(c.body, ed)
			if err != nil {
				return err
			}
			model.Attributes[elem] = append(model.Attributes[elem], defs...)
		case ckDeclEntity:
			if strings.HasPrefix(strings.TrimSpace(c.body), "%") {
				pe, _, _, err := parsePEDeclBody(c.body)
				if err != nil {
					return err
				}
				if _, exists := model.ParamEntities[pe.Name]; !exists {
					model.ParamEntities[pe.Name] = pe
				}
				continue
			}
			ent, err := parseEntityDecl(c.body, ed)
			if err != nil {
				return err
			}
			if _, exists := model.Entities[ent.Name]; !exists {
				model.Entities[ent.Name] = ent
			}
		case ckDeclNotation:
			not, err := parseNotationDecl(c.body, ed)
			if err != nil {
				return err
			}
			if _, exists := model.Notations[not.Name]; !exists {
				model.Notations[not.Name] = not
			}
		case ckBogus:
			return invalidElement("unexpected content at top level of DTD")
		}
	}
}

// MergeExternal merges an external-subset Model into an internal-subset
// Model with internal-subset definitions taking precedence (spec.md §4.6
// step 2). dst is mutated and returned.
func MergeExternal(dst, external *Model) *Model {
	for k, v := range external.Elements {
		if _, ok := dst.Elements[k]; !ok {
			dst.Elements[k] = v
		}
	}
	for k, v := range external.Attributes {
		dst.Attributes[k] = append(dst.Attributes[k], v...)
	}
	for k, v := range external.Entities {
		if _, ok := dst.Entities[k]; !ok {
			dst.Entities[k] = v
		}
	}
	for k, v := range external.ParamEntities {
		if _, ok := dst.ParamEntities[k]; !ok {
			dst.ParamEntities[k] = v
		}
	}
	for k, v := range external.Notations {
		if _, ok := dst.Notations[k]; !ok {
			dst.Notations[k] = v
		}
	}
	return dst
}
