package dtd

import (
	"fmt"
	"strings"
)

// DefaultMaxPEIterations is the default iteration bound ExpandPE uses to
// detect circular parameter-entity references (spec.md §4.4, §9).
const DefaultMaxPEIterations = 100

// PEError reports a structured parameter-entity processing failure.
type PEError struct {
	Kind   string // event.ErrorKind value, kept as a string to avoid an import cycle with package event
	Detail string
}

func (e *PEError) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Detail) }

// ExtractPEDefinitions scans dtdText for internal parameter-entity
// declarations of the form `<!ENTITY % Name "value">` (external PE
// declarations, `<!ENTITY % Name SYSTEM|PUBLIC ...>`, are recorded with
// their SystemID/PublicID in the returned ParamEntity but contribute no
// value to the returned map). Character references inside internal PE
// values are expanded immediately (spec.md §3 invariants: "Character
// references in PE values are expanded once at definition time").
// First-declaration-wins: a later `<!ENTITY % Name ...>` for a name
// already present is silently ignored.
func ExtractPEDefinitions(dtdText string) (map[string]string, map[string]*ParamEntity, error) {
	values := make(map[string]string)
	defs := make(map[string]*ParamEntity)

	pos := 0
	for {
		c, ok := nextTopLevelConstruct(dtdText, pos)
		if !ok {
			break
		}
		pos = c.end
		if c.kind != ckDeclEntity {
			continue
		}
		pe, value, isPE, err := parsePEDeclBody(c.body)
		if err != nil {
			return nil, nil, err
		}
		if !isPE {
			continue
		}
		if _, exists := defs[pe.Name]; exists {
			continue // first-declaration-wins
		}
		defs[pe.Name] = pe
		if !pe.External {
			values[pe.Name] = value
		}
	}
	return values, defs, nil
}

// parsePEDeclBody parses the body of an `<!ENTITY ...>` declaration
// (everything between "<!ENTITY" and the final ">", exclusive),
// reporting isPE=false if this is a general-entity declaration (no `%`).
func parsePEDeclBody(body string) (pe *ParamEntity, value string, isPE bool, err error) {
	s := strings.TrimSpace(body)
	if !strings.HasPrefix(s, "%") {
		return nil, "", false, nil
	}
	s = strings.TrimSpace(s[1:])

	name, rest, ok := splitName(s)
	if !ok {
		return nil, "", false, &PEError{Kind: "name_invalid", Detail: "missing parameter entity name"}
	}
	rest = strings.TrimSpace(rest)

	if strings.HasPrefix(rest, "SYSTEM") || strings.HasPrefix(rest, "PUBLIC") {
		systemID, publicID, err := parseExternalID(rest)
		if err != nil {
			return nil, "", true, err
		}
		return &ParamEntity{Name: name, External: true, SystemID: systemID, PublicID: publicID}, "", true, nil
	}

	lit, _, err := parseQuotedLiteral(rest)
	if err != nil {
		return nil, "", true, err
	}
	expanded, err := expandCharRefs(lit)
	if err != nil {
		return nil, "", true, &PEError{Kind: "invalid_char_ref", Detail: err.Error()}
	}
	return &ParamEntity{Name: name, Value: expanded}, expanded, true, nil
}

// ExpandPE iteratively substitutes `%name;` occurrences in content using
// peMap, repeating until a pass makes no change or maxIterations passes
// have run (DefaultMaxPEIterations if maxIterations <= 0). Unknown PE
// names are preserved verbatim (they may be defined in an external
// subset the caller hasn't merged in yet). Exceeding the iteration bound
// reports ErrPEExpansionCycle.
func ExpandPE(content string, peMap map[string]string, maxIterations int) (string, error) {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxPEIterations
	}
	cur := content
	for iter := 0; iter < maxIterations; iter++ {
		next, changed := expandPEOnce(cur, peMap)
		if !changed {
			return next, nil
		}
		cur = next
	}
	return "", &PEError{Kind: "pe_expansion_cycle", Detail: "parameter entity expansion did not converge within the iteration bound"}
}

func expandPEOnce(s string, peMap map[string]string) (string, bool) {
	if !strings.Contains(s, "%") {
		return s, false
	}
	var b strings.Builder
	b.Grow(len(s))
	changed := false
	i := 0
	for i < len(s) {
		if s[i] != '%' {
			b.WriteByte(s[i])
			i++
			continue
		}
		end, name, ok := scanPERef(s, i)
		if !ok {
			b.WriteByte(s[i])
			i++
			continue
		}
		if val, known := peMap[name]; known {
			b.WriteString(val)
			changed = true
		} else {
			b.WriteString(s[i:end])
		}
		i = end
	}
	return b.String(), changed
}

// ValidatePEPositions rejects any `%name;` reference in the internal
// subset whose offset lies strictly inside the byte range of a non-PE
// declaration (spec.md §4.4 "PE position validation"): in the internal
// subset, PE references are only legal between declarations.
func ValidatePEPositions(dtdText string) error {
	pos := 0
	for {
		c, ok := nextTopLevelConstruct(dtdText, pos)
		if !ok {
			return nil
		}
		pos = c.end
		if c.kind != ckDeclElement && c.kind != ckDeclAttlist && c.kind != ckDeclEntity && c.kind != ckDeclNotation {
			continue
		}
		bodyStart := c.start + len("<!ELEMENT") // same length as "<!ATTLIST"
		switch c.kind {
		case ckDeclEntity:
			bodyStart = c.start + len("<!ENTITY")
		case ckDeclNotation:
			bodyStart = c.start + len("<!NOTATION")
		}
		for idx := strings.IndexByte(c.body, '%'); idx >= 0; {
			if _, _, isRef := scanPERef(c.body, idx); isRef {
				return &PEError{Kind: "pe_in_decl_internal", Detail: fmt.Sprintf("parameter entity reference inside declaration at offset %d", bodyStart+idx)}
			}
			next := strings.IndexByte(c.body[idx+1:], '%')
			if next < 0 {
				break
			}
			idx += 1 + next
		}
	}
}

// ProcessPE orchestrates PE extraction and expansion for either the
// internal subset (external=false: PE position is validated first) or an
// already-merged external subset (external=true: position validation is
// the external resolver's job, via the PE-boundary invariant instead).
func ProcessPE(dtdText string, external bool, maxIterations int) (string, map[string]*ParamEntity, error) {
	if !external {
		if err := ValidatePEPositions(dtdText); err != nil {
			return "", nil, err
		}
	}
	values, defs, err := ExtractPEDefinitions(dtdText)
	if err != nil {
		return "", nil, err
	}
	expanded, err := ExpandPE(dtdText, values, maxIterations)
	if err != nil {
		return "", nil, err
	}
	return expanded, defs, nil
}

// splitName splits a leading Name off s, returning the name and the
// remainder (including any leading whitespace).
func splitName(s string) (name, rest string, ok bool) {
	i := 0
	for i < len(s) && !isXMLSpace(s[i]) && s[i] != '>' && s[i] != '(' {
		i++
	}
	if i == 0 {
		return "", s, false
	}
	return s[:i], s[i:], true
}
