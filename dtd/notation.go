package dtd

import (
	"strings"

	"github.com/nanoxml/helium/charclass"
)

// parseNotationDecl parses the body of a `<!NOTATION name (...)>`
// declaration, supporting all three forms spec.md §4.5 names: `SYSTEM
// "id"`, `PUBLIC "pub" "sys"`, and `PUBLIC "pub"`.
func parseNotationDecl(body string, ed charclass.Classifier) (*Notation, error) {
	s := strings.TrimSpace(body)
	name, rest, ok := splitName(s)
	if !ok || !validName(name, ed) {
		return nil, &PEError{Kind: "name_invalid", Detail: "invalid or missing notation name"}
	}
	rest = strings.TrimSpace(rest)

	systemID, publicID, err := parseExternalID(rest)
	if err != nil {
		return nil, err
	}
	return &Notation{Name: name, SystemID: systemID, PublicID: publicID}, nil
}
