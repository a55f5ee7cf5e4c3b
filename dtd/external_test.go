package dtd

import (
	"testing"

	"github.com/nanoxml/helium/charclass"
)

func fakeResolver(content string) Resolver {
	return func(uri, basePath string) ([]byte, error) {
		return []byte(content), nil
	}
}

func TestParseExternalDTDBasic(t *testing.T) {
	resolver := fakeResolver(`<!ELEMENT a (#PCDATA)> <!ATTLIST a id ID #IMPLIED>`)
	model, err := ParseExternalDTD(resolver, "a.dtd", "", nil, charclass.Edition5{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := model.Elements["a"]; !ok {
		t.Fatalf("expected element 'a' in external model: %+v", model.Elements)
	}
}

func TestParseExternalDTDInternalPETakesPrecedence(t *testing.T) {
	resolver := fakeResolver(`<!ENTITY % shared "(#PCDATA)"><!ELEMENT a %shared;>`)
	internalPE := map[string]string{"shared": "EMPTY"}
	model, err := ParseExternalDTD(resolver, "a.dtd", "", internalPE, charclass.Edition5{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cm, ok := model.Elements["a"]
	if !ok || cm.Type != ContentEmpty {
		t.Fatalf("expected internal PE value EMPTY to win, got %+v", cm)
	}
}

func TestParseExternalDTDWithConditionalSections(t *testing.T) {
	resolver := fakeResolver(`<![INCLUDE[<!ELEMENT a EMPTY>]]><![IGNORE[<!ELEMENT b EMPTY>]]>`)
	model, err := ParseExternalDTD(resolver, "a.dtd", "", nil, charclass.Edition5{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := model.Elements["a"]; !ok {
		t.Fatal("expected INCLUDE section's element to be present")
	}
	if _, ok := model.Elements["b"]; ok {
		t.Fatal("expected IGNORE section's element to be absent")
	}
}
