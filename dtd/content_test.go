package dtd

import (
	"testing"

	"github.com/nanoxml/helium/charclass"
)

func mustParseElement(t *testing.T, decl string) *ContentModel {
	t.Helper()
	_, cm, err := parseElementDecl(decl, charclass.Edition5{})
	if err != nil {
		t.Fatalf("unexpected error parsing %q: %v", decl, err)
	}
	return cm
}

func TestParseElementDeclEmptyAndAny(t *testing.T) {
	if cm := mustParseElement(t, "a EMPTY"); cm.Type != ContentEmpty {
		t.Fatalf("expected EMPTY, got %v", cm.Type)
	}
	if cm := mustParseElement(t, "a ANY"); cm.Type != ContentAny {
		t.Fatalf("expected ANY, got %v", cm.Type)
	}
}

func TestParseElementDeclMixedContent(t *testing.T) {
	cm := mustParseElement(t, "a (#PCDATA|b|c)*")
	if cm.Type != ContentMixed || cm.Occur != OccurZeroOrMore {
		t.Fatalf("unexpected mixed model: %+v", cm)
	}
	if len(cm.Names) != 2 || cm.Names[0] != "b" || cm.Names[1] != "c" {
		t.Fatalf("unexpected mixed names: %v", cm.Names)
	}
}

func TestParseElementDeclRejectsMixedPlusOrQuestion(t *testing.T) {
	for _, decl := range []string{"a (#PCDATA)+", "a (#PCDATA)?"} {
		if _, _, err := parseElementDecl(decl, charclass.Edition5{}); err == nil {
			t.Fatalf("expected an error for %q", decl)
		}
	}
}

func TestParseElementDeclRejectsSGMLisms(t *testing.T) {
	bad := []string{
		"a +(b)",
		"a CDATA",
		"a ()",
		"a (b)**",
		"a (b,c|d)",
	}
	for _, decl := range bad {
		if _, _, err := parseElementDecl(decl, charclass.Edition5{}); err == nil {
			t.Fatalf("expected an error for %q", decl)
		}
	}
}

func TestParseElementDeclChildrenGroupWithOccurrence(t *testing.T) {
	cm := mustParseElement(t, "a (b,(c|d)?,e+)")
	if cm.Type != ContentSeq || len(cm.Items) != 3 {
		t.Fatalf("unexpected sequence: %+v", cm)
	}
	if cm.Items[1].Type != ContentChoice || cm.Items[1].Occur != OccurOptional {
		t.Fatalf("unexpected nested choice: %+v", cm.Items[1])
	}
	if cm.Items[2].Name != "e" || cm.Items[2].Occur != OccurOneOrMore {
		t.Fatalf("unexpected leaf particle: %+v", cm.Items[2])
	}
}
