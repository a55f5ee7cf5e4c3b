package dtd

import (
	"testing"

	"github.com/nanoxml/helium/charclass"
)

func TestParseAttlistDeclEnumerationAndFixed(t *testing.T) {
	elem, defs, err := parseAttlistDecl(`a type (x|y|z) #FIXED "x"`, charclass.Edition5{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elem != "a" {
		t.Fatalf("expected element 'a', got %q", elem)
	}
	if len(defs) != 1 || defs[0].Type != AttrEnumeration || defs[0].Default != DefaultFixed || defs[0].Value != "x" {
		t.Fatalf("unexpected attribute def: %+v", defs)
	}
	if len(defs[0].Values) != 3 {
		t.Fatalf("expected 3 enumeration values, got %v", defs[0].Values)
	}
}

func TestParseAttlistDeclRejectsCommaSeparatedEnumeration(t *testing.T) {
	if _, _, err := parseAttlistDecl(`a t (x,y) #IMPLIED`, charclass.Edition5{}); err == nil {
		t.Fatal("expected an error for comma-separated enumeration")
	}
}

func TestParseAttlistDeclMultipleAttributes(t *testing.T) {
	_, defs, err := parseAttlistDecl(`a id ID #REQUIRED name CDATA #IMPLIED`, charclass.Edition5{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(defs) != 2 || defs[0].Name != "id" || defs[1].Name != "name" {
		t.Fatalf("unexpected attribute defs: %+v", defs)
	}
}
