package dtd

import (
	"testing"

	"github.com/nanoxml/helium/charclass"
)

func TestParseEntityDeclInternal(t *testing.T) {
	ent, err := parseEntityDecl(`copyright "Copyright 2026"`, charclass.Edition5{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ent.Name != "copyright" || ent.Kind != EntityInternal || ent.Value != "Copyright 2026" {
		t.Fatalf("unexpected entity: %+v", ent)
	}
}

func TestParseEntityDeclExternalUnparsed(t *testing.T) {
	ent, err := parseEntityDecl(`logo SYSTEM "logo.gif" NDATA gif`, charclass.Edition5{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ent.IsUnparsed() || ent.NData != "gif" || ent.SystemID != "logo.gif" {
		t.Fatalf("unexpected entity: %+v", ent)
	}
}

func TestParseEntityDeclRejectsBareAmp(t *testing.T) {
	if _, err := parseEntityDecl(`bad "a & b"`, charclass.Edition5{}); err == nil {
		t.Fatal("expected an error for a bare '&'")
	}
}

func TestParseEntityDeclRoutesParameterEntities(t *testing.T) {
	ent, err := parseEntityDecl(`% pe "value"`, charclass.Edition5{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ent != nil {
		t.Fatalf("expected nil (caller routes to pe.go), got %+v", ent)
	}
}

func TestCheckWellFormedContentRejectsUnbalancedTags(t *testing.T) {
	if err := checkWellFormedContent("<a><b></a>"); err == nil {
		t.Fatal("expected a not-well-formed error")
	}
	if err := checkWellFormedContent("<a><b/></a>"); err != nil {
		t.Fatalf("unexpected error for well-formed content: %v", err)
	}
}
