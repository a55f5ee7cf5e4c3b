package dtd

import (
	"testing"

	"github.com/nanoxml/helium/charclass"
)

func TestParseNotationDeclAllThreeForms(t *testing.T) {
	cases := map[string]Notation{
		`gif SYSTEM "viewer.exe"`:          {Name: "gif", SystemID: "viewer.exe"},
		`jpeg PUBLIC "-//pub//jpeg" "v.exe"`: {Name: "jpeg", PublicID: "-//pub//jpeg", SystemID: "v.exe"},
		`png PUBLIC "-//pub//png"`:          {Name: "png", PublicID: "-//pub//png"},
	}
	for decl, want := range cases {
		got, err := parseNotationDecl(decl, charclass.Edition5{})
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", decl, err)
		}
		if *got != want {
			t.Fatalf("for %q: got %+v, want %+v", decl, *got, want)
		}
	}
}
