package entityresolve

import (
	"strconv"
	"strings"
	"testing"

	"github.com/nanoxml/helium/dtd"
	"github.com/nanoxml/helium/event"
)

func modelWith(entities map[string]string) *dtd.Model {
	m := dtd.NewModel()
	for name, val := range entities {
		m.Entities[name] = &dtd.Entity{Kind: dtd.EntityInternal, Value: val}
	}
	return m
}

func TestResolveTextBasicSubstitution(t *testing.T) {
	r := New(modelWith(map[string]string{"greeting": "hello"}), nil)
	got, _, ok := r.ResolveText([]byte("say &greeting; now"))
	if !ok {
		t.Fatal("expected successful resolution")
	}
	if string(got) != "say hello now" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveTextForwardReferenceOrderIndependence(t *testing.T) {
	// "a" refers to "b"; map iteration/declaration order is irrelevant
	// since lookups happen lazily at resolution time, not by pre-expanding
	// the table up front.
	r := New(modelWith(map[string]string{
		"a": "before &b; after",
		"b": "middle",
	}), nil)
	got, _, ok := r.ResolveText([]byte("&a;"))
	if !ok {
		t.Fatal("expected successful resolution")
	}
	if string(got) != "before middle after" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveTextUnknownEntityLeftIntact(t *testing.T) {
	r := New(modelWith(nil), nil)
	got, kind, ok := r.ResolveText([]byte("&nosuch;"))
	if !ok || kind != "" {
		t.Fatalf("unknown entities should not error: kind=%v ok=%v", kind, ok)
	}
	if string(got) != "&nosuch;" {
		t.Fatalf("got %q, want unchanged", got)
	}
}

func TestResolveTextExpansionDepthExceeded(t *testing.T) {
	entities := map[string]string{}
	// Build a chain a0 -> a1 -> a2 -> ... deeper than MaxExpansionDepth.
	for i := 0; i < 20; i++ {
		entities[name(i)] = "&" + name(i+1) + ";"
	}
	entities[name(20)] = "leaf"
	r := New(modelWith(entities), nil)
	_, kind, ok := r.ResolveText([]byte("&" + name(0) + ";"))
	if ok || kind != event.ErrExpansionDepthExceeded {
		t.Fatalf("expected expansion_depth_exceeded, got kind=%v ok=%v", kind, ok)
	}
}

func name(i int) string {
	return "e" + strconv.Itoa(i)
}

// TestNewDoesNotEagerlyExpandBillionLaughs exercises the spec.md §8
// scenario 6 shape directly: a chain of entities, each referencing the
// previous one ten times over, so a fully pre-expanded table would blow
// up to an enormous string before any document ever references it.
// Constructing the Resolver must stay cheap; only an actual ResolveText
// call on a reference into the chain should pay the expansion cost, and
// it must then hit the configured limit rather than completing.
func TestNewDoesNotEagerlyExpandBillionLaughs(t *testing.T) {
	// lol0 = "lol"; lolN = ten references to lol(N-1), for N in 1..9.
	entities := map[string]string{"lol0": "lol"}
	for i := 1; i <= 9; i++ {
		entities["lol"+strconv.Itoa(i)] = strings.Repeat("&lol"+strconv.Itoa(i-1)+";", 10)
	}

	r := New(modelWith(entities), nil) // must return promptly, no eager expansion
	r.MaxTotalExpansion = 1000

	_, kind, ok := r.ResolveText([]byte("&lol9;"))
	if ok || kind != event.ErrExpansionSizeExceeded {
		t.Fatalf("expected expansion_size_exceeded once actually resolved, got kind=%v ok=%v", kind, ok)
	}
}

func TestResolveTextExpansionSizeExceeded(t *testing.T) {
	r := New(modelWith(map[string]string{"big": strings.Repeat("x", DefaultMaxTotalExpansion)}), nil)
	r.MaxTotalExpansion = 100
	_, kind, ok := r.ResolveText([]byte("&big;"))
	if ok || kind != event.ErrExpansionSizeExceeded {
		t.Fatalf("expected expansion_size_exceeded, got kind=%v ok=%v", kind, ok)
	}
}

func TestResolveTextCumulativeAcrossCalls(t *testing.T) {
	r := New(modelWith(map[string]string{"chunk": strings.Repeat("y", 60)}), nil)
	r.MaxTotalExpansion = 100
	if _, _, ok := r.ResolveText([]byte("&chunk;")); !ok {
		t.Fatal("first call should succeed")
	}
	if _, kind, ok := r.ResolveText([]byte("&chunk;")); ok || kind != event.ErrExpansionSizeExceeded {
		t.Fatalf("second call should exceed the cumulative total, got kind=%v ok=%v", kind, ok)
	}
}

func TestResolveEventStartElementAttributes(t *testing.T) {
	r := New(modelWith(map[string]string{"amp": "&"}), nil)
	e := event.StartElement("a", []event.Attr{{Name: "x", Value: []byte("&amp;b")}}, event.Location{})
	resolved, errEvt := r.ResolveEvent(e)
	if errEvt != nil {
		t.Fatalf("unexpected error event: %+v", errEvt)
	}
	if string(resolved.Attrs[0].Value) != "&b" {
		t.Fatalf("got %q", resolved.Attrs[0].Value)
	}
}

func TestResolveEventCharRefLeftForLaterStage(t *testing.T) {
	r := New(modelWith(nil), nil)
	e := event.Characters([]byte("&#65;"), event.Location{})
	resolved, errEvt := r.ResolveEvent(e)
	if errEvt != nil {
		t.Fatalf("unexpected error event: %+v", errEvt)
	}
	if string(resolved.Text) != "&#65;" {
		t.Fatalf("char refs must be left untouched by the entity resolver, got %q", resolved.Text)
	}
}

func TestResolveStreamInterleavesErrorEvent(t *testing.T) {
	r := New(modelWith(map[string]string{"big": strings.Repeat("z", 50)}), nil)
	r.MaxTotalExpansion = 10
	events := []event.Event{event.Characters([]byte("&big;"), event.Location{})}
	out := r.ResolveStream(events)
	if len(out) != 2 || out[1].Kind != event.KindError || out[1].ErrKind != event.ErrExpansionSizeExceeded {
		t.Fatalf("expected [characters, error], got %+v", out)
	}
}

func TestResolveTextSkipsUnparsedEntity(t *testing.T) {
	m := dtd.NewModel()
	m.Entities["img"] = &dtd.Entity{Kind: dtd.EntityExternalSystem, SystemID: "a.png", NData: "PNG"}
	r := New(m, nil)
	got, _, ok := r.ResolveText([]byte("&img;"))
	if !ok {
		t.Fatal("unparsed-entity reference should not error, just stay unresolved")
	}
	if string(got) != "&img;" {
		t.Fatalf("got %q, want unchanged (unparsed entities are never substituted)", got)
	}
}
