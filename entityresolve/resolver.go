// Package entityresolve resolves general entity references (`&name;`)
// in a tokenizer event stream against a *dtd.Model, under the expansion
// depth and total-size limits SPEC_FULL.md §4.7 requires to defeat
// entity-expansion (billion-laughs) attacks.
package entityresolve

import (
	"strings"

	"github.com/nanoxml/helium/dtd"
	"github.com/nanoxml/helium/event"
)

// DefaultMaxExpansionDepth bounds per-value recursive expansion nesting.
const DefaultMaxExpansionDepth = 10

// DefaultMaxTotalExpansion bounds cumulative expanded output size across
// an entire document.
const DefaultMaxTotalExpansion = 1_000_000

// ExternalEntityFetcher resolves an external general entity's replacement
// text given its system/public identifiers. Its absence (nil) means
// external entities are silently skipped, per spec.md §6.
type ExternalEntityFetcher func(systemID, publicID string) ([]byte, error)

// Resolver holds entity replacement text exactly as declared (not
// pre-expanded against other entities — see New) and the running total
// of bytes produced by ResolveText, shared across the whole document it
// is resolving (spec.md §4.7 step 3: "cumulative expanded size across
// the whole document").
type Resolver struct {
	entities map[string]string

	MaxExpansionDepth int
	MaxTotalExpansion int

	totalExpanded int
}

// New builds a Resolver from model: internal general entities project
// directly; external (non-unparsed) general entities are fetched via
// fetch if provided, otherwise skipped. Values are kept exactly as
// declared — not pre-expanded against each other — so that a document
// that never references a given entity never pays for expanding it.
// Forward references (an entity referring to one declared later) and
// nested references both resolve correctly at lookup time regardless,
// because r.entities is a plain map: resolveDepth looks up whatever name
// it sees at the moment it sees it, independent of declaration order.
// This is also what keeps a multiplicatively-expanding entity chain
// (spec.md §8 scenario 6, "billion laughs") from blowing up memory
// merely by constructing a Resolver — nothing is substituted until
// ResolveText is actually called on document text, at which point
// MaxExpansionDepth/MaxTotalExpansion are already in force (see
// resolveDepth/ResolveText below).
func New(model *dtd.Model, fetch ExternalEntityFetcher) *Resolver {
	r := &Resolver{
		entities:          make(map[string]string, len(model.Entities)),
		MaxExpansionDepth: DefaultMaxExpansionDepth,
		MaxTotalExpansion: DefaultMaxTotalExpansion,
	}

	for name, ent := range model.Entities {
		switch {
		case ent.Kind == dtd.EntityInternal:
			r.entities[name] = ent.Value
		case ent.IsUnparsed():
			// Unparsed (NDATA) entities are never textually substituted.
		case fetch != nil:
			data, err := fetch(ent.SystemID, ent.PublicID)
			if err == nil {
				r.entities[name] = string(data)
			}
		}
	}

	return r
}

// scanEntityRef recognizes `&name;` (not `&#...;`, a character
// reference — those are left untouched, handled by a separate stage per
// spec.md §4.7 step 4) starting at s[pos] (s[pos] == '&').
func scanEntityRef(s string, pos int) (name string, end int, ok bool) {
	if pos+1 >= len(s) || s[pos+1] == '#' {
		return "", 0, false
	}
	semi := strings.IndexByte(s[pos:], ';')
	if semi < 0 {
		return "", 0, false
	}
	name = s[pos+1 : pos+semi]
	if name == "" {
		return "", 0, false
	}
	return name, pos + semi + 1, true
}

// ResolveText expands general entity references in text, enforcing
// MaxExpansionDepth (recursion nesting within this single value) and
// MaxTotalExpansion (cumulative across every ResolveText call on this
// Resolver). Unknown entity names are left intact. A value that exceeds
// either limit is returned unexpanded (the caller, typically
// ResolveEvent, reports the corresponding error event).
func (r *Resolver) ResolveText(text []byte) ([]byte, event.ErrorKind, bool) {
	out, err := r.resolveDepth(string(text), 0)
	if err != "" {
		return text, err, false
	}
	r.totalExpanded += len(out)
	if r.totalExpanded > r.MaxTotalExpansion {
		return text, event.ErrExpansionSizeExceeded, false
	}
	return []byte(out), "", true
}

func (r *Resolver) resolveDepth(s string, depth int) (string, event.ErrorKind) {
	if depth > r.MaxExpansionDepth {
		return s, event.ErrExpansionDepthExceeded
	}
	if !strings.Contains(s, "&") {
		return s, ""
	}

	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		name, end, ok := scanEntityRef(s, i)
		if !ok {
			b.WriteByte(s[i])
			i++
			continue
		}
		repl, known := r.entities[name]
		if !known {
			b.WriteString(s[i:end]) // unknown_entity: left intact
			i = end
			continue
		}
		expanded, errKind := r.resolveDepth(repl, depth+1)
		if errKind != "" {
			return s, errKind
		}
		b.WriteString(expanded)
		if r.totalExpanded+b.Len() > r.MaxTotalExpansion {
			return s, event.ErrExpansionSizeExceeded
		}
		i = end
	}
	return b.String(), ""
}

// ResolveEvent expands general entity references in a characters or
// start_element event's text/attribute values in place, returning the
// (possibly unchanged) event plus an optional error event to interleave
// immediately after it.
func (r *Resolver) ResolveEvent(e event.Event) (event.Event, *event.Event) {
	switch e.Kind {
	case event.KindCharacters:
		resolved, kind, ok := r.ResolveText(e.Text)
		if !ok {
			errEvt := event.Error(kind, "entity expansion limit exceeded", e.Loc)
			return e, &errEvt
		}
		e.Text = resolved
		return e, nil
	case event.KindStartElement:
		for i, a := range e.Attrs {
			resolved, kind, ok := r.ResolveText(a.Value)
			if !ok {
				errEvt := event.Error(kind, "entity expansion limit exceeded in attribute '"+a.Name+"'", e.Loc)
				return e, &errEvt
			}
			e.Attrs[i].Value = resolved
		}
		return e, nil
	default:
		return e, nil
	}
}

// ResolveStream expands entity references across an entire event slice.
func (r *Resolver) ResolveStream(events []event.Event) []event.Event {
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		resolved, errEvt := r.ResolveEvent(e)
		out = append(out, resolved)
		if errEvt != nil {
			out = append(out, *errEvt)
		}
	}
	return out
}
