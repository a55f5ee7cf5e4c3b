package tokenizer

import (
	"testing"

	"github.com/nanoxml/helium/charclass"
	"github.com/nanoxml/helium/event"
)

func newTok() *Tokenizer {
	return New(Config{Edition: charclass.Edition5{}})
}

func TestParseBlockSimpleElements(t *testing.T) {
	tok := newTok()
	events, resume := tok.ParseBlock([]byte(`<a><b/></a>`))
	if resume != -1 {
		t.Fatalf("expected a complete parse, got resume=%d", resume)
	}
	var kinds []event.Kind
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	want := []event.Kind{event.KindStartElement, event.KindStartElement, event.KindEndElement, event.KindEndElement}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("got %v, want %v", kinds, want)
		}
	}
}

func TestParseBlockDuplicateAttrError(t *testing.T) {
	tok := newTok()
	events, _ := tok.ParseBlock([]byte(`<a x="1" x="2"/>`))
	found := false
	for _, e := range events {
		if e.Kind == event.KindError && e.ErrKind == event.ErrAttrUnique {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an attr_unique error event")
	}
}

func TestParseBlockResumeOnUnterminatedTag(t *testing.T) {
	tok := newTok()
	events, resume := tok.ParseBlock([]byte(`<aa`))
	if resume != 0 {
		t.Fatalf("expected resume offset 0, got %d (events=%v)", resume, events)
	}
}

func TestParseBlockProlog(t *testing.T) {
	tok := newTok()
	events, resume := tok.ParseBlock([]byte(`<?xml version="1.0"?><r/>`))
	if resume != -1 {
		t.Fatalf("expected a complete parse, got resume=%d", resume)
	}
	if len(events) < 2 || events[0].Kind != event.KindProlog {
		t.Fatalf("expected a leading prolog event, got %+v", events)
	}
}

func TestParseBlockMisplacedXMLDecl(t *testing.T) {
	tok := newTok()
	_, _ = tok.ParseBlock([]byte(`<a/>`))
	events, _ := tok.ParseBlock([]byte(`<?xml version="1.0"?>`))
	found := false
	for _, e := range events {
		if e.Kind == event.KindError && e.ErrKind == event.ErrMisplacedXMLDecl {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a misplaced_xml_decl error")
	}
}

func TestParseBlockCDATAEmpty(t *testing.T) {
	tok := newTok()
	events, resume := tok.ParseBlock([]byte(`<![CDATA[]]>`))
	if resume != -1 {
		t.Fatalf("expected a complete parse, got resume=%d", resume)
	}
	if len(events) != 1 || events[0].Kind != event.KindCDATA || len(events[0].Text) != 0 {
		t.Fatalf("expected a single empty cdata event, got %+v", events)
	}
}

func TestParseBlockMalformedComment(t *testing.T) {
	tok := newTok()
	events, _ := tok.ParseBlock([]byte(`<!-- -- -->`))
	var kinds []event.Kind
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	if len(kinds) != 2 || kinds[0] != event.KindComment || kinds[1] != event.KindError {
		t.Fatalf("expected [comment, error], got %v", kinds)
	}
}

func TestParseBlockResumeOnTruncatedMarkupPrefixes(t *testing.T) {
	// Each of these is a legitimate, just-truncated-by-a-chunk-boundary
	// prefix of a multi-byte markup opener; none should be treated as
	// bogus markup.
	for _, truncated := range []string{"<!", "<!-", "<![CDATA", "<!DOCTYP"} {
		tok := newTok()
		events, resume := tok.ParseBlock([]byte(truncated))
		if resume != 0 {
			t.Fatalf("%q: expected resume offset 0, got %d (events=%v)", truncated, resume, events)
		}
		for _, e := range events {
			if e.Kind == event.KindError {
				t.Fatalf("%q: unexpected error event %+v", truncated, e)
			}
		}
	}
}

func TestParseBlockTruncatedMarkupPrefixEquivalence(t *testing.T) {
	// Per the ParseBlock contract, a non-negative resume offset means the
	// caller must retain buf[resume:] and prepend it to the next chunk
	// before calling ParseBlock again — exercised here directly (without
	// the bridge) to pin down the raw tokenizer contract.
	full := "<!-- c -->"
	for split := 1; split < len(full); split++ {
		tok := newTok()
		events, resume := tok.ParseBlock([]byte(full[:split]))
		if resume < 0 {
			continue // split landed past the point where resume is needed
		}
		next := append([]byte(nil), full[resume:split]...)
		next = append(next, full[split:]...)
		more, resume2 := tok.ParseBlock(next)
		if resume2 != -1 {
			t.Fatalf("split at %d: expected completion on second block, got resume=%d", split, resume2)
		}
		events = append(events, more...)
		if len(events) != 1 || events[0].Kind != event.KindComment || string(events[0].Text) != " c " {
			t.Fatalf("split at %d: got %+v", split, events)
		}
	}
}

func TestParseBlockResumeOnTruncatedCDATAEndSequence(t *testing.T) {
	// A chunk boundary splitting the forbidden "]]>" sequence must not be
	// silently swallowed as plain text with no error (spec.md §8 invariant
	// 2): "abc]" alone is an incomplete prefix of "abc]]>", so ParseBlock
	// must resume rather than report completion.
	for _, truncated := range []string{"abc]", "abc]]"} {
		tok := newTok()
		events, resume := tok.ParseBlock([]byte(truncated))
		if resume < 0 {
			t.Fatalf("%q: expected a non-negative resume offset, got %d (events=%v)", truncated, resume, events)
		}
		for _, e := range events {
			if e.Kind == event.KindError {
				t.Fatalf("%q: unexpected error event before the sequence is complete: %+v", truncated, e)
			}
		}
	}
}

func TestParseBlockTruncatedCDATAEndEquivalence(t *testing.T) {
	// Single-shot parsing of "abc]]>def" must yield the same event
	// sequence regardless of where a chunk boundary splits the "]]>".
	full := "abc]]>def"

	oneShot := newTok()
	wantEvents, wantResume := oneShot.ParseBlock([]byte(full))
	if wantResume != -1 {
		t.Fatalf("expected single-shot parse to complete, got resume=%d", wantResume)
	}

	for split := 1; split < len(full); split++ {
		tok := newTok()
		events, resume := tok.ParseBlock([]byte(full[:split]))
		if resume < 0 {
			events2, resume2 := tok.ParseBlock(nil)
			if resume2 != -1 {
				t.Fatalf("split at %d: expected completion, got resume=%d", split, resume2)
			}
			events = append(events, events2...)
		} else {
			next := append([]byte(nil), full[resume:split]...)
			next = append(next, full[split:]...)
			more, resume2 := tok.ParseBlock(next)
			if resume2 != -1 {
				t.Fatalf("split at %d: expected completion on second block, got resume=%d", split, resume2)
			}
			events = append(events, more...)
		}
		if len(events) != len(wantEvents) {
			t.Fatalf("split at %d: got %+v, want %+v", split, events, wantEvents)
		}
		for i := range wantEvents {
			if events[i].Kind != wantEvents[i].Kind || events[i].ErrKind != wantEvents[i].ErrKind || string(events[i].Text) != string(wantEvents[i].Text) {
				t.Fatalf("split at %d: event %d got %+v, want %+v", split, i, events[i], wantEvents[i])
			}
		}
	}
}

func TestParseBlockDoctypeQuotedGT(t *testing.T) {
	tok := newTok()
	events, resume := tok.ParseBlock([]byte(`<!DOCTYPE d [<!ENTITY a ">">]>`))
	if resume != -1 {
		t.Fatalf("expected a complete parse, got resume=%d", resume)
	}
	if len(events) != 1 || events[0].Kind != event.KindDTD {
		t.Fatalf("expected a single dtd event, got %+v", events)
	}
}
