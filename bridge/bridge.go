// Package bridge drives a tokenizer across a sequence of opaque byte
// chunks, implementing the "mini-block" leftover strategy (SPEC_FULL.md
// §4.3): rather than prepending an entire leftover buffer to every new
// chunk, it locates the next chunk's first '>' and tries the tokenizer
// on just `leftover ++ chunk[:firstGT]` first, retrying at the next '>'
// only if that still doesn't resolve the pending construct. This bounds
// the work done per chunk regardless of how large the chunk is.
package bridge

import (
	"bytes"
	"io"

	"github.com/nanoxml/helium/event"
	"github.com/nanoxml/helium/tokenizer"
)

// Bridge wraps a *tokenizer.Tokenizer with the leftover-buffer state the
// mini-block strategy needs across Feed calls.
type Bridge struct {
	tok      *tokenizer.Tokenizer
	leftover []byte
}

// New returns a Bridge driving tok.
func New(tok *tokenizer.Tokenizer) *Bridge {
	return &Bridge{tok: tok}
}

// Feed parses one incoming chunk, returning the events it determines.
// Any unresolved trailing construct, and any bytes after the chunk's last
// '>' (a text run that may continue in the next chunk), is retained
// internally and folded into the next Feed (or Finish) call.
func (b *Bridge) Feed(chunk []byte) []event.Event {
	var out []event.Event
	searchFrom := 0

	for {
		if len(b.leftover) == 0 {
			rest := chunk[searchFrom:]
			cut := bytes.LastIndexByte(rest, '>') + 1
			events, resume := b.tok.ParseBlock(rest[:cut])
			out = append(out, events...)
			if resume < 0 {
				b.leftover = append([]byte(nil), rest[cut:]...)
				return out
			}
			b.leftover = append([]byte(nil), rest[resume:]...)
			return out
		}

		idx := bytes.IndexByte(chunk[searchFrom:], '>')
		if idx < 0 {
			b.leftover = append(b.leftover, chunk[searchFrom:]...)
			return out
		}
		miniEnd := searchFrom + idx + 1

		mini := make([]byte, 0, len(b.leftover)+(miniEnd-searchFrom))
		mini = append(mini, b.leftover...)
		mini = append(mini, chunk[searchFrom:miniEnd]...)

		events, resume := b.tok.ParseBlock(mini)
		out = append(out, events...)

		if resume < 0 {
			b.leftover = nil
			searchFrom = miniEnd
			continue // leftover is now empty: next pass parses the rest of chunk directly
		}

		b.leftover = append([]byte(nil), mini[resume:]...)
		searchFrom = miniEnd
		// mini didn't resolve the pending construct; keep searching chunk
		// for the next '>' with the (now larger) leftover in hand.
	}
}

// Finish makes a final parsing pass over any remaining leftover at EOF,
// looping while the tokenizer makes forward progress (spec.md §4.3: "On
// EOF: if leftover is non-empty, make a final parse pass with it,
// looping while the tokenizer makes forward progress on leftover").
// Forward progress stops when resume==0: the entire remaining buffer
// belongs to one construct that no further input will ever complete.
func (b *Bridge) Finish() []event.Event {
	var out []event.Event
	for len(b.leftover) > 0 {
		events, resume := b.tok.ParseBlock(b.leftover)
		out = append(out, events...)
		if resume < 0 {
			b.leftover = nil
			return out
		}
		if resume == 0 {
			return out
		}
		b.leftover = b.leftover[resume:]
	}
	return out
}

// Stream drives chunks through Feed and Finish, delivering events on a
// channel that closes once chunks is exhausted and drained.
func (b *Bridge) Stream(chunks <-chan []byte) <-chan event.Event {
	out := make(chan event.Event)
	go func() {
		defer close(out)
		for chunk := range chunks {
			for _, e := range b.Feed(chunk) {
				out <- e
			}
		}
		for _, e := range b.Finish() {
			out <- e
		}
	}()
	return out
}

// StreamBytes reads r in chunkSize pieces and streams the resulting
// events, a convenience wrapper over Stream for the common case of a
// plain io.Reader source.
func StreamBytes(tok *tokenizer.Tokenizer, r io.Reader, chunkSize int) <-chan event.Event {
	if chunkSize <= 0 {
		chunkSize = 4096
	}
	chunks := make(chan []byte)
	b := New(tok)
	out := b.Stream(chunks)

	go func() {
		defer close(chunks)
		buf := make([]byte, chunkSize)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				cp := make([]byte, n)
				copy(cp, buf[:n])
				chunks <- cp
			}
			if err != nil {
				return
			}
		}
	}()
	return out
}
