package tokenizer

import (
	"strings"
	"unicode/utf8"

	"github.com/nanoxml/helium/charclass"
	"github.com/nanoxml/helium/event"
)

// textRun scans a contiguous run of non-markup bytes starting at p.pos
// until the next '<' or end of buffer, validating UTF-8 and the Char
// production along the way, splitting out `]]>` occurrences (forbidden
// outside CDATA) as recoverable errors, and classifying each segment as
// `space` (all XML whitespace) or `characters`.
func (p *blockParser) textRun() {
	segStart := p.pos

	for p.pos < len(p.buf) {
		b := p.buf[p.pos]
		if b == '<' {
			break
		}
		if b == ']' {
			if hasPrefixAt(p.buf, p.pos, "]]>") {
				end := p.pos + 3
				p.emitTextOrSpace(p.buf[segStart:end], p.loc(segStart))
				p.emitError(event.ErrTextCDATAEnd, "']]>' is not allowed outside a CDATA section", p.pos)
				p.advance(3)
				segStart = p.pos
				continue
			}
			if isTruncatedCDATAEndPrefix(p.buf[p.pos:]) {
				// Buffer ends in "]" or "]]": could still complete to the
				// forbidden "]]>" once more input arrives. Resume from the
				// start of the pending segment, so the next block sees the
				// whole run and reports it as a single block would.
				p.setResume(segStart)
				return
			}
		}
		if b < 0x80 {
			p.advance(1)
			continue
		}

		if !utf8.FullRune(p.buf[p.pos:]) && p.pos+utf8.UTFMax > len(p.buf) {
			// Possibly a genuine multi-byte sequence straddling the
			// chunk boundary; give the bridge a chance to supply more.
			p.emitTextOrSpace(p.buf[segStart:p.pos], p.loc(segStart))
			p.setResume(p.pos)
			return
		}
		r, size := utf8.DecodeRune(p.buf[p.pos:])
		if r == utf8.RuneError && size <= 1 {
			p.emitTextOrSpace(p.buf[segStart:p.pos], p.loc(segStart))
			p.emitError(event.ErrInvalidUTF8, "invalid UTF-8 sequence in text", p.pos)
			return // unrecoverable: terminates the current block
		}
		if !charclass.IsChar(r) {
			p.emitTextOrSpace(p.buf[segStart:p.pos], p.loc(segStart))
			p.emitError(event.ErrInvalidChar, "character is outside the XML Char production", p.pos)
			p.advance(size)
			segStart = p.pos
			continue
		}
		p.advance(size)
	}

	p.emitTextOrSpace(p.buf[segStart:p.pos], p.loc(segStart))
}

func hasPrefixAt(buf []byte, pos int, prefix string) bool {
	if pos+len(prefix) > len(buf) {
		return false
	}
	return string(buf[pos:pos+len(prefix)]) == prefix
}

// isTruncatedCDATAEndPrefix reports whether rest (known to start with ']')
// is a strictly shorter prefix of "]]>" than the full 3 bytes — i.e. the
// buffer ran out before it could be determined whether this is the
// forbidden "]]>" sequence or ordinary text.
func isTruncatedCDATAEndPrefix(rest []byte) bool {
	if len(rest) == 0 || len(rest) >= 3 {
		return false
	}
	return strings.HasPrefix("]]>", string(rest))
}

func (p *blockParser) emitTextOrSpace(text []byte, loc event.Location) {
	if len(text) == 0 {
		return
	}
	if isAllXMLWhitespace(text) {
		if p.tok.cfg.DisableSpace {
			return
		}
		p.emit(event.Space(text, loc))
		return
	}
	if p.tok.cfg.DisableCharacters {
		return
	}
	p.emit(event.Characters(text, loc))
}

func isAllXMLWhitespace(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			return false
		}
	}
	return true
}
