package tokenizer

import (
	"strings"

	"github.com/nanoxml/helium/charclass"
	"github.com/nanoxml/helium/event"
)

// elementDispatch handles the byte at p.pos == '<', routing to whichever
// sub-state the following bytes select.
func (p *blockParser) elementDispatch() {
	start := p.pos
	rest := p.buf[p.pos:]

	switch {
	case strings.HasPrefix(string(rest), "<!--"):
		p.comment(start)
	case strings.HasPrefix(string(rest), "<![CDATA["):
		p.cdata(start)
	case strings.HasPrefix(string(rest), "<!DOCTYPE"):
		p.doctype(start)
	case strings.HasPrefix(string(rest), "</"):
		p.endTag(start)
	case strings.HasPrefix(string(rest), "<?"):
		p.piOrProlog(start)
	case len(rest) >= 2 && isNameStartByte(rest[1], p.tok.cfg.Edition):
		p.startTag(start)
	case isTruncatedMarkupPrefix(rest):
		// rest is a proper, not-yet-disambiguated prefix of one of the
		// multi-byte markup openers (e.g. buffer ends in "<!", "<!-",
		// "<![CDATA", "<!DOCTYP"); more input is needed before we can
		// tell which construct this is.
		p.setResume(start)
	default:
		p.advance(1)
		p.emitError(event.ErrInvalidElement, "'<' not followed by a valid element/markup construct", start)
	}
}

// isTruncatedMarkupPrefix reports whether rest is a non-empty, strictly
// shorter prefix of one of the markup openers that elementDispatch
// otherwise recognizes by full string match ("<!--", "<![CDATA[",
// "<!DOCTYPE"). A chunk boundary can split any of these at any byte
// offset; such a split must resume rather than be treated as bogus
// markup or a name-start byte.
func isTruncatedMarkupPrefix(rest []byte) bool {
	if len(rest) == 0 {
		return false
	}
	for _, full := range [...]string{"<!--", "<![CDATA[", "<!DOCTYPE"} {
		if len(rest) < len(full) && strings.HasPrefix(full, string(rest)) {
			return true
		}
	}
	return false
}

// isNameStartByte is a coarse pre-check on the raw byte following '<':
// ASCII name-start bytes are recognized directly; any byte ≥ 0x80 is
// optimistically accepted here and validated properly (as a decoded
// rune) once the name is actually scanned.
func isNameStartByte(b byte, ed charclass.Classifier) bool {
	if b >= 0x80 {
		return true
	}
	return ed.IsNameStartChar(rune(b))
}

// scanName consumes a Name starting at p.pos (assumed to already be
// positioned at a valid NameStartChar), returning the name bytes and
// whether it ran off the end of the buffer (needing more input).
func (p *blockParser) scanName() (name []byte, truncated bool) {
	start := p.pos
	first := true
	for p.pos < len(p.buf) {
		b := p.buf[p.pos]
		if b < 0x80 {
			ok := false
			if first {
				ok = p.tok.cfg.Edition.IsNameStartChar(rune(b))
			} else {
				ok = p.tok.cfg.Edition.IsNameChar(rune(b))
			}
			if !ok {
				break
			}
			p.advance(1)
			first = false
			continue
		}
		if !fullRuneAvailable(p.buf, p.pos) {
			return p.buf[start:p.pos], true
		}
		r, size := decodeRuneAt(p.buf, p.pos)
		ok := false
		if first {
			ok = p.tok.cfg.Edition.IsNameStartChar(r)
		} else {
			ok = p.tok.cfg.Edition.IsNameChar(r)
		}
		if !ok {
			break
		}
		p.advance(size)
		first = false
	}
	return p.buf[start:p.pos], false
}

func skipSpaces(buf []byte, pos int) int {
	for pos < len(buf) && isXMLSpaceByte(buf[pos]) {
		pos++
	}
	return pos
}

func isXMLSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// startTag parses `<name attr="val" ... (/)>` starting at p.pos == '<'.
func (p *blockParser) startTag(start int) {
	loc := p.loc(start)
	p.advance(1) // consume '<'
	name, truncated := p.scanName()
	if truncated {
		p.setResume(start)
		return
	}
	if len(name) == 0 {
		p.emitError(event.ErrInvalidElement, "start tag is missing a name", start)
		return
	}

	var attrs []event.Attr
	seen := map[string]bool{}

	for {
		if p.pos >= len(p.buf) {
			p.setResume(start)
			return
		}
		before := p.pos
		p.pos = skipSpacesTracked(p, p.pos)
		hadSpace := p.pos > before

		if p.pos >= len(p.buf) {
			p.setResume(start)
			return
		}

		if p.buf[p.pos] == '>' {
			p.advance(1)
			p.emit(event.StartElement(string(name), attrs, loc))
			return
		}
		if p.buf[p.pos] == '/' {
			if p.pos+1 >= len(p.buf) {
				p.setResume(start)
				return
			}
			if p.buf[p.pos+1] == '>' {
				p.advance(2)
				p.emit(event.StartElement(string(name), attrs, loc))
				p.emit(event.EndElement(string(name), loc))
				return
			}
			p.emitError(event.ErrExpectedGTOrAttr, "expected '>' after '/'", p.pos)
			p.advance(1)
			continue
		}

		if !hadSpace {
			p.emitError(event.ErrMissingWhitespaceBeforeAttr, "missing whitespace before attribute", p.pos)
		}

		attrStart := p.pos
		if !isNameStartByte(p.buf[p.pos], p.tok.cfg.Edition) {
			p.emitError(event.ErrExpectedGTOrAttr, "expected an attribute name, '/', or '>'", attrStart)
			p.advance(1)
			continue
		}
		attrName, truncated := p.scanName()
		if truncated {
			p.setResume(start)
			return
		}

		p.pos = skipSpacesTracked(p, p.pos)
		if p.pos >= len(p.buf) {
			p.setResume(start)
			return
		}
		if p.buf[p.pos] != '=' {
			p.emitError(event.ErrExpectedEq, "expected '=' after attribute name", p.pos)
			continue
		}
		p.advance(1)
		p.pos = skipSpacesTracked(p, p.pos)
		if p.pos >= len(p.buf) {
			p.setResume(start)
			return
		}

		value, truncated, ok := p.scanAttrValue()
		if truncated {
			p.setResume(start)
			return
		}
		if !ok {
			continue
		}

		key := string(attrName)
		if seen[key] {
			p.emitError(event.ErrAttrUnique, "duplicate attribute '"+key+"'", attrStart)
		}
		seen[key] = true
		attrs = append(attrs, event.Attr{Name: key, Value: value})
	}
}

// skipSpacesTracked advances p past XML whitespace, keeping the
// tokenizer's line/lineStart counters correct.
func skipSpacesTracked(p *blockParser, pos int) int {
	n := 0
	for pos+n < len(p.buf) && isXMLSpaceByte(p.buf[pos+n]) {
		n++
	}
	if n > 0 {
		p.advance(n)
	}
	return p.pos
}

// scanAttrValue parses a quoted attribute value at p.pos, rejecting a
// literal '<' inside it (spec.md §4.2 "Attribute-value constraints").
func (p *blockParser) scanAttrValue() (value []byte, truncated bool, ok bool) {
	if p.buf[p.pos] != '"' && p.buf[p.pos] != '\'' {
		p.emitError(event.ErrExpectedQuote, "expected a quoted attribute value", p.pos)
		return nil, false, false
	}
	quote := p.buf[p.pos]
	p.advance(1)
	start := p.pos
	var out []byte
	segStart := start
	for {
		if p.pos >= len(p.buf) {
			return nil, true, false
		}
		b := p.buf[p.pos]
		if b == quote {
			out = append(out, p.buf[segStart:p.pos]...)
			p.advance(1)
			return out, false, true
		}
		if b == '<' {
			out = append(out, p.buf[segStart:p.pos]...)
			p.emitError(event.ErrAttrLT, "'<' is not allowed in an attribute value", p.pos)
			p.advance(1)
			segStart = p.pos
			continue
		}
		p.advance(1)
	}
}

// endTag parses `</name>` starting at p.pos == '<'.
func (p *blockParser) endTag(start int) {
	loc := p.loc(start)
	p.advance(2) // consume "</"
	if p.pos >= len(p.buf) {
		p.setResume(start)
		return
	}
	if !isNameStartByte(p.buf[p.pos], p.tok.cfg.Edition) {
		p.emitError(event.ErrInvalidCloseTag, "end tag is missing a valid name", start)
		return
	}
	name, truncated := p.scanName()
	if truncated {
		p.setResume(start)
		return
	}
	p.pos = skipSpacesTracked(p, p.pos)
	if p.pos >= len(p.buf) {
		p.setResume(start)
		return
	}
	if p.buf[p.pos] != '>' {
		p.emitError(event.ErrExpectedGT, "expected '>' to close end tag", p.pos)
		return
	}
	p.advance(1)
	p.emit(event.EndElement(string(name), loc))
}
