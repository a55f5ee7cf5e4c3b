package tokenizer

import (
	"strings"

	"github.com/nanoxml/helium/event"
)

// comment parses `<!--...-->` starting at p.pos == '<', flagging a
// malformed comment (an internal "--" not immediately followed by the
// closing ">") without discarding its text (spec.md §4.2, §8 scenario
// "<!-- -- -->").
func (p *blockParser) comment(start int) {
	loc := p.loc(start)
	p.advance(4) // consume "<!--"
	bodyStart := p.pos
	malformed := false

	for {
		idx := strings.Index(string(p.buf[p.pos:]), "--")
		if idx < 0 {
			p.setResume(start)
			return
		}
		ddPos := p.pos + idx
		if ddPos+2 < len(p.buf) && p.buf[ddPos+2] == '>' {
			body := p.buf[bodyStart:ddPos]
			p.advanceTo(ddPos)
			p.advance(3) // consume "-->"
			if !p.tok.cfg.DisableComment {
				p.emit(event.Comment(body, loc))
			}
			if malformed {
				p.emitError(event.ErrComment, "comment contains '--' or ends with '--->'", start)
			}
			return
		}
		if ddPos+2 >= len(p.buf) {
			p.setResume(start)
			return
		}
		malformed = true
		p.advanceTo(ddPos + 1)
	}
}

// advanceTo advances p.pos (and line tracking) up to the absolute
// buffer offset target.
func (p *blockParser) advanceTo(target int) {
	if target > p.pos {
		p.advance(target - p.pos)
	}
}

// cdata parses `<![CDATA[...]]>` starting at p.pos == '<'.
func (p *blockParser) cdata(start int) {
	loc := p.loc(start)
	p.advance(9) // consume "<![CDATA["
	bodyStart := p.pos

	idx := strings.Index(string(p.buf[p.pos:]), "]]>")
	if idx < 0 {
		p.setResume(start)
		return
	}
	end := p.pos + idx
	body := p.buf[bodyStart:end]
	p.advanceTo(end)
	p.advance(3)
	if !p.tok.cfg.DisableCDATA {
		p.emit(event.CDATA(body, loc))
	}
}

// doctype parses `<!DOCTYPE ... [internal subset]? >` starting at
// p.pos == '<', tracking bracket depth and quote state (and skipping
// comment interiors, where quote state is inactive) so an embedded '>'
// inside a quoted literal or a comment never terminates the DOCTYPE
// early (spec.md §4.2 "DOCTYPE extraction").
func (p *blockParser) doctype(start int) {
	loc := p.loc(start)
	p.advance(9) // consume "<!DOCTYPE"
	bodyStart := p.pos

	depth := 0
	var quote byte
	i := p.pos
	for i < len(p.buf) {
		c := p.buf[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			i++
			continue
		}
		switch {
		case c == '"' || c == '\'':
			quote = c
			i++
		case strings.HasPrefix(string(p.buf[i:]), "<!--"):
			end := indexFromBuf(p.buf, i+4, "-->")
			if end < 0 {
				p.setResume(start)
				return
			}
			i = end + 3
		case c == '[':
			depth++
			i++
		case c == ']':
			depth--
			i++
		case c == '>' && depth <= 0:
			body := p.buf[bodyStart:i]
			p.advanceTo(i)
			p.advance(1)
			p.emit(event.DTD(body, loc))
			return
		default:
			i++
		}
	}
	p.setResume(start)
}

func indexFromBuf(buf []byte, from int, sub string) int {
	if from > len(buf) {
		return -1
	}
	idx := strings.Index(string(buf[from:]), sub)
	if idx < 0 {
		return -1
	}
	return from + idx
}

// piOrProlog parses `<?target ... ?>`, dispatching the `xml` target at
// absolute offset 0 to the prolog event and rejecting it everywhere else
// (spec.md §4.2 "XML declaration placement").
func (p *blockParser) piOrProlog(start int) {
	loc := p.loc(start)
	p.advance(2) // consume "<?"
	name, truncated := p.scanName()
	if truncated {
		p.setResume(start)
		return
	}
	if len(name) == 0 {
		p.emitError(event.ErrInvalidPITarget, "processing instruction is missing a target", start)
		return
	}
	target := string(name)

	isXMLCI := strings.EqualFold(target, "xml")
	if isXMLCI && target != "xml" {
		p.emitError(event.ErrReservedPITarget, "processing instruction target 'xml' is reserved (case-insensitive)", start)
		p.skipToPIEnd(start)
		return
	}
	if target == "xml" {
		if loc.Offset != 0 {
			p.emitError(event.ErrMisplacedXMLDecl, "the XML declaration may only appear at the start of the document", start)
			p.skipToPIEnd(start)
			return
		}
		p.prologBody(start, loc)
		return
	}

	data, truncated := p.scanPIData()
	if truncated {
		p.setResume(start)
		return
	}
	if !p.tok.cfg.DisablePI {
		p.emit(event.ProcessingInstruction(target, data, loc))
	}
}

// scanPIData consumes up to and including the terminating "?>" and
// returns the data in between (trimmed of exactly one leading
// whitespace separator per XML grammar, if present).
func (p *blockParser) scanPIData() (data []byte, truncated bool) {
	if p.pos < len(p.buf) && isXMLSpaceByte(p.buf[p.pos]) {
		p.advance(1)
	}
	start := p.pos
	idx := strings.Index(string(p.buf[p.pos:]), "?>")
	if idx < 0 {
		return nil, true
	}
	end := p.pos + idx
	data = p.buf[start:end]
	p.advanceTo(end)
	p.advance(2)
	return data, false
}

// skipToPIEnd discards the remainder of a rejected PI up to "?>" without
// emitting a processing_instruction event.
func (p *blockParser) skipToPIEnd(start int) {
	idx := strings.Index(string(p.buf[p.pos:]), "?>")
	if idx < 0 {
		p.setResume(start)
		return
	}
	p.advanceTo(p.pos + idx + 2)
}

// prologBody parses the XML declaration's pseudo-attributes
// (version/encoding/standalone) using the same attribute grammar as a
// start tag, terminated by "?>" instead of ">"/"/>" .
func (p *blockParser) prologBody(start int, loc event.Location) {
	var attrs []event.Attr
	for {
		p.pos = skipSpacesTracked(p, p.pos)
		if p.pos >= len(p.buf) {
			p.setResume(start)
			return
		}
		if p.buf[p.pos] == '?' {
			if p.pos+1 >= len(p.buf) {
				p.setResume(start)
				return
			}
			if p.buf[p.pos+1] != '>' {
				p.emitError(event.ErrMalformedXMLDecl, "expected '?>' to close the XML declaration", p.pos)
				p.advance(1)
				continue
			}
			p.advance(2)
			if !p.tok.cfg.DisableProlog {
				p.emit(event.Prolog(attrs, loc))
			}
			return
		}
		if !isNameStartByte(p.buf[p.pos], p.tok.cfg.Edition) {
			p.emitError(event.ErrMalformedXMLDecl, "unexpected character in XML declaration", p.pos)
			p.advance(1)
			continue
		}
		name, truncated := p.scanName()
		if truncated {
			p.setResume(start)
			return
		}
		p.pos = skipSpacesTracked(p, p.pos)
		if p.pos >= len(p.buf) || p.buf[p.pos] != '=' {
			p.emitError(event.ErrExpectedEq, "expected '=' in XML declaration", p.pos)
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
		if ok {
			attrs = append(attrs, event.Attr{Name: string(name), Value: value})
		}
	}
}
