package sax

import "github.com/nanoxml/helium/event"

// element is the concrete ParsedElement backing every StartElementHandler
// / EndElementHandler call: namespace prefix/URI are always empty since
// this parser never performs namespace resolution (spec.md Out of
// scope — namespace resolution is a separate, external module).
type element struct {
	name  string
	attrs []attribute
}

func (e element) Prefix() string            { return "" }
func (e element) URI() string                { return "" }
func (e element) LocalName() string          { return e.name }
func (e element) Name() string               { return e.name }
func (e element) Attributes() []ParsedAttribute {
	out := make([]ParsedAttribute, len(e.attrs))
	for i, a := range e.attrs {
		out[i] = a
	}
	return out
}

type attribute struct {
	name  string
	value string
}

func (a attribute) Prefix() string    { return "" }
func (a attribute) LocalName() string { return a.name }
func (a attribute) Value() string     { return a.value }

// SAX is a struct-of-handler-funcs implementation of ContentHandler,
// DTDHandler, DeclHandler, and LexicalHandler: a caller sets only the
// handler fields it cares about, leaving the rest nil (dispatch skips
// nil handlers rather than calling an empty default).
type SAX struct {
	SetDocumentLocatorHandler func(ctx Context, loc DocumentLocator) error
	StartDocumentHandler      func(ctx Context) error
	EndDocumentHandler        func(ctx Context) error
	StartElementHandler       func(ctx Context, elem ParsedElement) error
	EndElementHandler         func(ctx Context, elem ParsedElement) error
	CharactersHandler         func(ctx Context, content []byte) error
	IgnorableWhitespaceHandler func(ctx Context, content []byte) error
	ProcessingInstructionHandler func(ctx Context, target string, data string) error
	SkippedEntityHandler      func(ctx Context, name string) error

	CommentHandler   func(ctx Context, content []byte) error
	StartCDATAHandler func(ctx Context) error
	EndCDATAHandler   func(ctx Context) error
	StartDTDHandler   func(ctx Context, name, publicID, systemID string) error
	EndDTDHandler     func(ctx Context) error
	StartEntityHandler func(ctx Context, name string) error
	EndEntityHandler   func(ctx Context, name string) error

	NotationDeclHandler         func(ctx Context, name, publicID, systemID string) error
	UnparsedEntityDeclHandler   func(ctx Context, name, publicID, systemID, notation string) error
	AttributeDeclHandler        func(ctx Context, eName, aName, typ, mode, value string) error
	ElementDeclHandler          func(ctx Context, name string, typ int, content ElementContent) error
	ExternalEntityDeclHandler   func(ctx Context, name, publicID, systemID string) error
	InternalEntityDeclHandler   func(ctx Context, name, value string) error

	ErrorHandler func(ctx Context, kind string, detail string, line int, offset int64) error
}

// New returns a SAX with every handler field nil.
func New() *SAX {
	return &SAX{}
}

// Dispatch feeds one event.Event to the matching handler field, in the
// same vocabulary newEventEmitter (the teacher's own test harness) wires
// up by hand. Unset handlers are silently skipped. ctx is passed through
// unexamined, exactly as sax.Context's doc comment describes.
func (s *SAX) Dispatch(ctx Context, e event.Event) error {
	switch e.Kind {
	case event.KindStartDocument:
		if s.StartDocumentHandler != nil {
			return s.StartDocumentHandler(ctx)
		}
	case event.KindEndDocument:
		if s.EndDocumentHandler != nil {
			return s.EndDocumentHandler(ctx)
		}
	case event.KindStartElement:
		if s.StartElementHandler != nil {
			return s.StartElementHandler(ctx, toParsedElement(e))
		}
	case event.KindEndElement:
		if s.EndElementHandler != nil {
			return s.EndElementHandler(ctx, toParsedElement(e))
		}
	case event.KindCharacters:
		if s.CharactersHandler != nil {
			return s.CharactersHandler(ctx, e.Text)
		}
	case event.KindSpace:
		if s.IgnorableWhitespaceHandler != nil {
			return s.IgnorableWhitespaceHandler(ctx, e.Text)
		}
	case event.KindComment:
		if s.CommentHandler != nil {
			return s.CommentHandler(ctx, e.Text)
		}
	case event.KindCDATA:
		if s.StartCDATAHandler != nil {
			if err := s.StartCDATAHandler(ctx); err != nil {
				return err
			}
		}
		if s.CharactersHandler != nil {
			if err := s.CharactersHandler(ctx, e.Text); err != nil {
				return err
			}
		}
		if s.EndCDATAHandler != nil {
			return s.EndCDATAHandler(ctx)
		}
	case event.KindDTD:
		if s.StartDTDHandler != nil {
			if err := s.StartDTDHandler(ctx, "", "", ""); err != nil {
				return err
			}
		}
		if s.EndDTDHandler != nil {
			return s.EndDTDHandler(ctx)
		}
	case event.KindProcessingInstruction:
		if s.ProcessingInstructionHandler != nil {
			return s.ProcessingInstructionHandler(ctx, e.Target, string(e.PIData))
		}
	case event.KindError:
		if s.ErrorHandler != nil {
			return s.ErrorHandler(ctx, string(e.ErrKind), e.Detail, e.Loc.Line, e.Loc.Offset)
		}
	}
	return nil
}

func toParsedElement(e event.Event) ParsedElement {
	attrs := make([]attribute, len(e.Attrs))
	for i, a := range e.Attrs {
		attrs[i] = attribute{name: a.Name, value: string(a.Value)}
	}
	return element{name: e.Name, attrs: attrs}
}
