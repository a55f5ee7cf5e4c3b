// Package helium is the top-level entry point: it wires the chunk
// bridge, the block tokenizer, the DTD subsystem, and the entity
// resolver into the single-call Parser API a SAX-style consumer drives
// (SPEC_FULL.md §2 "Data flow").
package helium

import (
	"golang.org/x/net/html/charset"

	"github.com/nanoxml/helium/bridge"
	"github.com/nanoxml/helium/charclass"
	"github.com/nanoxml/helium/dtd"
	"github.com/nanoxml/helium/entityresolve"
	"github.com/nanoxml/helium/event"
	"github.com/nanoxml/helium/internal/debug"
	"github.com/nanoxml/helium/sax"
	"github.com/nanoxml/helium/tokenizer"
)

// SAX is the handler type Parser.SetSAXHandler accepts; it is exactly
// *sax.SAX, aliased here so callers that only ever import package helium
// (the way the teacher's own test harness does) never need to reference
// the sax subpackage by name for this one type.
type SAX = *sax.SAX

// Config selects the parsing edition and the optional external-resource
// hooks. The zero Config is a ready-to-use Edition 5 parser with no
// external-entity/external-DTD fetching.
type Config struct {
	// Edition selects the NameStartChar/NameChar rule set. Nil defaults
	// to charclass.Edition5{}.
	Edition charclass.Classifier

	// BasePath is the path of the document that external SYSTEM
	// identifiers resolve relative to (they are joined to its directory),
	// when Parse's input has no URI of its own.
	BasePath string

	// ExternalDTDResolver fetches an external DTD subset's bytes; nil
	// means external subsets are never fetched (internal-subset-only
	// parsing still proceeds normally).
	ExternalDTDResolver dtd.Resolver

	// ExternalEntityFetcher fetches an external general entity's
	// replacement text; nil means external entities are skipped during
	// resolution.
	ExternalEntityFetcher entityresolve.ExternalEntityFetcher

	MaxPEIterations       int
	MaxExpansionDepth     int
	MaxTotalExpansion     int
}

// Parser drives one document's worth of bytes through the bridge,
// tokenizer, DTD subsystem, and entity resolver, dispatching the
// resulting event stream to a caller-supplied SAX handler.
type Parser struct {
	cfg     Config
	handler SAX
	ctx     sax.Context
}

// NewParser returns a Parser with cfg's zero value defaulted
// (Edition 5, no external resolution).
func NewParser(cfg ...Config) *Parser {
	var c Config
	if len(cfg) > 0 {
		c = cfg[0]
	}
	if c.Edition == nil {
		c.Edition = charclass.Edition5{}
	}
	return &Parser{cfg: c}
}

// SetSAXHandler registers h as the handler Parse dispatches events to.
func (p *Parser) SetSAXHandler(h SAX) {
	p.handler = h
}

// SetContext sets the opaque context value threaded through every
// handler call as their first argument.
func (p *Parser) SetContext(ctx sax.Context) {
	p.ctx = ctx
}

// Parse tokenizes data in a single pass, builds a DTD model from any
// DOCTYPE content encountered, resolves general entity references
// against it, and dispatches the full event stream (wrapped in
// synthesized start_document/end_document events) to the registered SAX
// handler. It returns the DTD model (nil if the document had none).
func (p *Parser) Parse(data []byte) (*dtd.Model, error) {
	if enc := detectUTF16(data); enc != "" {
		p.dispatch(event.Error(event.ErrUTF16, "UTF-16 byte order mark detected ("+enc+"); transcode to UTF-8 before parsing", event.Location{}))
		return nil, nil
	}

	tok := tokenizer.New(tokenizer.Config{Edition: p.cfg.Edition})
	br := bridge.New(tok)
	events := br.Feed(data)
	events = append(events, br.Finish()...)

	var model *dtd.Model
	for _, e := range events {
		if e.Kind != event.KindDTD {
			continue
		}
		m, err := p.buildModel(e)
		if err != nil {
			return nil, err
		}
		model = m
		break // exactly one DOCTYPE is well-formed-XML legal
	}

	if model != nil {
		resolver := entityresolve.New(model, p.cfg.ExternalEntityFetcher)
		if p.cfg.MaxExpansionDepth > 0 {
			resolver.MaxExpansionDepth = p.cfg.MaxExpansionDepth
		}
		if p.cfg.MaxTotalExpansion > 0 {
			resolver.MaxTotalExpansion = p.cfg.MaxTotalExpansion
		}
		events = resolver.ResolveStream(events)
	}

	if p.handler != nil && p.handler.StartDocumentHandler != nil {
		if err := p.handler.StartDocumentHandler(p.ctx); err != nil {
			return model, err
		}
	}
	for _, e := range events {
		if err := p.dispatch(e); err != nil {
			return model, err
		}
	}
	if p.handler != nil && p.handler.EndDocumentHandler != nil {
		if err := p.handler.EndDocumentHandler(p.ctx); err != nil {
			return model, err
		}
	}
	return model, nil
}

func (p *Parser) dispatch(e event.Event) error {
	if p.handler == nil {
		return nil
	}
	return p.handler.Dispatch(p.ctx, e)
}

// buildModel parses a `dtd` event's raw DOCTYPE body into a *dtd.Model:
// header parsing, internal-subset PE processing and declaration
// parsing, then (if an external identifier is present and a resolver is
// configured) external-subset fetching merged with internal-subset
// precedence.
func (p *Parser) buildModel(e event.Event) (*dtd.Model, error) {
	header, err := dtd.ParseDoctypeHeader(string(e.Text))
	if err != nil {
		return nil, err
	}
	model := dtd.NewModel()
	model.RootElement = header.RootElement

	internalPEValues := map[string]string{}
	if header.InternalSubset != "" {
		expanded, peDefs, err := dtd.ProcessPE(header.InternalSubset, false, p.cfg.MaxPEIterations)
		if err != nil {
			return nil, err
		}
		for name, def := range peDefs {
			if !def.External {
				internalPEValues[name] = def.Value
			}
		}
		if err := dtd.ParseDeclarations(expanded, p.cfg.Edition, model, false); err != nil {
			return nil, err
		}
		for name, def := range peDefs {
			if _, exists := model.ParamEntities[name]; !exists {
				model.ParamEntities[name] = def
			}
		}
	}

	if header.HasExternal && p.cfg.ExternalDTDResolver != nil {
		debug.Printf("fetching external DTD subset: system=%q public=%q", header.SystemID, header.PublicID)
		external, err := dtd.ParseExternalDTD(p.cfg.ExternalDTDResolver, header.SystemID, p.cfg.BasePath, internalPEValues, p.cfg.Edition, p.cfg.MaxPEIterations)
		if err != nil {
			return nil, err
		}
		model = dtd.MergeExternal(model, external)
		model.RootElement = header.RootElement
	}

	return model, nil
}

// detectUTF16 returns a non-empty encoding name ("utf-16le"/"utf-16be")
// if data opens with the corresponding byte-order mark, using
// golang.org/x/net/html/charset's BOM sniffing rather than hand-rolling
// the two-byte comparison.
func detectUTF16(data []byte) string {
	_, name, certain := charset.DetermineEncoding(data, "")
	if !certain {
		return ""
	}
	switch name {
	case "utf-16le", "utf-16be":
		return name
	}
	return ""
}
