// Package dtd implements the DTD subsystem: parameter-entity expansion,
// the internal/external DTD grammar, conditional sections, and the
// resulting immutable Model (SPEC_FULL.md §4.4-§4.6).
//
// The type shapes here are adapted from the teacher's DTD-related types in
// interface.go (DTD, ElementDecl, AttributeDecl, Entity, EntityType,
// ElementContentType/ElementContentOccur), generalized from a
// tree-of-pointers document-node shape (this module never builds a
// document tree — that is the explicitly out-of-scope DOM layer, see
// DESIGN.md) to the flat map-of-declarations shape spec.md §3 describes.
package dtd

// Model is the immutable result of parsing a DOCTYPE's content (internal
// subset, external subset, or both merged). It is built once per `dtd`
// event and never mutated afterward (spec.md §3 "Ownership and
// lifecycle").
type Model struct {
	Elements      map[string]*ContentModel
	Attributes    map[string][]AttributeDef
	Entities      map[string]*Entity
	ParamEntities map[string]*ParamEntity
	Notations     map[string]*Notation
	RootElement   string
}

// NewModel returns an empty Model with all maps initialized.
func NewModel() *Model {
	return &Model{
		Elements:      make(map[string]*ContentModel),
		Attributes:    make(map[string][]AttributeDef),
		Entities:      make(map[string]*Entity),
		ParamEntities: make(map[string]*ParamEntity),
		Notations:     make(map[string]*Notation),
	}
}

// ContentType discriminates a ContentModel's shape, adapted from the
// teacher's ElementTypeVal/ElementContentType (interface.go) but
// collapsed to the variants spec.md §3 names directly: empty, any,
// pcdata, seq, choice, mixed.
type ContentType int

const (
	ContentEmpty ContentType = iota
	ContentAny
	ContentPCDATA
	ContentSeq
	ContentChoice
	ContentMixed
)

func (t ContentType) String() string {
	switch t {
	case ContentEmpty:
		return "EMPTY"
	case ContentAny:
		return "ANY"
	case ContentPCDATA:
		return "#PCDATA"
	case ContentSeq:
		return "seq"
	case ContentChoice:
		return "choice"
	case ContentMixed:
		return "mixed"
	}
	return "invalid"
}

// Occur is the occurrence indicator that may wrap a simple element name
// or a group: '?', '*', '+', or none. Adapted from the teacher's
// ElementContentOccur (interface.go), renamed to match spec.md §3's
// `{one|optional|zero_or_more|one_or_more}` vocabulary.
type Occur int

const (
	OccurOne Occur = iota
	OccurOptional
	OccurZeroOrMore
	OccurOneOrMore
)

func (o Occur) String() string {
	switch o {
	case OccurOptional:
		return "?"
	case OccurZeroOrMore:
		return "*"
	case OccurOneOrMore:
		return "+"
	}
	return ""
}

// ContentModel is a node in an ELEMENT declaration's content-spec tree.
// For ContentSeq/ContentChoice, Items holds the child nodes in source
// order (a simple Name with no Items is a leaf element reference). For
// ContentMixed, Names holds the element names allowed as mixed-content
// children (PCDATA is implicit). Occur wraps the whole node.
type ContentModel struct {
	Type  ContentType
	Name  string // leaf element reference (Type is the implicit OccurOne/simple case)
	Items []*ContentModel
	Names []string // ContentMixed only
	Occur Occur
}

// AttributeType enumerates the ATTLIST attribute type keywords plus the
// two parameterized forms (enumeration, notation).
type AttributeType int

const (
	AttrCDATA AttributeType = iota
	AttrID
	AttrIDRef
	AttrIDRefs
	AttrEntity
	AttrEntities
	AttrNmtoken
	AttrNmtokens
	AttrEnumeration
	AttrNotation
)

func (t AttributeType) String() string {
	switch t {
	case AttrCDATA:
		return "CDATA"
	case AttrID:
		return "ID"
	case AttrIDRef:
		return "IDREF"
	case AttrIDRefs:
		return "IDREFS"
	case AttrEntity:
		return "ENTITY"
	case AttrEntities:
		return "ENTITIES"
	case AttrNmtoken:
		return "NMTOKEN"
	case AttrNmtokens:
		return "NMTOKENS"
	case AttrEnumeration:
		return "ENUMERATION"
	case AttrNotation:
		return "NOTATION"
	}
	return "invalid"
}

// DefaultKind enumerates the ATTLIST default-declaration forms.
type DefaultKind int

const (
	DefaultRequired DefaultKind = iota
	DefaultImplied
	DefaultFixed
	DefaultValue
)

// AttributeDef is one (name, type, default) triple from an ATTLIST
// declaration. Multiple ATTLIST declarations for the same element name
// append to the same slice in Model.Attributes, preserving declaration
// order (spec.md §3 invariants).
type AttributeDef struct {
	Name     string
	Type     AttributeType
	Values   []string // enumeration / notation member list
	Default  DefaultKind
	Value    string // DefaultFixed / DefaultValue
}

// EntityKind enumerates the general-entity declaration forms: internal,
// external SYSTEM, and external PUBLIC. The NDATA-qualified (unparsed)
// forms are EntityExternalSystem/EntityExternalPublic with NData set.
type EntityKind int

const (
	EntityInternal EntityKind = iota
	EntityExternalSystem
	EntityExternalPublic
)

// Entity is a general entity definition.
type Entity struct {
	Name       string
	Kind       EntityKind
	Value      string // EntityInternal: replacement text (general refs left unexpanded)
	SystemID   string
	PublicID   string
	NData      string // notation name for unparsed external entities; "" if parsed
}

// IsUnparsed reports whether this is an external-unparsed (NDATA) entity.
func (e *Entity) IsUnparsed() bool { return e.NData != "" }

// ParamEntity is a parameter-entity definition (declared with `%`).
type ParamEntity struct {
	Name     string
	Value    string // internal PE: value, with character refs already expanded
	External bool
	SystemID string
	PublicID string
}

// Notation is a NOTATION declaration: SYSTEM, PUBLIC, or PUBLIC+SYSTEM.
type Notation struct {
	Name     string
	SystemID string // "" if PUBLIC-only
	PublicID string // "" if SYSTEM-only
}
