package helium_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nanoxml/helium"
	"github.com/nanoxml/helium/sax"
)

// recorder mirrors the teacher's own newEventEmitter test harness
// (originally a golden-file comparison against a fixtures directory that
// wasn't part of the retrieved file set here): it formats every event
// into a line of text so a test can assert on the resulting trace
// directly instead of against an external golden file.
func recorder() (*sax.SAX, *[]string) {
	var lines []string
	s := sax.New()
	s.StartDocumentHandler = func(_ sax.Context) error {
		lines = append(lines, "StartDocument()")
		return nil
	}
	s.EndDocumentHandler = func(_ sax.Context) error {
		lines = append(lines, "EndDocument()")
		return nil
	}
	s.StartElementHandler = func(_ sax.Context, elem sax.ParsedElement) error {
		lines = append(lines, fmt.Sprintf("StartElement(%s, %d attrs)", elem.Name(), len(elem.Attributes())))
		return nil
	}
	s.EndElementHandler = func(_ sax.Context, elem sax.ParsedElement) error {
		lines = append(lines, fmt.Sprintf("EndElement(%s)", elem.Name()))
		return nil
	}
	s.CharactersHandler = func(_ sax.Context, content []byte) error {
		lines = append(lines, fmt.Sprintf("Characters(%s)", content))
		return nil
	}
	s.CommentHandler = func(_ sax.Context, content []byte) error {
		lines = append(lines, fmt.Sprintf("Comment(%s)", content))
		return nil
	}
	s.ErrorHandler = func(_ sax.Context, kind, detail string, line int, offset int64) error {
		lines = append(lines, fmt.Sprintf("Error(%s)", kind))
		return nil
	}
	return s, &lines
}

func TestParseSimpleElements(t *testing.T) {
	s, lines := recorder()
	p := helium.NewParser()
	p.SetSAXHandler(s)

	_, err := p.Parse([]byte(`<a><b/></a>`))
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"StartDocument()",
		"StartElement(a, 0 attrs)",
		"StartElement(b, 0 attrs)",
		"EndElement(b)",
		"EndElement(a)",
		"EndDocument()",
	}, *lines)
}

func TestParseDuplicateAttrError(t *testing.T) {
	s, lines := recorder()
	p := helium.NewParser()
	p.SetSAXHandler(s)

	_, err := p.Parse([]byte(`<a x="1" x="2"/>`))
	assert.NoError(t, err)
	assert.Contains(t, *lines, "Error(attr_unique)")
}

func TestParseXMLDeclaration(t *testing.T) {
	s, lines := recorder()
	p := helium.NewParser()
	p.SetSAXHandler(s)

	_, err := p.Parse([]byte(`<?xml version="1.0"?><r/>`))
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"StartDocument()",
		"StartElement(r, 0 attrs)",
		"EndElement(r)",
		"EndDocument()",
	}, *lines)
}

func TestParsePEDefinitionAndTrickyCharRef(t *testing.T) {
	p := helium.NewParser()
	doc := `<!DOCTYPE d [<!ENTITY % x "<!ENTITY tricky 'ok'>"><!ENTITY % y "&#37;x;">%y;]><d/>`
	model, err := p.Parse([]byte(doc))
	assert.NoError(t, err)
	if assert.NotNil(t, model) {
		ent, ok := model.Entities["tricky"]
		if assert.True(t, ok, "expected entity 'tricky' to be defined via two-stage PE expansion") {
			assert.Equal(t, "ok", ent.Value)
		}
	}
}

func TestParseCommentAndCharacters(t *testing.T) {
	s, lines := recorder()
	p := helium.NewParser()
	p.SetSAXHandler(s)

	_, err := p.Parse([]byte(`<a>hello<!-- note --></a>`))
	assert.NoError(t, err)
	assert.Contains(t, *lines, "Characters(hello)")
	assert.Contains(t, *lines, "Comment( note )")
}
