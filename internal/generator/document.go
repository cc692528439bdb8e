// internal/generator/document.go
package generator

import (
	"bytes"

	"github.com/beevik/etree"

	xmlerrors "xmlgen-service/internal/common/errors"
	"xmlgen-service/internal/common/logger"
)

// LoadTemplate parses a byte stream into a mutable document tree. The
// parsed tree is read-only for the job: every copy works on a deep clone.
func LoadTemplate(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, xmlerrors.NewTemplateParseError(err)
	}
	if doc.Root() == nil {
		return nil, xmlerrors.NewInvalidParameterError("template", "document has no root element")
	}
	return doc, nil
}

// Serialize emits the tree as UTF-8 bytes with 4-space indentation and no
// leading or trailing whitespace. It is a pure function of the tree, so
// identical trees produce identical bytes.
func Serialize(doc *etree.Document) ([]byte, error) {
	doc.Indent(4)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, err
	}
	return bytes.TrimSpace(out), nil
}

// findAll returns every descendant element of scope with the given local
// tag, in document order. The returned slice is a stable snapshot: callers
// may remove, clone, or append nodes without invalidating it.
func findAll(scope *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, child := range e.ChildElements() {
			if child.Tag == tag {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(scope)
	return out
}

// findFirst returns the first descendant element with the given local tag,
// or nil.
func findFirst(scope *etree.Element, tag string) *etree.Element {
	for _, child := range scope.ChildElements() {
		if child.Tag == tag {
			return child
		}
		if found := findFirst(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// fieldSetter writes computed values into the tree. Two policies exist:
// required fields log a diagnostic when missing, schema-optional fields
// (counts, sums, optional dates) silently no-op. The distinction is a
// policy choice per call site, not a technical one.
type fieldSetter struct {
	log logger.Logger
}

// setRequired sets the first matching element's text, logging a warning
// when the target is missing.
func (f fieldSetter) setRequired(scope *etree.Element, tag, value string) {
	if el := findFirst(scope, tag); el != nil {
		el.SetText(value)
		return
	}
	f.log.Warn("expected element not found in document", map[string]interface{}{
		"tag":   tag,
		"scope": scope.Tag,
	})
}

// setOptional sets the first matching element's text, doing nothing when
// the target is missing.
func (f fieldSetter) setOptional(scope *etree.Element, tag, value string) {
	if tag == "" {
		return
	}
	if el := findFirst(scope, tag); el != nil {
		el.SetText(value)
	}
}
