// internal/generator/classify.go
package generator

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Classification is the outcome of message-type detection.
type Classification struct {
	// Code is the derived type code (e.g. "PAIN1V3"), or TypeUnknown when
	// neither the namespace nor the wrapper's local name resolves.
	Code string
	// Recognized reports whether a registered profile matches Code. An
	// unrecognized document still generates, using the default profile.
	Recognized bool
}

// Classify inspects the parsed template's message wrapper (the first
// element child under the document root) and selects the schema profile
// for its family. Classification never aborts the job: unrecognized
// inputs degrade to the default profile.
func Classify(doc *etree.Document) (SchemaProfile, Classification) {
	code := deriveTypeCode(doc)
	if code == TypeUnknown {
		return DefaultProfile(), Classification{Code: TypeUnknown}
	}
	if p, ok := ProfileFor(code); ok {
		return p, Classification{Code: code, Recognized: true}
	}
	// Derivable code without a registered profile (e.g. a camt variant):
	// keep the code for naming but fall back to default field names.
	p := DefaultProfile()
	p.TypeCode = code
	return p, Classification{Code: code}
}

// deriveTypeCode builds a short code like PAIN1V3 from the message
// wrapper's namespace URI (urn:iso:std:iso:20022:tech:xsd:pain.001.001.03),
// falling back to a local-name lookup when namespace parsing fails.
func deriveTypeCode(doc *etree.Document) string {
	root := doc.Root()
	if root == nil {
		return TypeUnknown
	}

	wrapper := firstChildElement(root)
	if wrapper == nil {
		return TypeUnknown
	}

	if ns := wrapper.NamespaceURI(); ns != "" {
		if code := codeFromNamespace(ns); code != "" {
			return code
		}
	}

	if code, ok := localNameCodes[wrapper.Tag]; ok {
		return code
	}

	return TypeUnknown
}

func codeFromNamespace(ns string) string {
	parts := strings.Split(ns, ":")
	last := parts[len(parts)-1] // e.g. pain.001.001.03
	segments := strings.Split(last, ".")
	if len(segments) < 4 {
		return ""
	}
	major, err := strconv.Atoi(segments[1])
	if err != nil {
		return ""
	}
	minor, err := strconv.Atoi(segments[3])
	if err != nil {
		return ""
	}
	return strings.ToUpper(segments[0]) + strconv.Itoa(major) + "V" + strconv.Itoa(minor)
}

func firstChildElement(e *etree.Element) *etree.Element {
	children := e.ChildElements()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}
