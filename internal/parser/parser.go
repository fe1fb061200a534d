// Package parser reads Enterprise Architect XMI 2.1 documents into the model
// representation.
package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/net/html/charset"

	"xmidoc/internal/model"
)

// node is a generic XML element. The XMI dialect is loose enough that a
// generic tree is simpler to walk than typed structs.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []node     `xml:",any"`
}

// xmiAttr returns a namespaced attribute such as xmi:id by local name.
func (n *node) xmiAttr(local string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == local && a.Name.Space != "" && a.Name.Space != "xmlns" {
			return a.Value
		}
	}
	return ""
}

// attr returns a non-namespaced attribute.
func (n *node) attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == local && a.Name.Space == "" {
			return a.Value, true
		}
	}
	return "", false
}

func (n *node) attrValue(local string) string {
	v, _ := n.attr(local)
	return v
}

// plainAttrs returns non-namespaced attributes in document order.
func (n *node) plainAttrs() []model.Attr {
	var attrs []model.Attr
	for _, a := range n.Attrs {
		if a.Name.Space != "" || a.Name.Local == "xmlns" {
			continue
		}
		attrs = append(attrs, model.Attr{Name: a.Name.Local, Value: a.Value})
	}
	return attrs
}

func (n *node) child(local string) *node {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == local {
			return &n.Children[i]
		}
	}
	return nil
}

func (n *node) each(local string, fn func(*node)) {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == local {
			fn(&n.Children[i])
		}
	}
}

// Parser parses XMI documents.
type Parser struct {
	logger *slog.Logger
}

// New creates a new Parser.
func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// ParseFile parses the XMI document at path.
func (p *Parser) ParseFile(path string) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Parse parses an XMI document from r.
func (p *Parser) Parse(r io.Reader) (*model.Document, error) {
	dec := xml.NewDecoder(r)
	// EA exports declare windows-1252 by default.
	dec.CharsetReader = charset.NewReaderLabel

	var root node
	if err := dec.Decode(&root); err != nil {
		se := &model.StructuralError{Code: model.ErrDocumentParse, Message: "malformed XML", Err: err}
		var syntax *xml.SyntaxError
		if errors.As(err, &syntax) {
			se.Message = fmt.Sprintf("malformed XML at line %d", syntax.Line)
		}
		return nil, se
	}

	modelNode := &root
	if root.XMLName.Local != "Model" {
		modelNode = root.child("Model")
	}
	if modelNode == nil {
		return nil, model.NewStructuralError(model.ErrNoModel, nil, "document has no uml:Model element")
	}

	doc := &model.Document{
		Model:      convertElement(modelNode),
		Elements:   make(map[string]*model.Metadata),
		Attributes: make(map[string]*model.Metadata),
	}
	doc.Model.Kind = model.KindModel

	if ext := root.child("Extension"); ext != nil {
		p.parseExtension(ext, doc)
	}

	p.logger.Debug("Parsed model",
		slog.Int("elements", len(doc.Elements)),
		slog.Int("attributes", len(doc.Attributes)),
		slog.Int("diagrams", len(doc.Diagrams)))

	return doc, nil
}

// convertElement converts a packagedElement (or any owned member) and its
// nested members.
func convertElement(n *node) *model.Element {
	e := &model.Element{
		ID:          n.xmiAttr("id"),
		Kind:        model.Kind(n.xmiAttr("type")),
		Name:        n.attrValue("name"),
		Visibility:  n.attrValue("visibility"),
		Attrs:       n.plainAttrs(),
		Association: n.attrValue("association"),
	}

	if t, ok := n.attr("type"); ok {
		e.TypeRef = t
	} else if t := n.child("type"); t != nil {
		e.TypeRef = t.xmiAttr("idref")
	}

	for i := range n.Children {
		c := &n.Children[i]
		switch c.XMLName.Local {
		case "packagedElement", "nestedClassifier":
			e.Children = append(e.Children, convertElement(c))
		case "ownedAttribute":
			e.Attributes = append(e.Attributes, convertElement(c))
		case "ownedLiteral":
			lit := convertElement(c)
			if lit.Kind == "" {
				lit.Kind = model.KindLiteral
			}
			e.Literals = append(e.Literals, lit)
		case "ownedOperation":
			e.Operations = append(e.Operations, convertElement(c))
		case "generalization":
			g := model.Generalization{ID: c.xmiAttr("id"), General: c.attrValue("general")}
			if g.General == "" {
				if gen := c.child("general"); gen != nil {
					g.General = gen.xmiAttr("idref")
				}
			}
			e.Generalizations = append(e.Generalizations, g)
		}
	}

	return e
}

func (p *Parser) parseExtension(ext *node, doc *model.Document) {
	if elements := ext.child("elements"); elements != nil {
		elements.each("element", func(el *node) {
			meta := convertMetadata(el)
			doc.Elements[meta.IDRef] = meta

			if attrs := el.child("attributes"); attrs != nil {
				attrs.each("attribute", func(a *node) {
					am := convertMetadata(a)
					doc.Attributes[am.IDRef] = am
				})
			}
		})
	}

	if diagrams := ext.child("diagrams"); diagrams != nil {
		diagrams.each("diagram", func(d *node) {
			diagram := model.Diagram{ID: d.xmiAttr("id")}
			if props := d.child("properties"); props != nil {
				diagram.Name = props.attrValue("name")
				diagram.Type = props.attrValue("type")
			}
			if m := d.child("model"); m != nil {
				diagram.Package = m.attrValue("package")
			}
			if diagram.Name == "" {
				p.logger.Warn("Diagram without a name", slog.String("id", diagram.ID))
			}
			doc.Diagrams = append(doc.Diagrams, diagram)
		})
	}
}

// convertMetadata converts an extension <element> or <attribute>.
func convertMetadata(n *node) *model.Metadata {
	meta := &model.Metadata{
		IDRef: n.xmiAttr("idref"),
		Name:  n.attrValue("name"),
		Scope: n.attrValue("scope"),
	}

	if doc := n.child("documentation"); doc != nil {
		if v, ok := doc.attr("value"); ok {
			meta.Documentation = &v
		}
	}

	if props := n.child("properties"); props != nil {
		meta.Properties = props.plainAttrs()
		meta.HasProperties = true
	}

	if tags := n.child("tags"); tags != nil {
		tags.each("tag", func(t *node) {
			meta.Tags = append(meta.Tags, model.Tag{Name: t.attrValue("name"), Value: t.attrValue("value")})
		})
	}

	if b := n.child("bounds"); b != nil {
		meta.Bounds = &model.Bounds{Lower: b.attrValue("lower"), Upper: b.attrValue("upper")}
	}

	if links := n.child("links"); links != nil {
		for i := range links.Children {
			l := &links.Children[i]
			meta.Links = append(meta.Links, model.Relationship{
				Kind:  model.ParseKind(l.XMLName.Local),
				ID:    l.xmiAttr("id"),
				Start: l.attrValue("start"),
				End:   l.attrValue("end"),
			})
		}
	}

	return meta
}
