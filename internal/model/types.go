// Package model defines the intermediate representation for parsed XMI models.
package model

import "strings"

// Kind is the xmi:type discriminator of a model element (e.g. "uml:Class").
type Kind string

const (
	KindModel          Kind = "uml:Model"
	KindPackage        Kind = "uml:Package"
	KindClass          Kind = "uml:Class"
	KindEnumeration    Kind = "uml:Enumeration"
	KindDataType       Kind = "uml:DataType"
	KindPrimitiveType  Kind = "uml:PrimitiveType"
	KindProperty       Kind = "uml:Property"
	KindLiteral        Kind = "uml:EnumerationLiteral"
	KindOperation      Kind = "uml:Operation"
	KindAssociation    Kind = "uml:Association"
	KindGeneralization Kind = "uml:Generalization"
	KindUsage          Kind = "uml:Usage"
)

// Short returns the kind without its "uml:" prefix.
func (k Kind) Short() string {
	return strings.TrimPrefix(string(k), "uml:")
}

// IsLink reports whether elements of this kind are link artifacts rather than
// owned content of a package.
func (k Kind) IsLink() bool {
	return k == KindAssociation || k == KindUsage
}

// ParseKind accepts either "uml:Class" or "Class".
func ParseKind(s string) Kind {
	if strings.HasPrefix(s, "uml:") {
		return Kind(s)
	}
	return Kind("uml:" + s)
}

// Attr is a raw, non-namespaced XML attribute.
type Attr struct {
	Name  string
	Value string
}

// Bounds is a multiplicity range.
type Bounds struct {
	Lower string
	Upper string
}

func (b Bounds) String() string {
	return b.Lower + ".." + b.Upper
}

// Generalization points from a classifier to its general classifier.
type Generalization struct {
	ID      string
	General string // xmi:id of the general classifier
}

// Element is a node of the uml:Model tree.
type Element struct {
	ID          string
	Kind        Kind
	Name        string
	Visibility  string
	Attrs       []Attr // raw attributes in document order, namespaced ones dropped
	Association string // set on owned attributes that are association ends
	TypeRef     string // xmi:idref of the declared type

	Children        []*Element // nested packagedElement
	Attributes      []*Element // ownedAttribute
	Literals        []*Element // ownedLiteral
	Operations      []*Element // ownedOperation
	Generalizations []Generalization
}

// OwnedElements returns the direct children that are owned content, i.e.
// everything except Association and Usage links.
func (e *Element) OwnedElements() []*Element {
	var owned []*Element
	for _, c := range e.Children {
		if !c.Kind.IsLink() {
			owned = append(owned, c)
		}
	}
	return owned
}

// Subpackages returns the direct child packages in document order.
func (e *Element) Subpackages() []*Element {
	var pkgs []*Element
	for _, c := range e.Children {
		if c.Kind == KindPackage {
			pkgs = append(pkgs, c)
		}
	}
	return pkgs
}

// Walk visits e and all nested packaged elements pre-order.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Tag is a tagged value from the extension section.
type Tag struct {
	Name  string
	Value string
}

// Relationship is a link between two elements. Endpoints are identifiers and
// are only resolved to names when rendered.
type Relationship struct {
	Kind  Kind
	ID    string
	Start string
	End   string
}

// Metadata is the vendor extension data attached to an element or attribute
// through xmi:idref. Any of its sub-nodes may be missing.
type Metadata struct {
	IDRef string
	Name  string
	Scope string

	Documentation *string // <documentation value="..."/>
	Properties    []Attr  // <properties .../>
	HasProperties bool    // false when the <properties/> node is absent
	Tags          []Tag
	Bounds        *Bounds
	Links         []Relationship
}

// Tag returns the value of the first tag with the given name.
func (m *Metadata) Tag(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	for _, t := range m.Tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// Property returns a raw value from the properties bag.
func (m *Metadata) Property(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	for _, a := range m.Properties {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// LinksOf returns the links of one kind in document order.
func (m *Metadata) LinksOf(kind Kind) []Relationship {
	if m == nil {
		return nil
	}
	var links []Relationship
	for _, l := range m.Links {
		if l.Kind == kind {
			links = append(links, l)
		}
	}
	return links
}

// Diagram is a diagram declared in the extension section.
type Diagram struct {
	ID      string
	Name    string
	Type    string
	Package string // xmi:id of the owning package
}

// Document is a parsed model-exchange document.
type Document struct {
	Path       string
	Model      *Element
	Elements   map[string]*Metadata // element metadata by xmi:idref
	Attributes map[string]*Metadata // attribute and literal metadata by xmi:idref
	Diagrams   []Diagram
}

// ElementMeta returns the element metadata for id, or nil.
func (d *Document) ElementMeta(id string) *Metadata {
	return d.Elements[id]
}

// AttributeMeta returns the attribute metadata for id, or nil.
func (d *Document) AttributeMeta(id string) *Metadata {
	return d.Attributes[id]
}

// FindPackage returns the first package named name in document order.
func (d *Document) FindPackage(name string) *Element {
	if d.Model == nil {
		return nil
	}
	var found *Element
	d.Model.Walk(func(e *Element) {
		if found == nil && e.Kind == KindPackage && e.Name == name {
			found = e
		}
	})
	return found
}
