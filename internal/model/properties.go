package model

import "strconv"

// PropertyKey is one of the recognized property names.
type PropertyKey string

const (
	PropName             PropertyKey = "name"
	PropAlias            PropertyKey = "alias"
	PropScope            PropertyKey = "scope"
	PropVisibility       PropertyKey = "visibility"
	PropStereotype       PropertyKey = "stereotype"
	PropType             PropertyKey = "type"
	PropIsAbstract       PropertyKey = "isAbstract"
	PropIsLeaf           PropertyKey = "isLeaf"
	PropIsRoot           PropertyKey = "isRoot"
	PropIsActive         PropertyKey = "isActive"
	PropIsSpecification  PropertyKey = "isSpecification"
	PropStatic           PropertyKey = "static"
	PropDerived          PropertyKey = "derived"
	PropConst            PropertyKey = "const"
	PropChangeability    PropertyKey = "changeability"
	PropImportedElements PropertyKey = "importedElements"
	PropBounds           PropertyKey = "bounds"
	PropIDRef            PropertyKey = "idref"
)

// droppedProperties are internal markers that never reach a page.
var droppedProperties = map[string]bool{
	"sType":         true,
	"nType":         true,
	"documentation": true,
}

// Flag is a tri-state boolean property.
type Flag int8

const (
	FlagUnset Flag = iota
	FlagFalse
	FlagTrue
)

func parseFlag(s string) Flag {
	switch s {
	case "true", "1":
		return FlagTrue
	case "false", "0":
		return FlagFalse
	}
	return FlagUnset
}

func (f Flag) String() string {
	switch f {
	case FlagTrue:
		return "true"
	case FlagFalse:
		return "false"
	}
	return ""
}

// TypeRef is a type property: the raw value found in the model and the
// display name it resolved to. Name is nil when the reference is unresolved.
type TypeRef struct {
	Raw  string
	Name *string
}

// Property is a rendered name/value row. A nil Value renders as null.
type Property struct {
	Name  string
	Value *string
}

// Properties is the typed property bag of an element.
type Properties struct {
	Name             *string
	Alias            *string
	Scope            *string
	Visibility       *string
	Stereotype       *string
	Type             *TypeRef
	IsAbstract       Flag
	IsLeaf           Flag
	IsRoot           Flag
	IsActive         Flag
	IsSpecification  Flag
	Static           Flag
	Derived          Flag
	Const            Flag
	Changeability    *string
	ImportedElements *string
	Bounds           *Bounds
	IDRef            *string

	// Extra holds unrecognized keys in document order.
	Extra []Property
}

// ParseProperties builds a Properties from raw attributes. resolve maps a
// raw type value to a display name; it may be nil, in which case every type
// value is unresolved.
func ParseProperties(raw []Attr, resolve func(string) *string) Properties {
	var p Properties
	for _, a := range raw {
		if droppedProperties[a.Name] {
			continue
		}
		p.Set(PropertyKey(a.Name), a.Value, resolve)
	}
	return p
}

// Set assigns a single property.
func (p *Properties) Set(key PropertyKey, value string, resolve func(string) *string) {
	v := value
	switch key {
	case PropName:
		p.Name = &v
	case PropAlias:
		p.Alias = &v
	case PropScope:
		p.Scope = &v
	case PropVisibility:
		p.Visibility = &v
	case PropStereotype:
		p.Stereotype = &v
	case PropType:
		ref := &TypeRef{Raw: v}
		if resolve != nil {
			ref.Name = resolve(v)
		}
		p.Type = ref
	case PropIsAbstract:
		p.IsAbstract = parseFlag(v)
	case PropIsLeaf:
		p.IsLeaf = parseFlag(v)
	case PropIsRoot:
		p.IsRoot = parseFlag(v)
	case PropIsActive:
		p.IsActive = parseFlag(v)
	case PropIsSpecification:
		p.IsSpecification = parseFlag(v)
	case PropStatic:
		p.Static = parseFlag(v)
	case PropDerived:
		p.Derived = parseFlag(v)
	case PropConst:
		p.Const = parseFlag(v)
	case PropChangeability:
		p.Changeability = &v
	case PropImportedElements:
		p.ImportedElements = &v
	case PropIDRef:
		p.IDRef = &v
	default:
		p.Extra = append(p.Extra, Property{Name: string(key), Value: &v})
	}
}

// TypeName returns the resolved type display name, or nil.
func (p Properties) TypeName() *string {
	if p.Type == nil {
		return nil
	}
	return p.Type.Name
}

// Entries returns the set properties as ordered rows: recognized keys in a
// fixed order, then Extra.
func (p Properties) Entries() []Property {
	var rows []Property
	str := func(k PropertyKey, v *string) {
		if v != nil {
			rows = append(rows, Property{Name: string(k), Value: v})
		}
	}
	flag := func(k PropertyKey, f Flag) {
		if f != FlagUnset {
			s := f.String()
			rows = append(rows, Property{Name: string(k), Value: &s})
		}
	}

	str(PropName, p.Name)
	str(PropAlias, p.Alias)
	str(PropStereotype, p.Stereotype)
	str(PropScope, p.Scope)
	str(PropVisibility, p.Visibility)
	if p.Type != nil {
		rows = append(rows, Property{Name: string(PropType), Value: p.TypeName()})
	}
	flag(PropIsAbstract, p.IsAbstract)
	flag(PropIsLeaf, p.IsLeaf)
	flag(PropIsRoot, p.IsRoot)
	flag(PropIsActive, p.IsActive)
	flag(PropIsSpecification, p.IsSpecification)
	flag(PropStatic, p.Static)
	flag(PropDerived, p.Derived)
	flag(PropConst, p.Const)
	str(PropChangeability, p.Changeability)
	str(PropImportedElements, p.ImportedElements)
	if p.Bounds != nil {
		b := p.Bounds.String()
		rows = append(rows, Property{Name: string(PropBounds), Value: &b})
	}
	str(PropIDRef, p.IDRef)

	return append(rows, p.Extra...)
}

// Lookup returns the rendered value of a property by name.
func (p Properties) Lookup(name string) (*string, bool) {
	for _, e := range p.Entries() {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}

// Quote is a small helper for rendering optional values in debug output.
func Quote(s *string) string {
	if s == nil {
		return "null"
	}
	return strconv.Quote(*s)
}
