package model

// PageKind selects the template a record is rendered with.
type PageKind string

const (
	PagePackage     PageKind = "package"
	PageClass       PageKind = "class"
	PageEnumeration PageKind = "enumeration"
	PageDataType    PageKind = "datatype"
)

// Details identifies the entity a page documents.
type Details struct {
	ID          string
	Name        string
	Type        Kind
	Prefix      string
	Description *string
}

// OwnedElement is a row of a package's owned element table.
type OwnedElement struct {
	Name string
	Type Kind
}

// Operation is a class operation. Only the name is documented.
type Operation struct {
	Name string
}

// AttributeRecord documents one class attribute.
type AttributeRecord struct {
	ID           string
	Name         string
	Kind         Kind
	Visibility   *string
	Type         *string // resolved display name, nil when unresolved
	Description  *string
	Multiplicity *string
	Properties   Properties
}

// LiteralRecord documents one enumeration literal.
type LiteralRecord struct {
	ID          string
	Name        string
	Visibility  *string
	Description *string
	Properties  Properties
}

// ResolvedRelationship is a relationship whose endpoints were looked up in the
// reference index. A nil endpoint is unresolved.
type ResolvedRelationship struct {
	Kind  Kind
	Start *string
	End   *string
}

// PageRecord is everything needed to render one page.
type PageRecord struct {
	Path    []string // from the traversal root to the entity, inclusive
	Kind    PageKind
	Details Details

	Properties          Properties
	OwnedElements       []OwnedElement
	Operations          []Operation
	Attributes          []AttributeRecord
	Literals            []LiteralRecord
	Relationships       []ResolvedRelationship
	GeneralizedElements []*string
}

// Name is the last path segment.
func (r *PageRecord) Name() string {
	if len(r.Path) == 0 {
		return r.Details.Name
	}
	return r.Path[len(r.Path)-1]
}
