package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmidoc/internal/model"
)

const samplePath = "../../testdata/sample.xmi"

func TestParseFile_Sample(t *testing.T) {
	doc, err := New(nil).ParseFile(samplePath)
	require.NoError(t, err)

	assert.Equal(t, samplePath, doc.Path)
	require.NotNil(t, doc.Model)
	assert.Equal(t, model.KindModel, doc.Model.Kind)
	assert.Equal(t, "EA_Model", doc.Model.Name)

	root := doc.FindPackage("A")
	require.NotNil(t, root)
	assert.Equal(t, "EAPK_A", root.ID)

	var kinds []model.Kind
	for _, c := range root.Children {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []model.Kind{
		model.KindClass, model.KindAssociation, model.KindUsage, model.KindPackage, model.KindPackage,
	}, kinds)

	subs := root.Subpackages()
	require.Len(t, subs, 2)
	assert.Equal(t, "B", subs[0].Name)
	assert.Equal(t, "Legacy", subs[1].Name)
}

func TestParseFile_ClassMembers(t *testing.T) {
	doc, err := New(nil).ParseFile(samplePath)
	require.NoError(t, err)

	b := doc.FindPackage("B")
	require.NotNil(t, b)
	c := b.Children[0]
	assert.Equal(t, "C", c.Name)

	require.Len(t, c.Attributes, 3)
	assert.Equal(t, "EAID_TEXT", c.Attributes[0].TypeRef)
	assert.Empty(t, c.Attributes[0].Association)
	assert.Equal(t, "EAID_ASSOC1", c.Attributes[2].Association)

	require.Len(t, c.Operations, 1)
	assert.Equal(t, "validate", c.Operations[0].Name)

	enum := b.Children[1]
	require.Len(t, enum.Literals, 2)
	assert.Equal(t, "RED", enum.Literals[0].Name)
	assert.Equal(t, model.KindLiteral, enum.Literals[0].Kind)

	cc := b.Children[3]
	require.Len(t, cc.Generalizations, 1)
	assert.Equal(t, "EAID_COLOUR", cc.Generalizations[0].General)
}

func TestParseFile_Extension(t *testing.T) {
	doc, err := New(nil).ParseFile(samplePath)
	require.NoError(t, err)

	meta := doc.ElementMeta("EAID_C")
	require.NotNil(t, meta)
	def, ok := meta.Tag("definition")
	assert.True(t, ok)
	assert.Equal(t, "Class C describes something.", def)

	legacy, ok := meta.Property("documentation")
	assert.True(t, ok)
	assert.Equal(t, "Legacy description of C.", legacy)

	assocs := meta.LinksOf(model.KindAssociation)
	require.Len(t, assocs, 1)
	assert.Equal(t, "EAID_C", assocs[0].Start)
	assert.Equal(t, "EAID_PUB", assocs[0].End)
	assert.Len(t, meta.LinksOf(model.KindUsage), 1)

	x := doc.AttributeMeta("EAID_C_x")
	require.NotNil(t, x)
	require.NotNil(t, x.Bounds)
	assert.Equal(t, "1..1", x.Bounds.String())
	require.NotNil(t, x.Documentation)
	assert.Equal(t, "Legacy documentation of x.", *x.Documentation)
	_, ok = x.Tag("definition")
	assert.False(t, ok)

	require.Len(t, doc.Diagrams, 1)
	assert.Equal(t, model.Diagram{ID: "EAID_DIAG1", Name: "Overview", Type: "Logical", Package: "EAPK_A"}, doc.Diagrams[0])
}

func TestParse_NamespacedAttributesDropped(t *testing.T) {
	src := `<xmi:XMI xmlns:xmi="http://schema.omg.org/spec/XMI/2.1" xmlns:uml="http://schema.omg.org/spec/UML/2.1">
<uml:Model xmi:type="uml:Model" name="M">
<packagedElement xmi:type="uml:PrimitiveType" xmi:id="P1" name="Integer" visibility="public"/>
</uml:Model>
</xmi:XMI>`

	doc, err := New(nil).Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, doc.Model.Children, 1)

	prim := doc.Model.Children[0]
	assert.Equal(t, []model.Attr{
		{Name: "name", Value: "Integer"},
		{Name: "visibility", Value: "public"},
	}, prim.Attrs)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code model.ErrorCode
	}{
		{
			name: "malformed xml",
			src:  `<xmi:XMI xmlns:xmi="x"><uml:Model>`,
			code: model.ErrDocumentParse,
		},
		{
			name: "no model",
			src:  `<xmi:XMI xmlns:xmi="x"><xmi:Extension/></xmi:XMI>`,
			code: model.ErrNoModel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(nil).Parse(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.True(t, model.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := New(nil).ParseFile("does-not-exist.xmi")
	require.Error(t, err)
	_, structural := model.AsStructural(err)
	assert.False(t, structural)
}
