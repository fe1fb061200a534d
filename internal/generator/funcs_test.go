package generator

import (
	"bytes"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmidoc/internal/config"
	"xmidoc/internal/model"
)

func TestTemplateFuncs(t *testing.T) {
	multi := "0..*"
	one := "1..1"
	html := "<p>A <b>bold</b> note.</p>"

	keepCase := config.New()
	off := false
	keepCase.Options.LowercaseTopLevel = &off

	tests := []struct {
		name string
		cfg  *config.Config
		tmpl string
		data any
		want string
	}{
		{"value nil", nil, `{{value .}}`, (*string)(nil), "null"},
		{"value set", nil, `{{value .}}`, &one, "1..1"},
		{"markdown nil", nil, `[{{markdown .}}]`, (*string)(nil), "[]"},
		{"markdown html", nil, `{{markdown .}}`, &html, "A **bold** note."},
		{"kind", nil, `{{kind .}}`, model.KindEnumeration, "Enumeration"},
		{"cell", nil, `{{cell .}}`, " a|b\nc ", `a\|b<br>c`},
		{"optional", nil, `{{optionality .}}`, &multi, "Optional"},
		{"mandatory", nil, `{{optionality .}}`, &one, "Mandatory"},
		{"optionality nil", nil, `{{optionality .}}`, (*string)(nil), "null"},
		{"join", nil, `{{join . " / "}}`, []string{"A", "B"}, "A / B"},
		{"page path", nil, `{{pagePath .}}`, []string{"D2Payload", "Common", "A/B"}, "d2payload/Common/A_B"},
		{"page path keeps case", keepCase, `{{pagePath .}}`, []string{"D2Payload", "Common"}, "D2Payload/Common"},
		{"file name", nil, `{{fileName .}}`, `a/b\c:d`, "a_b_c_d"},
		{"attribute file", nil, `{{attributeFile .}}`, "length", "length"},
		{"attribute named index", nil, `{{attributeFile .}}`, "Index", "Index_attribute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if cfg == nil {
				cfg = config.New()
			}
			tmpl, err := template.New(tt.name).Funcs(templateFuncs(cfg, NewMarkup())).Parse(tt.tmpl)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, tmpl.Execute(&buf, tt.data))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
