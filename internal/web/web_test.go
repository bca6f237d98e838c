package web

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_DefinesPages(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"videos/index", "videos/create", "videos/show", "error", "layout/head", "layout/foot"} {
		assert.NotNil(t, tmpl.Lookup(name), "template %q not defined", name)
	}
}

func TestTemplates_EscapesUserInput(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "error", struct{ Message string }{Message: "<script>alert(1)</script>"})
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestStatic_ServesStylesheet(t *testing.T) {
	f, err := Static().Open("/site.css")
	require.NoError(t, err)
	defer f.Close()

	body, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(body), "#videos-container")
}
