package libgl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const litTemplate = `#version 450 core
//meta:name lit
#define TRANSPARENT
// #define DEBUG_NORMALS
#define POINT_LIGHTS 2

void main() {}
`

func TestParseShaderTemplate(t *testing.T) {
	tmpl, err := parseShaderTemplate(litTemplate)
	require.NoError(t, err)

	assert.Equal(t, "lit", tmpl.name)
	assert.Len(t, tmpl.definitions, 3)
	assert.True(t, tmpl.definitions["transparent"].boolean)
	assert.Equal(t, "false", tmpl.definitions["debug_normals"].value)
	assert.Equal(t, "2", tmpl.definitions["point_lights"].value)
	assert.NotContains(t, tmpl.source, "#define")
}

func TestParseShaderTemplateRequiresVersion(t *testing.T) {
	_, err := parseShaderTemplate("void main() {}")
	assert.Error(t, err)
}

func TestExpandDefaults(t *testing.T) {
	tmpl, err := parseShaderTemplate(litTemplate)
	require.NoError(t, err)

	src := tmpl.expand(nil)
	assert.Contains(t, src, "\n#define TRANSPARENT\n")
	assert.Contains(t, src, "// #define DEBUG_NORMALS")
	assert.Contains(t, src, "#define POINT_LIGHTS 2")
}

func TestExpandOverrides(t *testing.T) {
	tmpl, err := parseShaderTemplate(litTemplate)
	require.NoError(t, err)

	src := tmpl.expand(map[string]string{
		"transparent":   "false",
		"DEBUG_NORMALS": "true",
		"POINT_LIGHTS":  "4",
		"EXTRA":         "1",
	})
	assert.Contains(t, src, "// #define TRANSPARENT")
	assert.Contains(t, src, "\n#define DEBUG_NORMALS\n")
	assert.Contains(t, src, "#define POINT_LIGHTS 4")
	assert.True(t, strings.HasPrefix(src, "#version 450 core\n#define EXTRA 1\n"))
}

func TestExpandIsRepeatable(t *testing.T) {
	tmpl, err := parseShaderTemplate(litTemplate)
	require.NoError(t, err)

	first := tmpl.expand(map[string]string{"TRANSPARENT": "false"})
	second := tmpl.expand(nil)
	assert.NotEqual(t, first, second)
	assert.Equal(t, second, tmpl.expand(nil))
}

func TestProgramBinaryRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, writeProgramBinary(buf, 0x8e21, []byte{1, 2, 3, 4}))

	format, data, err := readProgramBinary(buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x8e21), format)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)
}

func TestProgramBinaryTruncated(t *testing.T) {
	_, _, err := readProgramBinary(bytes.NewReader([]byte{1, 2}))
	assert.Error(t, err)

	_, _, err = readProgramBinary(bytes.NewReader([]byte{1, 2, 3, 4}))
	assert.Error(t, err)
}

func TestShaderCacheKey(t *testing.T) {
	cache := &shaderCacheManager{Dir: t.TempDir()}
	assert.Equal(t, cache.key("a"), cache.key("a"))
	assert.NotEqual(t, cache.key("a"), cache.key("b"))
	assert.Len(t, cache.key("a"), 32)
}

func TestShaderCacheMissAndDisabled(t *testing.T) {
	cache := &shaderCacheManager{Dir: t.TempDir()}
	ok, _, _ := cache.Get("void main() {}")
	assert.False(t, ok)

	cache.Disabled = true
	ok, _, _ = cache.Get("void main() {}")
	assert.False(t, ok)
}
