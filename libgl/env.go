package libgl

import (
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
)

var GlEnv *GlEnvironment

type GlEnvironment struct {
	Vendor   string
	Renderer string
	Version  string
	// LegacyTextureBinding binds textures by target on the active unit.
	// Intel drivers mishandle glBindTextureUnit for some targets.
	LegacyTextureBinding bool
	// TextureTargets maps texture names to the target they were created with.
	TextureTargets      map[uint32]uint32
	MaxColorAttachments int32
}

const (
	VendorIntel   = "intel"
	VendorNvidia  = "nvidia"
	VendorAmd     = "ati"
	VendorUnknown = "unknown"
)

// GetGlEnv queries the current context. Must be called after gl.Init.
func GetGlEnv() *GlEnvironment {
	vendor := classifyVendor(gl.GoStr(gl.GetString(gl.VENDOR)))

	env := &GlEnvironment{
		Vendor:               vendor,
		Renderer:             gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:              gl.GoStr(gl.GetString(gl.VERSION)),
		LegacyTextureBinding: vendor == VendorIntel,
		TextureTargets:       map[uint32]uint32{},
	}
	gl.GetIntegerv(gl.MAX_COLOR_ATTACHMENTS, &env.MaxColorAttachments)
	return env
}

func classifyVendor(vendor string) string {
	vendor = strings.ToLower(strings.TrimSuffix(vendor, "\x00"))
	switch {
	case strings.Contains(vendor, "intel"):
		return VendorIntel
	case strings.Contains(vendor, "nvidia"):
		return VendorNvidia
	case strings.Contains(vendor, "ati "), strings.Contains(vendor, "amd"):
		return VendorAmd
	}
	return VendorUnknown
}
