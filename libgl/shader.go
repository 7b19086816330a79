package libgl

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"bloom-viewer/liblog"

	"github.com/go-gl/gl/v4.5-core/gl"
	"go.uber.org/zap"
)

var shaderMetaPattern = regexp.MustCompile(`(?m)^\/\/meta:(\w+)(.+)$`)
var shaderDefinePattern = regexp.MustCompile(`(?m)^\s*(\/\/)?\s*#define ([\w\d]+) ?(.*)$`)
var shaderVersionPattern = regexp.MustCompile(`(?m)^\s*#version.+$`)

type glslDef struct {
	marker  string
	name    string
	value   string
	boolean bool
}

// shaderTemplate is GLSL source whose #define lines have been replaced by markers
// so they can be switched on, off or redefined per compilation.
type shaderTemplate struct {
	name        string
	definitions map[string]glslDef
	source      string
	versionEnd  int
}

func parseShaderTemplate(source string) (*shaderTemplate, error) {
	name := "untitled"

	metaMatches := shaderMetaPattern.FindAllStringSubmatch(source, -1)
	for _, match := range metaMatches {
		key, value := match[1], strings.TrimSpace(match[2])
		if strings.EqualFold(key, "name") {
			name = value
		}
	}

	defineMatches := shaderDefinePattern.FindAllStringSubmatch(source, -1)
	definitions := make(map[string]glslDef, len(defineMatches))
	defineMarkers := make(map[string]string, len(defineMatches))
	for i, match := range defineMatches {
		value := strings.TrimSpace(match[3])
		marker := fmt.Sprintf("$def_%v$", i)
		boolean := value == ""
		if boolean && match[1] == "//" {
			value = "false"
		}
		definitions[strings.ToLower(match[2])] = glslDef{
			marker:  marker,
			name:    match[2],
			value:   value,
			boolean: boolean,
		}
		defineMarkers[match[0]] = marker
	}
	source = shaderDefinePattern.ReplaceAllStringFunc(source, func(s string) string {
		return defineMarkers[s]
	})

	version := shaderVersionPattern.FindStringIndex(source)
	if version == nil {
		return nil, fmt.Errorf("%v shader has no #version directive", name)
	}

	return &shaderTemplate{
		name:        name,
		definitions: definitions,
		source:      source,
		versionEnd:  version[1],
	}, nil
}

// expand produces compilable source. Boolean defines accept "true"/"false", others take the value verbatim.
// Names not present in the template are inserted after #version.
func (tmpl *shaderTemplate) expand(defs map[string]string) string {
	source := tmpl.source
	resolved := make(map[string]string, len(tmpl.definitions))
	for k, def := range tmpl.definitions {
		resolved[k] = def.value
	}

	var extra []string
	for n, v := range defs {
		k := strings.ToLower(n)
		if _, ok := tmpl.definitions[k]; ok {
			resolved[k] = v
		} else {
			extra = append(extra, fmt.Sprintf("#define %v %v", n, v))
		}
	}

	for k, def := range tmpl.definitions {
		value := resolved[k]
		sub := fmt.Sprintf("#define %v %v", def.name, value)
		if def.boolean {
			sub = fmt.Sprintf("#define %v", def.name)
		}
		if def.boolean && value == "false" {
			sub = "// " + sub
		}
		source = strings.Replace(source, def.marker, sub, 1)
	}

	if len(extra) > 0 {
		sort.Strings(extra)
		source = source[:tmpl.versionEnd] + "\n" + strings.Join(extra, "\n") + source[tmpl.versionEnd:]
	}
	return source
}

type program struct {
	template         *shaderTemplate
	uniformLocations map[string]int32
	glId             uint32
	stage            int
}

type ShaderProgram interface {
	Id() uint32
	Name() string
	CompileWith(defs map[string]string) error
	Delete()
	HasUniform(name string) bool
	SetUniform(name string, value any)
}

// NewShader parses a single stage GLSL source. stage is e.g. gl.VERTEX_SHADER.
func NewShader(source string, stage int) (ShaderProgram, error) {
	tmpl, err := parseShaderTemplate(source)
	if err != nil {
		return nil, err
	}
	return &program{
		template: tmpl,
		stage:    stage,
	}, nil
}

func (prog *program) Name() string {
	return prog.template.name
}

func (prog *program) CompileWith(defs map[string]string) error {
	return prog.compile(prog.template.expand(defs), true)
}

func (prog *program) compile(source string, useCache bool) error {
	cached := false
	var id uint32
	if ok, buf, format := ShaderCache.Get(source); useCache && ok {
		id = gl.CreateProgram()
		gl.ProgramParameteri(id, gl.PROGRAM_SEPARABLE, gl.TRUE)
		gl.ProgramBinary(id, format, Pointer(buf), int32(len(buf)))
		cached = true
	} else {
		cStrs, free := gl.Strs(source + "\x00")
		id = gl.CreateShaderProgramv(uint32(prog.stage), 1, cStrs)
		free()
	}

	var ok int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE && cached {
		// stale binary, the driver changed without changing its version string
		gl.DeleteProgram(id)
		ShaderCache.Evict(source)
		return prog.compile(source, false)
	}
	if ok == gl.FALSE {
		return fmt.Errorf("failed to link %v shader, log: %v", prog.Name(), readProgramInfoLog(id))
	}

	if prog.glId != 0 {
		gl.DeleteProgram(prog.glId)
	}
	prog.glId = id
	prog.uniformLocations = map[string]int32{}

	if !cached {
		ShaderCache.Put(source, prog)
	}

	return nil
}

func (prog *program) Id() uint32 {
	return prog.glId
}

func (prog *program) Delete() {
	gl.DeleteProgram(prog.glId)
	prog.glId = 0
}

func readProgramInfoLog(id uint32) string {
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (prog *program) location(name string) int32 {
	if location, ok := prog.uniformLocations[name]; ok {
		return location
	}
	location := gl.GetUniformLocation(prog.glId, gl.Str(name+"\x00"))
	prog.uniformLocations[name] = location
	return location
}

func (prog *program) HasUniform(name string) bool {
	return prog.location(name) != -1
}

func (prog *program) SetUniform(name string, value any) {
	location := prog.location(name)
	if location == -1 {
		return
	}
	setProgramUniformAny(prog.glId, location, value)
}

type shaderPipeline struct {
	glId      uint32
	name      string
	vertStage ShaderProgram
	fragStage ShaderProgram
	missing   map[string]bool
}

type UnboundShaderPipeline interface {
	LabeledGlObject
	Bind() BoundShaderPipeline
	Attach(program ShaderProgram, stages int)
	Get(stage int) ShaderProgram
	// SetUniform sets a uniform on every attached stage that declares it.
	SetUniform(name string, value any)
	Delete()
}

type BoundShaderPipeline interface {
	UnboundShaderPipeline
}

func NewPipeline() UnboundShaderPipeline {
	var id uint32
	gl.CreateProgramPipelines(1, &id)
	return &shaderPipeline{
		glId:    id,
		missing: map[string]bool{},
	}
}

// NewVertFragPipeline compiles a vertex and fragment source pair with the same defines.
func NewVertFragPipeline(vertex, fragment string, defs map[string]string) (UnboundShaderPipeline, error) {
	vsh, err := NewShader(vertex, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("could not parse vertex shader: %w", err)
	}
	if err = vsh.CompileWith(defs); err != nil {
		return nil, fmt.Errorf("could not compile vertex shader: %w", err)
	}
	fsh, err := NewShader(fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		vsh.Delete()
		return nil, fmt.Errorf("could not parse fragment shader: %w", err)
	}
	if err = fsh.CompileWith(defs); err != nil {
		vsh.Delete()
		return nil, fmt.Errorf("could not compile fragment shader: %w", err)
	}

	pipeline := NewPipeline()
	pipeline.Attach(vsh, gl.VERTEX_SHADER_BIT)
	pipeline.Attach(fsh, gl.FRAGMENT_SHADER_BIT)
	pipeline.SetDebugLabel(fsh.Name())
	return pipeline, nil
}

func (p *shaderPipeline) SetDebugLabel(label string) {
	p.name = label
	setObjectLabel(gl.PROGRAM_PIPELINE, p.glId, label)
}

func (p *shaderPipeline) Attach(program ShaderProgram, stages int) {
	gl.UseProgramStages(p.glId, uint32(stages), program.Id())
	if stages&gl.VERTEX_SHADER_BIT != 0 {
		p.vertStage = program
	}
	if stages&gl.FRAGMENT_SHADER_BIT != 0 {
		p.fragStage = program
	}
}

func (p *shaderPipeline) Get(stage int) ShaderProgram {
	switch stage {
	case gl.VERTEX_SHADER:
		return p.vertStage
	case gl.FRAGMENT_SHADER:
		return p.fragStage
	}
	liblog.Log.Panic("not a valid shader stage", zap.Int("stage", stage))
	return nil
}

func (p *shaderPipeline) SetUniform(name string, value any) {
	found := false
	for _, stage := range [...]ShaderProgram{p.vertStage, p.fragStage} {
		if stage != nil && stage.HasUniform(name) {
			stage.SetUniform(name, value)
			found = true
		}
	}
	if !found && !p.missing[name] {
		// unused uniforms are optimized out by the driver, so this is not an error
		p.missing[name] = true
		liblog.Log.Debug("uniform not active in pipeline", zap.String("pipeline", p.name), zap.String("uniform", name))
	}
}

func (p *shaderPipeline) Bind() BoundShaderPipeline {
	State.BindProgramPipeline(p.glId)
	return BoundShaderPipeline(p)
}

func (p *shaderPipeline) Delete() {
	if p.vertStage != nil {
		p.vertStage.Delete()
	}
	if p.fragStage != nil && p.fragStage != p.vertStage {
		p.fragStage.Delete()
	}
	gl.DeleteProgramPipelines(1, &p.glId)
	p.glId = 0
}
