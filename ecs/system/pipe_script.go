package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/flappy/prefabs"
)

// PipeScript evaluates the tengo script that decides how far a wrapped pipe
// pair is shifted vertically. The script reads rand, amplitude and score and
// must set offset.
type PipeScript struct {
	path     string
	compiled *tengo.Compiled
}

func LoadPipeScript(path string) (*PipeScript, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}
	return CompilePipeScript(path, src)
}

func CompilePipeScript(path string, src []byte) (*PipeScript, error) {
	script := tengo.NewScript(src)
	_ = script.Add("rand", 0.0)
	_ = script.Add("amplitude", 0.0)
	_ = script.Add("score", 0)
	script.SetImports(stdlib.GetModuleMap("math", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("pipe script %s: compile: %w", path, err)
	}
	if !compiled.IsDefined("offset") {
		return nil, fmt.Errorf("pipe script %s: offset is not defined", path)
	}
	return &PipeScript{path: path, compiled: compiled}, nil
}

func (p *PipeScript) Path() string {
	if p == nil {
		return ""
	}
	return p.path
}

func (p *PipeScript) Offset(rnd, amplitude float64, score uint32) (float64, error) {
	if p == nil || p.compiled == nil {
		return 0, fmt.Errorf("pipe script is not loaded")
	}
	c := p.compiled.Clone()
	if err := c.Set("rand", rnd); err != nil {
		return 0, err
	}
	if err := c.Set("amplitude", amplitude); err != nil {
		return 0, err
	}
	if err := c.Set("score", int64(score)); err != nil {
		return 0, err
	}
	if err := c.Run(); err != nil {
		return 0, fmt.Errorf("pipe script %s: run: %w", p.path, err)
	}
	v := c.Get("offset")
	switch v.ValueType() {
	case "float", "int":
		return v.Float(), nil
	default:
		return 0, fmt.Errorf("pipe script %s: offset is %s, want a number", p.path, v.ValueType())
	}
}
