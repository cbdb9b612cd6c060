package plan

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

//go:embed default.yaml
var defaultYAML []byte

// Load reads, validates and returns the plan at path. Files ending in .cue
// are read as CUE; anything else as YAML.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p *Plan
	if filepath.Ext(path) == ".cue" {
		p, err = ParseCUE(data, path)
	} else {
		p, err = ParseYAML(data, path)
	}
	if err != nil {
		return nil, err
	}

	p.SetBaseDir(filepath.Dir(path))
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	return p, nil
}

// Default returns the reference plan. Its base directory is empty, so paths
// resolve against the working directory until SetBaseDir is called.
func Default() *Plan {
	p, err := ParseYAML(defaultYAML, "default.yaml")
	if err != nil {
		panic(fmt.Sprintf("embedded default plan is invalid: %v", err))
	}
	return p
}

// ParseYAML decodes a YAML plan. Unknown keys are rejected and the document
// is checked against the schema.
func ParseYAML(data []byte, name string) (*Plan, error) {
	var p Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	file, err := cueyaml.Extract(name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML for validation: %w", err)
	}
	ctx := cuecontext.New()
	if err := checkSchema(ctx, ctx.BuildFile(file)); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseCUE evaluates a CUE plan against the schema and decodes it.
func ParseCUE(data []byte, name string) (*Plan, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(name))
	if err := v.Err(); err != nil {
		return nil, schemaError(err)
	}

	unified, err := unifySchema(ctx, v)
	if err != nil {
		return nil, err
	}

	var p Plan
	if err := unified.Decode(&p); err != nil {
		return nil, schemaError(err)
	}
	return &p, nil
}

func checkSchema(ctx *cue.Context, v cue.Value) error {
	_, err := unifySchema(ctx, v)
	return err
}

// unifySchema closes v under #Plan and requires a concrete result.
func unifySchema(ctx *cue.Context, v cue.Value) (cue.Value, error) {
	if err := v.Err(); err != nil {
		return cue.Value{}, schemaError(err)
	}
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compiling plan schema: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Plan")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cue.Value{}, schemaError(err)
	}
	return unified, nil
}

func schemaError(err error) error {
	return &PlanError{Message: "schema: " + cueerrors.Details(err, nil)}
}
