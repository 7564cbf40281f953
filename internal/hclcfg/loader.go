// Package hclcfg loads a harness suite file written in HCL and merges it
// onto the compiled-in defaults.
package hclcfg

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/vk/primbench/internal/config"
	"github.com/vk/primbench/internal/ctxlog"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL suite loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the suite file at path and merges it onto base. The base is
// not mutated; a new Suite is returned.
func (l *Loader) Load(ctx context.Context, path string, base *config.Suite) (*config.Suite, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading suite file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	var sf suiteFile
	if diags := gohcl.DecodeBody(file.Body, l.evalContext(base), &sf); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", path, diags)
	}

	merged := *base
	merged.Benchmarks = append([]config.BenchmarkSpec(nil), base.Benchmarks...)

	if sf.LogRoot != nil {
		merged.LogRoot = *sf.LogRoot
	}
	if len(sf.ExcludeBinaries) > 0 {
		merged.ExcludeBinaries = sf.ExcludeBinaries
	}
	if len(sf.Benchmarks) > 0 {
		merged.Benchmarks = merged.Benchmarks[:0]
		for _, b := range sf.Benchmarks {
			dir := b.Dir
			if dir == "" {
				dir = b.Name
			}
			merged.Benchmarks = append(merged.Benchmarks, config.BenchmarkSpec{
				Name:            b.Name,
				Dir:             dir,
				RequiresDataset: b.RequiresDataset,
			})
		}
	}
	if sf.Dataset != nil {
		applyDataset(&merged.Dataset, sf.Dataset)
	}
	if sf.Build != nil {
		if sf.Build.Jobs != nil {
			merged.Build.Jobs = *sf.Build.Jobs
		}
		if len(sf.Build.Targets) > 0 {
			merged.Build.Targets = sf.Build.Targets
		}
	}

	logger.Debug("Suite file loaded.", "benchmarks", len(merged.Benchmarks))
	return &merged, nil
}

func applyDataset(dst *config.DatasetSpec, src *datasetBlock) {
	if len(src.URLs) > 0 {
		dst.URLs = src.URLs
	}
	if src.SHA256 != nil {
		dst.SHA256 = *src.SHA256
	}
	if src.Archive != nil {
		dst.Archive = *src.Archive
	}
	if len(src.Markers) > 0 {
		dst.Markers = src.Markers
	}
	if src.TimeoutSeconds != nil {
		dst.Timeout = time.Duration(*src.TimeoutSeconds) * time.Second
	}
	if src.Retries != nil {
		dst.Retries = *src.Retries
	}
}

// evalContext exposes the suite root as `root` and an `env(name, fallback)`
// function to suite files.
func (l *Loader) evalContext(base *config.Suite) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"root": cty.StringVal(base.Root),
		},
		Functions: map[string]function.Function{
			"env": envFunc,
		},
	}
}

var envFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "name", Type: cty.String},
		{Name: "fallback", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		if v, ok := os.LookupEnv(args[0].AsString()); ok {
			return cty.StringVal(v), nil
		}
		return args[1], nil
	},
})
