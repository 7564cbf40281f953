package hclcfg

import "github.com/hashicorp/hcl/v2"

// suiteFile is the top-level structure of a suite .hcl file. Every block
// and attribute is optional; anything absent keeps its compiled-in default.
type suiteFile struct {
	LogRoot         *string       `hcl:"log_root,optional"`
	ExcludeBinaries []string      `hcl:"exclude_binaries,optional"`
	Benchmarks      []*benchBlock `hcl:"benchmark,block"`
	Dataset         *datasetBlock `hcl:"dataset,block"`
	Build           *buildBlock   `hcl:"build,block"`
	Remain          hcl.Body      `hcl:",remain"`
}

// benchBlock is one `benchmark "NAME" { ... }` block.
type benchBlock struct {
	Name            string `hcl:"name,label"`
	Dir             string `hcl:"dir,optional"`
	RequiresDataset bool   `hcl:"requires_dataset,optional"`
}

// datasetBlock overrides how the external dataset is acquired.
type datasetBlock struct {
	URLs           []string `hcl:"urls,optional"`
	SHA256         *string  `hcl:"sha256,optional"`
	Archive        *string  `hcl:"archive,optional"`
	Markers        []string `hcl:"markers,optional"`
	TimeoutSeconds *int     `hcl:"timeout_seconds,optional"`
	Retries        *int     `hcl:"retries,optional"`
}

// buildBlock overrides the pre-run make invocation.
type buildBlock struct {
	Jobs    *int     `hcl:"jobs,optional"`
	Targets []string `hcl:"targets,optional"`
}
