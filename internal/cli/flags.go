package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphcheck/pkg/config"
)

// checkFlags holds the flags shared by check and watch. Only flags set on
// the command line override the config file.
type checkFlags struct {
	policy      string // cycle or json
	format      string // force json, yaml or toml
	maxDepth    int    // path segments from the root; negative disables
	maxNodes    int    // values visited per document; negative disables
	concurrency int    // documents checked in parallel
	yamlNodes   bool   // walk raw YAML node trees
	output      string // auto, text or json
	cacheDir    string // report cache directory; empty disables
}

func (f *checkFlags) register(cmd *cobra.Command) {
	d := config.Default()
	fs := cmd.Flags()
	fs.StringVarP(&f.policy, "policy", "p", d.Policy, "safety policy: cycle or json")
	fs.StringVarP(&f.format, "format", "f", "", "force document format: json, yaml or toml (default: from extension)")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "maximum path depth, 0 for the default, negative for none")
	fs.IntVar(&f.maxNodes, "max-nodes", 0, "maximum values visited per document, 0 for the default, negative for none")
	fs.IntVarP(&f.concurrency, "concurrency", "j", d.Concurrency, "documents checked in parallel")
	fs.BoolVar(&f.yamlNodes, "yaml-nodes", false, "walk YAML node trees so recursive anchors are reported")
	fs.StringVarP(&f.output, "output", "o", d.Output, "output: auto, text or json")
	fs.StringVar(&f.cacheDir, "cache-dir", "", "reuse reports of unchanged documents from this directory")
}

func (f *checkFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("policy") {
		cfg.Policy = f.policy
	}
	if fs.Changed("format") {
		cfg.Format = f.format
	}
	if fs.Changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if fs.Changed("max-nodes") {
		cfg.MaxNodes = f.maxNodes
	}
	if fs.Changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if fs.Changed("yaml-nodes") {
		cfg.YAMLNodes = f.yamlNodes
	}
	if fs.Changed("output") {
		cfg.Output = f.output
	}
	if fs.Changed("cache-dir") {
		cfg.CacheDir = f.cacheDir
	}
}
