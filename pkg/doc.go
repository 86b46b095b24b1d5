// Package pkg holds the graphcheck libraries.
//
// # Overview
//
// graphcheck walks in-memory object graphs and reports the first reference
// cycle or, under the JSON policy, the first value that cannot be encoded.
// The packages build on each other:
//
//  1. [check] - classification, traversal and policies (the engine)
//  2. [document] - JSON, YAML and TOML decoding into walkable values
//  3. [config] - TOML settings with validation
//  4. [runner] - checks of values, files and watched files, with reports
//  5. [cache] - report cache keyed by document content and policy
//  6. [observability] - hooks for checks, decoding and HTTP, plus Prometheus
//
// # Data Flow
//
//	file / request body / Go value
//	         ↓
//	    [document] package (decode)
//	         ↓
//	    [check] package (walk under a policy)
//	         ↓
//	    [runner] package (report, cache, hooks)
//
// # Quick Start
//
// Library use needs only the check package:
//
//	res := check.JSONSafe(v)
//	if !res.Safe {
//	    log.Fatal(res.Message)
//	}
//
// [check]: github.com/matzehuels/graphcheck/pkg/check
// [document]: github.com/matzehuels/graphcheck/pkg/document
// [config]: github.com/matzehuels/graphcheck/pkg/config
// [runner]: github.com/matzehuels/graphcheck/pkg/runner
// [cache]: github.com/matzehuels/graphcheck/pkg/cache
// [observability]: github.com/matzehuels/graphcheck/pkg/observability
package pkg
