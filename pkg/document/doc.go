// Package document decodes JSON, YAML and TOML documents into Go values
// that the check package can walk.
//
// JSON numbers decode as [encoding/json.Number] so large integers keep their
// text. YAML decodes into plain maps and slices by default; with
// [Options.YAMLNodes] the raw *yaml.Node tree is returned instead, and an
// anchor that contains an alias to itself becomes a real pointer cycle
// through the node's Alias field.
package document
