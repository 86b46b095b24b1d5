package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/graphcheck/pkg/check"
)

// hashKey returns "prefix:" followed by the SHA-256 of parts encoded as JSON.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ReportKey is the key of the report for a document with content hash
// docHash, decoded as format, checked under p. yamlNodes selects raw YAML
// node trees.
func ReportKey(docHash, format string, yamlNodes bool, p check.Policy) string {
	return hashKey("report", docHash, format, yamlNodes, p.Name, p.Limits.MaxDepth, p.Limits.MaxNodes)
}
