package docs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// ComputeDocsHash computes a deterministic hash over a set of documents: their
// locale, kind, relative path and content. It changes whenever any input page
// changes and is independent of discovery order.
func ComputeDocsHash(files []DocFile) string {
	if len(files) == 0 {
		h := sha256.Sum256([]byte("empty-docs-set"))
		return hex.EncodeToString(h[:])
	}

	entries := make([]string, 0, len(files))
	for _, df := range files {
		sum := sha256.Sum256(df.Content)
		entries = append(entries, fmt.Sprintf("%s|%s|%s|%s",
			df.Locale, df.Kind, df.RelativePath, hex.EncodeToString(sum[:])))
	}
	sort.Strings(entries)

	h := sha256.New()
	for _, e := range entries {
		h.Write([]byte(e))
		h.Write([]byte("\n"))
	}
	return hex.EncodeToString(h.Sum(nil))
}
