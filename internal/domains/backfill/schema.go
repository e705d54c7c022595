package backfill

// Target describes one table the backfill worker may touch: which column
// holds the text and which holds the embedding. Caller-supplied names are
// validated against this registry and never reach the storage layer as
// raw strings.
type Target struct {
	Table           string
	ContentColumn   string
	EmbeddingColumn string
}

// allowedTargets is the full set of embeddable tables.
var allowedTargets = map[string]Target{
	"document_chunks": {
		Table:           "document_chunks",
		ContentColumn:   "content",
		EmbeddingColumn: "embedding",
	},
}

// ResolveTarget returns the registered target matching the requested
// table/column triple, or false when any name deviates from the schema.
func ResolveTarget(table, contentColumn, embeddingColumn string) (Target, bool) {
	target, ok := allowedTargets[table]
	if !ok {
		return Target{}, false
	}
	if target.ContentColumn != contentColumn || target.EmbeddingColumn != embeddingColumn {
		return Target{}, false
	}
	return target, true
}
