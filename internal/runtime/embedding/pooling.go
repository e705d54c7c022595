package embedding

import (
	"github.com/docuchat-ai/docuchat/internal/database/dbtypes"
)

// MeanPool averages token-level vectors into a single vector.
// Returns nil when there are no tokens or the token vectors are ragged.
func MeanPool(tokens [][]float32) dbtypes.Vector {
	if len(tokens) == 0 {
		return nil
	}
	dim := len(tokens[0])
	if dim == 0 {
		return nil
	}
	pooled := make(dbtypes.Vector, dim)
	for _, tok := range tokens {
		if len(tok) != dim {
			return nil
		}
		for i, f := range tok {
			pooled[i] += f
		}
	}
	n := float32(len(tokens))
	for i := range pooled {
		pooled[i] /= n
	}
	return pooled
}
