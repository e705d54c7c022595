package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
)

// Vector is an embedding vector persisted as a JSON numeric array.
type Vector []float32

// To DB: "[0.12,0.34,...]"
func (v Vector) Value() (driver.Value, error) {
	if len(v) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vector: %w", err)
	}
	return string(data), nil
}

// From DB: parse "[0.12,0.34,...]"
func (v *Vector) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}
	switch data := value.(type) {
	case string:
		return v.parse([]byte(data))
	case []byte:
		return v.parse(data)
	default:
		return fmt.Errorf("unsupported type for Vector: %T", value)
	}
}

func (v *Vector) parse(data []byte) error {
	if len(data) == 0 {
		*v = Vector{}
		return nil
	}
	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil {
		return fmt.Errorf("failed to decode vector: %w", err)
	}
	*v = vec
	return nil
}

// Dot returns the dot product with w. Vectors of different lengths
// are considered incomparable and score zero.
func (v Vector) Dot(w Vector) float32 {
	if len(v) != len(w) {
		return 0
	}
	var sum float32
	for i := range v {
		sum += v[i] * w[i]
	}
	return sum
}

// Norm returns the L2 norm.
func (v Vector) Norm() float32 {
	var sum float32
	for _, f := range v {
		sum += f * f
	}
	return float32(math.Sqrt(float64(sum)))
}

// Normalized returns a unit-length copy. Zero vectors are returned as-is
// so downstream dot products stay zero instead of turning into NaN.
func (v Vector) Normalized() Vector {
	norm := v.Norm()
	if norm == 0 {
		return v
	}
	out := make(Vector, len(v))
	for i, f := range v {
		out[i] = f / norm
	}
	return out
}

// IsZero reports whether the vector is empty or all zeroes.
func (v Vector) IsZero() bool {
	for _, f := range v {
		if f != 0 {
			return false
		}
	}
	return true
}
