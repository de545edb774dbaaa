package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Nullable wraps a JSON field so partial updates can tell an absent field
// (Set == false) from an explicit null (Set == true, Value == nil).
type Nullable[T any] struct {
	Value *T
	Set   bool
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Value: &v, Set: true}
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

type (
	NullableString = Nullable[string]
	NullableFloat  = Nullable[float64]
	NullableInt    = Nullable[int]
	NullableBool   = Nullable[bool]
	NullableUUID   = Nullable[uuid.UUID]
)
