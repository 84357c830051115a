package models

import "encoding/json"

// Opt distinguishes an absent JSON field from an explicit null on partial
// updates: absent leaves Defined false, null leaves Value nil.
type Opt[T any] struct {
	Defined bool
	Value   *T
}

func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	o.Defined = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}
