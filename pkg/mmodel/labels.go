package mmodel

import "github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"

// Labels is the string->string tag map attached to spaces, embedders,
// and API keys. Insertion order is not semantically significant.
type Labels map[string]string

// Matches reports whether every entry in selector is present in l with
// the same value — the label-selector semantics used by every list
// endpoint.
func (l Labels) Matches(selector Labels) bool {
	for k, v := range selector {
		if l[k] != v {
			return false
		}
	}

	return true
}

// Clone returns a shallow copy so callers can mutate without aliasing
// the stored map.
func (l Labels) Clone() Labels {
	if l == nil {
		return Labels{}
	}

	out := make(Labels, len(l))
	for k, v := range l {
		out[k] = v
	}

	return out
}

// LabelUpdate is the update-strategy oneof carried by update requests: a
// request carries ReplaceLabels (full replacement), MergeLabels (upsert),
// or neither (labels unchanged). Carrying both is rejected by Resolve.
type LabelUpdate struct {
	ReplaceLabels Labels `json:"replaceLabels,omitempty"`
	MergeLabels   Labels `json:"mergeLabels,omitempty"`
}

// Resolve applies the update strategy against the current labels,
// returning the new label map. Returns ErrBothLabelStrategies if both
// ReplaceLabels and MergeLabels are set.
func (u LabelUpdate) Resolve(current Labels) (Labels, error) {
	if u.ReplaceLabels != nil && u.MergeLabels != nil {
		return nil, constant.ErrBothLabelStrategies
	}

	if u.ReplaceLabels != nil {
		return u.ReplaceLabels.Clone(), nil
	}

	if u.MergeLabels != nil {
		merged := current.Clone()
		for k, v := range u.MergeLabels {
			merged[k] = v
		}

		return merged, nil
	}

	return current, nil
}
