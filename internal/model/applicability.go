package model

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ApplicabilityState discriminates the three outcomes of multi-variant
// analysis for a change. The distinction between NotAnalyzed and
// AppliesToAll must survive serialization: "field absent" means not
// analyzed, "empty list" means present in every analyzed variant.
type ApplicabilityState int

const (
	// NotAnalyzed means no multi-variant run occurred.
	NotAnalyzed ApplicabilityState = iota
	// AppliesToAll means the change was observed in every analyzed variant.
	AppliesToAll
	// AppliesToSome means the change was observed in a proper subset of
	// the analyzed variants.
	AppliesToSome
)

// Applicability records which build variants exhibit a change.
// The zero value is NotAnalyzed.
type Applicability struct {
	state    ApplicabilityState
	variants []string
}

// AllVariants returns an Applicability meaning "present in every analyzed
// variant", serialized as an explicit empty list.
func AllVariants() Applicability {
	return Applicability{state: AppliesToAll}
}

// SomeVariants returns an Applicability for the given variant labels,
// deduplicated and in first-seen order. With no labels it degrades to
// AllVariants so an explicit empty set keeps its conventional meaning.
func SomeVariants(labels ...string) Applicability {
	uniq := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))

	for _, label := range labels {
		if _, ok := seen[label]; ok {
			continue
		}

		seen[label] = struct{}{}
		uniq = append(uniq, label)
	}

	if len(uniq) == 0 {
		return AllVariants()
	}

	return Applicability{state: AppliesToSome, variants: uniq}
}

// State returns the tri-state discriminator.
func (a Applicability) State() ApplicabilityState {
	return a.state
}

// Variants returns a copy of the explicit variant labels. It is empty for
// NotAnalyzed and AppliesToAll.
func (a Applicability) Variants() []string {
	if len(a.variants) == 0 {
		return nil
	}

	out := make([]string, len(a.variants))
	copy(out, a.variants)

	return out
}

// Contains reports whether the change applies to the given variant label.
// NotAnalyzed never contains a label; AppliesToAll contains every label.
func (a Applicability) Contains(label string) bool {
	switch a.state {
	case NotAnalyzed:
		return false
	case AppliesToAll:
		return true
	case AppliesToSome:
		for _, v := range a.variants {
			if v == label {
				return true
			}
		}
	}

	return false
}

// IsZero reports whether no multi-variant analysis happened. json's
// omitzero and yaml's omitempty both consult it, which is what keeps the
// "field absent" encoding of NotAnalyzed lossless.
func (a Applicability) IsZero() bool {
	return a.state == NotAnalyzed
}

// Equal compares state and labels in order.
func (a Applicability) Equal(b Applicability) bool {
	if a.state != b.state || len(a.variants) != len(b.variants) {
		return false
	}

	for i := range a.variants {
		if a.variants[i] != b.variants[i] {
			return false
		}
	}

	return true
}

// MarshalJSON encodes AppliesToAll as [] and AppliesToSome as the label
// list. NotAnalyzed encodes as null for callers that bypass omitzero.
func (a Applicability) MarshalJSON() ([]byte, error) {
	switch a.state {
	case NotAnalyzed:
		return []byte("null"), nil
	case AppliesToAll:
		return []byte("[]"), nil
	default:
		return json.Marshal(a.variants)
	}
}

// UnmarshalJSON decodes null as NotAnalyzed, [] as AppliesToAll and a
// non-empty list as AppliesToSome.
func (a *Applicability) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Applicability{}
		return nil
	}

	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return fmt.Errorf("applicability: %w", err)
	}

	if len(labels) == 0 {
		*a = AllVariants()
		return nil
	}

	*a = SomeVariants(labels...)

	return nil
}

// GobEncode reuses the JSON encoding so spill buffers can carry change
// trees; gob cannot encode the unexported tri-state directly.
func (a Applicability) GobEncode() ([]byte, error) {
	return a.MarshalJSON()
}

// GobDecode mirrors GobEncode.
func (a *Applicability) GobDecode(data []byte) error {
	return a.UnmarshalJSON(data)
}

// MarshalYAML mirrors the JSON encoding.
func (a Applicability) MarshalYAML() (interface{}, error) {
	switch a.state {
	case NotAnalyzed:
		return nil, nil
	case AppliesToAll:
		return []string{}, nil
	default:
		return a.variants, nil
	}
}

// UnmarshalYAML mirrors the JSON decoding.
func (a *Applicability) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*a = Applicability{}
		return nil
	}

	var labels []string
	if err := value.Decode(&labels); err != nil {
		return fmt.Errorf("applicability: %w", err)
	}

	if len(labels) == 0 {
		*a = AllVariants()
		return nil
	}

	*a = SomeVariants(labels...)

	return nil
}
