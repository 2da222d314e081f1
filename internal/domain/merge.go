package domain

import (
	m "symdiff.dev/pkg/symdiff/internal/model"
)

// VariantResult pairs one variant label with its independently computed
// DiffResult.
type VariantResult struct {
	Label  string
	Result m.DiffResult
}

// structuralKey decides that two changes observed in different variant
// passes represent the same logical change. Locations compare by value;
// presence flags keep "no location" distinct from the zero location.
type structuralKey struct {
	changeType m.ChangeType
	kind       m.ElementKind
	oldName    string
	newName    string
	oldLoc     m.Location
	newLoc     m.Location
	hasOldLoc  bool
	hasNewLoc  bool
}

func keyOf(c *m.Change) structuralKey {
	key := structuralKey{
		changeType: c.Type,
		kind:       c.Kind,
		oldName:    c.OldName,
		newName:    c.NewName,
	}

	if c.OldLocation != nil {
		key.oldLoc = *c.OldLocation
		key.hasOldLoc = true
	}

	if c.NewLocation != nil {
		key.newLoc = *c.NewLocation
		key.hasNewLoc = true
	}

	return key
}

// Merge reconciles N per-variant results into one deduplicated result.
// It is a pure reduction: inputs are read-only and the output forest is
// allocated fresh, so retaining and mutating an input afterwards cannot
// corrupt the merged result. Duplicate variant labels are collapsed to
// their first occurrence and contribute as a single variant.
//
// The output is deterministic for a fixed input order. Reordering inputs
// may change which variant supplies the non-key attributes of a merged
// node but never changes class membership or applicability sets.
func Merge(results []VariantResult) m.DiffResult {
	if len(results) == 0 {
		return m.DiffResult{Variants: []string{}}
	}

	if len(results) == 1 {
		out := CloneResult(results[0].Result)
		out.Variants = []string{results[0].Label}

		return out
	}

	labels, contributions := dedupeByLabel(results)

	merged := m.DiffResult{
		OldPath:  contributions[0].Result.OldPath,
		NewPath:  contributions[0].Result.NewPath,
		Mode:     contributions[0].Result.Mode,
		Variants: labels,
	}

	merged.Files = mergeFiles(contributions, len(labels))
	merged.Stats = ComputeStats(merged.Files)

	return merged
}

// dedupeByLabel keeps the first result for each distinct label, preserving
// input order.
func dedupeByLabel(results []VariantResult) ([]string, []VariantResult) {
	labels := make([]string, 0, len(results))
	kept := make([]VariantResult, 0, len(results))
	seen := make(map[string]struct{}, len(results))

	for _, r := range results {
		if _, ok := seen[r.Label]; ok {
			continue
		}

		seen[r.Label] = struct{}{}
		labels = append(labels, r.Label)
		kept = append(kept, r)
	}

	return labels, kept
}

// nodeContribution is the set of sibling nodes one variant contributed at
// the current tree depth.
type nodeContribution struct {
	label string
	nodes []*m.Change
}

func mergeFiles(results []VariantResult, totalVariants int) []m.FileChange {
	var order []string

	byPath := make(map[string][]nodeContribution)

	for _, r := range results {
		for _, fc := range r.Result.Files {
			if _, ok := byPath[fc.Path]; !ok {
				order = append(order, fc.Path)
			}

			byPath[fc.Path] = append(byPath[fc.Path], nodeContribution{
				label: r.Label,
				nodes: fc.Changes,
			})
		}
	}

	if order == nil {
		return nil
	}

	out := make([]m.FileChange, 0, len(order))
	for _, path := range order {
		out = append(out, m.FileChange{
			Path:    path,
			Changes: mergeSiblings(byPath[path], totalVariants),
		})
	}

	return out
}

// mergeSiblings partitions the sibling nodes of all contributing variants
// into equivalence classes by structural key and emits one merged node per
// class, recursing into the children of every contributing member.
// Unchanged nodes are excluded. Output order is first-seen order across
// contributions.
func mergeSiblings(contribs []nodeContribution, totalVariants int) []*m.Change {
	type class struct {
		node          *m.Change
		labels        []string
		labelSeen     map[string]struct{}
		childContribs []nodeContribution
	}

	var order []structuralKey

	classes := make(map[structuralKey]*class)

	for _, contrib := range contribs {
		for _, node := range contrib.nodes {
			if node.Type == m.Unchanged {
				continue
			}

			key := keyOf(node)

			cl, ok := classes[key]
			if !ok {
				// Non-key attributes come from the first-seen member,
				// children are merged separately below.
				repr := CloneChange(node)
				repr.Children = nil

				cl = &class{node: repr, labelSeen: make(map[string]struct{})}
				classes[key] = cl
				order = append(order, key)
			}

			if _, seen := cl.labelSeen[contrib.label]; !seen {
				cl.labelSeen[contrib.label] = struct{}{}
				cl.labels = append(cl.labels, contrib.label)
			}

			if len(node.Children) > 0 {
				cl.childContribs = append(cl.childContribs, nodeContribution{
					label: contrib.label,
					nodes: node.Children,
				})
			}
		}
	}

	if order == nil {
		return nil
	}

	out := make([]*m.Change, 0, len(order))

	for _, key := range order {
		cl := classes[key]

		if len(cl.labels) == totalVariants {
			cl.node.AppliesTo = m.AllVariants()
		} else {
			cl.node.AppliesTo = m.SomeVariants(cl.labels...)
		}

		cl.node.Children = mergeSiblings(cl.childContribs, totalVariants)
		out = append(out, cl.node)
	}

	return out
}
