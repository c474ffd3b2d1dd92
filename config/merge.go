package config

import "github.com/knadh/koanf/maps"

// Merge folds override into base and returns base. Where both sides hold a
// mapping the merge recurses; otherwise the override value replaces the base
// value outright, so sequences are never concatenated. A nil base is
// replaced by a new Tree.
//
// base keeps references to nested mappings of override; copy override first
// if it must stay independent.
func Merge(base, override Tree) Tree {
	if base == nil {
		base = Tree{}
	}

	maps.Merge(override, base)

	return base
}

// copyTree returns a deep copy of tree.
func copyTree(tree Tree) Tree {
	if tree == nil {
		return Tree{}
	}

	return maps.Copy(tree)
}
