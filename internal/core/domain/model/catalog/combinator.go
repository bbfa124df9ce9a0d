package catalog

import (
	"fmt"
	"strings"
)

// combinationSeparator joins the per-variation parts of a combination string.
const combinationSeparator = " / "

// Combinations generates every variant combination for the given variations
// in a deterministic order.
//
// Each combination assigns exactly one option to every variation and is
// formatted as:
//
//	"{V1.name}: {opt1} / {V2.name}: {opt2} / ..."
//
// in variation-declaration order. Iteration is depth-first: the option of
// the first-declared variation is fixed while the remaining variations are
// exhausted, so the LAST-declared variation varies fastest. For variations
// Size:[S,M,L] and Color:[Red,Blue] the output is:
//
//	Size: S / Color: Red
//	Size: S / Color: Blue
//	Size: M / Color: Red
//	Size: M / Color: Blue
//	Size: L / Color: Red
//	Size: L / Color: Blue
//
// The result has exactly Π len(options) members and no duplicates as long as
// every variation's option labels are distinct (enforced by NewItemVariation).
// An empty variation list yields no combinations.
func Combinations(variations []*ItemVariation) []string {
	if len(variations) == 0 {
		return nil
	}

	total := 1
	for _, v := range variations {
		total *= len(v.options)
	}

	out := make([]string, 0, total)
	parts := make([]string, len(variations))

	var walk func(depth int)
	walk = func(depth int) {
		if depth == len(variations) {
			out = append(out, strings.Join(parts, combinationSeparator))
			return
		}
		v := variations[depth]
		for _, opt := range v.options {
			parts[depth] = fmt.Sprintf("%s: %s", v.name, opt)
			walk(depth + 1)
		}
	}
	walk(0)

	return out
}

// MissingCombinations returns the generated combinations that have no stock
// record yet, preserving generation order. Used to create new records at
// stock zero without disturbing existing counters (idempotent recompute).
func MissingCombinations(variations []*ItemVariation, existing []*VariantStock) []string {
	have := make(map[string]bool, len(existing))
	for _, s := range existing {
		have[s.combination] = true
	}

	var missing []string
	for _, c := range Combinations(variations) {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// OrphanedStocks returns the stock records whose combination is no longer
// generable from the given variations. Produced when a variation is removed
// or edited; the caller decides to prune them.
func OrphanedStocks(variations []*ItemVariation, existing []*VariantStock) []*VariantStock {
	live := make(map[string]bool)
	for _, c := range Combinations(variations) {
		live[c] = true
	}

	var orphans []*VariantStock
	for _, s := range existing {
		if !live[s.combination] {
			orphans = append(orphans, s)
		}
	}
	return orphans
}
