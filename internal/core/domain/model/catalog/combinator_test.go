package catalog_test

import (
	"fmt"
	"testing"

	"redemption/internal/core/domain/model/catalog"
	"redemption/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVariation(t *testing.T, itemID int64, name string, options ...string) *catalog.ItemVariation {
	t.Helper()
	v, err := catalog.NewItemVariation(kernel.NewUUID(), itemID, name, options)
	require.NoError(t, err)
	return v
}

func newStock(t *testing.T, itemID int64, combination string) *catalog.VariantStock {
	t.Helper()
	s, err := catalog.NewVariantStock(kernel.NewUUID(), itemID, combination)
	require.NoError(t, err)
	return s
}

func TestCombinations(t *testing.T) {
	t.Run("size and color produce six combinations in declaration order", func(t *testing.T) {
		variations := []*catalog.ItemVariation{
			newVariation(t, 1, "Size", "S", "M", "L"),
			newVariation(t, 1, "Color", "Red", "Blue"),
		}

		got := catalog.Combinations(variations)

		assert.Equal(t, []string{
			"Size: S / Color: Red",
			"Size: S / Color: Blue",
			"Size: M / Color: Red",
			"Size: M / Color: Blue",
			"Size: L / Color: Red",
			"Size: L / Color: Blue",
		}, got)
	})

	t.Run("single variation yields one combination per option", func(t *testing.T) {
		variations := []*catalog.ItemVariation{
			newVariation(t, 1, "Material", "Cotton", "Wool"),
		}

		got := catalog.Combinations(variations)

		assert.Equal(t, []string{"Material: Cotton", "Material: Wool"}, got)
	})

	t.Run("no variations yields no combinations", func(t *testing.T) {
		assert.Empty(t, catalog.Combinations(nil))
	})

	t.Run("count equals the product of option counts", func(t *testing.T) {
		cases := []struct {
			counts []int
		}{
			{counts: []int{1}},
			{counts: []int{2, 3}},
			{counts: []int{3, 2, 4}},
			{counts: []int{2, 2, 2, 2}},
		}

		for _, tc := range cases {
			t.Run(fmt.Sprintf("option counts %v", tc.counts), func(t *testing.T) {
				variations := make([]*catalog.ItemVariation, len(tc.counts))
				want := 1
				for i, k := range tc.counts {
					options := make([]string, k)
					for j := range options {
						options[j] = fmt.Sprintf("opt%d", j)
					}
					variations[i] = newVariation(t, 1, fmt.Sprintf("Var%d", i), options...)
					want *= k
				}

				got := catalog.Combinations(variations)

				assert.Len(t, got, want)

				unique := make(map[string]bool, len(got))
				for _, c := range got {
					assert.False(t, unique[c], "combination %q repeats", c)
					unique[c] = true
				}
			})
		}
	})

	t.Run("last declared variation varies fastest", func(t *testing.T) {
		variations := []*catalog.ItemVariation{
			newVariation(t, 1, "A", "1", "2"),
			newVariation(t, 1, "B", "x", "y"),
		}

		got := catalog.Combinations(variations)

		require.Len(t, got, 4)
		assert.Equal(t, "A: 1 / B: x", got[0])
		assert.Equal(t, "A: 1 / B: y", got[1])
		assert.Equal(t, "A: 2 / B: x", got[2])
		assert.Equal(t, "A: 2 / B: y", got[3])
	})
}

func TestMissingCombinations(t *testing.T) {
	variations := []*catalog.ItemVariation{
		newVariation(t, 1, "Size", "S", "M"),
		newVariation(t, 1, "Color", "Red", "Blue"),
	}

	t.Run("all combinations missing when no records exist", func(t *testing.T) {
		missing := catalog.MissingCombinations(variations, nil)
		assert.Len(t, missing, 4)
	})

	t.Run("recompute with full set is a no-op", func(t *testing.T) {
		var existing []*catalog.VariantStock
		for _, c := range catalog.Combinations(variations) {
			existing = append(existing, newStock(t, 1, c))
		}

		missing := catalog.MissingCombinations(variations, existing)

		assert.Empty(t, missing)
	})

	t.Run("only new combinations are reported after adding a variation", func(t *testing.T) {
		var existing []*catalog.VariantStock
		for _, c := range catalog.Combinations(variations) {
			existing = append(existing, newStock(t, 1, c))
		}

		grown := append(variations, newVariation(t, 1, "Material", "Cotton"))
		missing := catalog.MissingCombinations(grown, existing)

		assert.Len(t, missing, 4)
		for _, c := range missing {
			assert.Contains(t, c, "Material: Cotton")
		}
	})
}

func TestOrphanedStocks(t *testing.T) {
	t.Run("records for removed variations become orphans", func(t *testing.T) {
		full := []*catalog.ItemVariation{
			newVariation(t, 1, "Size", "S", "M"),
			newVariation(t, 1, "Color", "Red", "Blue"),
		}
		var existing []*catalog.VariantStock
		for _, c := range catalog.Combinations(full) {
			existing = append(existing, newStock(t, 1, c))
		}

		remaining := full[:1] // Color removed
		orphans := catalog.OrphanedStocks(remaining, existing)

		assert.Len(t, orphans, 4)
	})

	t.Run("no orphans when variations unchanged", func(t *testing.T) {
		variations := []*catalog.ItemVariation{newVariation(t, 1, "Size", "S")}
		existing := []*catalog.VariantStock{newStock(t, 1, "Size: S")}

		assert.Empty(t, catalog.OrphanedStocks(variations, existing))
	})
}
