// Package catalog contains the variant-combination inventory model.
//
// A physical item declares independent variations (e.g. Size, Color), each
// with an ordered list of options. The live set of variant combinations is
// the cartesian product of those option lists; every combination carries its
// own stock counter. Once any variation exists for an item, availability is
// looked up per combination and the item's scalar base stock is advisory.
//
// Combination generation is deterministic and idempotent: recomputing without
// changing the variations never creates duplicate stock records.
package catalog
