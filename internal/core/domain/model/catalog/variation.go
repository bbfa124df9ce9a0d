package catalog

import (
	"errors"
	"fmt"

	"redemption/internal/core/domain/model/kernel"
	"redemption/internal/pkg/errs"
	"redemption/internal/pkg/guard"
)

// ErrVariationIsNotConstructed is returned when an ItemVariation instance was
// not created through the NewItemVariation constructor.
var ErrVariationIsNotConstructed = errors.New(
	"ItemVariation must be created via NewItemVariation constructor",
)

// ItemVariation declares one independent attribute of a physical item, such
// as "Size" or "Color", together with its ordered list of options.
//
// Invariants:
//   - name is non-empty
//   - options is non-empty, every label is non-empty, and labels are distinct
//   - option order is preserved: it determines the iteration order when
//     combinations are generated
type ItemVariation struct {
	id             kernel.UUID
	physicalItemID int64
	name           string
	options        []string

	guard guard.ConstructorGuard
}

// NewItemVariation creates a validated variation for a physical item.
//
// Returns a validation error if name is empty, options is empty, any option
// label is empty, or labels repeat.
func NewItemVariation(id kernel.UUID, physicalItemID int64, name string, options []string) (*ItemVariation, error) {
	v := &ItemVariation{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setPhysicalItemID(physicalItemID),
		v.setName(name),
		v.setOptions(options),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// Validate ensures the variation was created through the constructor.
func (v *ItemVariation) Validate() error {
	if v == nil {
		return ErrVariationIsNotConstructed
	}
	return v.guard.Validate(ErrVariationIsNotConstructed)
}

// ID returns the variation's unique identifier.
func (v *ItemVariation) ID() kernel.UUID {
	return v.id
}

// PhysicalItemID returns the item this variation belongs to.
func (v *ItemVariation) PhysicalItemID() int64 {
	return v.physicalItemID
}

// Name returns the attribute name, e.g. "Size".
func (v *ItemVariation) Name() string {
	return v.name
}

// Options returns a defensive copy of the ordered option labels.
func (v *ItemVariation) Options() []string {
	out := make([]string, len(v.options))
	copy(out, v.options)
	return out
}

func (v *ItemVariation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *ItemVariation) setPhysicalItemID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("physicalItemId",
			fmt.Errorf("%d is not greater than 0", id))
	}
	v.physicalItemID = id
	return nil
}

func (v *ItemVariation) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	v.name = name
	return nil
}

func (v *ItemVariation) setOptions(options []string) error {
	if len(options) == 0 {
		return errs.NewValueIsRequiredError("options")
	}

	seen := make(map[string]bool, len(options))
	for i, opt := range options {
		if opt == "" {
			return errs.NewValueIsInvalidErrorWithCause("options",
				fmt.Errorf("option %d has an empty label", i))
		}
		if seen[opt] {
			return errs.NewValueIsInvalidErrorWithCause("options",
				fmt.Errorf("option label %q repeats", opt))
		}
		seen[opt] = true
	}

	v.options = make([]string, len(options))
	copy(v.options, options)
	return nil
}
