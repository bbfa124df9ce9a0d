package order

import (
	"errors"

	"redemption/internal/pkg/errs"
	"redemption/internal/pkg/guard"
)

// ErrShippingInfoIsNotConstructed is returned when a ShippingInfo instance
// was not created through the NewShippingInfo constructor.
var ErrShippingInfoIsNotConstructed = errors.New(
	"ShippingInfo must be created via NewShippingInfo constructor",
)

// ShippingInfo is the immutable shipping snapshot captured when an order is
// created. The snapshot deliberately does not follow later edits to the
// user's address book: the order ships to the address the user confirmed at
// redemption time.
type ShippingInfo struct {
	recipientName string
	addressLine1  string
	addressLine2  string
	city          string
	postalCode    string
	country       string

	guard guard.ConstructorGuard
}

// NewShippingInfo creates a validated shipping snapshot.
//
// Required fields: recipientName, addressLine1, city, postalCode, country.
// addressLine2 is optional. All validation failures are joined so callers
// see every missing field at once.
func NewShippingInfo(recipientName, addressLine1, addressLine2, city, postalCode, country string) (ShippingInfo, error) {
	info := ShippingInfo{
		addressLine2: addressLine2,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		info.setRecipientName(recipientName),
		info.setAddressLine1(addressLine1),
		info.setCity(city),
		info.setPostalCode(postalCode),
		info.setCountry(country),
	); err != nil {
		return ShippingInfo{}, err
	}

	return info, nil
}

// Validate ensures the snapshot was created through the constructor.
func (s ShippingInfo) Validate() error {
	return s.guard.Validate(ErrShippingInfoIsNotConstructed)
}

// RecipientName returns the name of the person receiving the shipment.
func (s ShippingInfo) RecipientName() string {
	return s.recipientName
}

// AddressLine1 returns the primary street address.
func (s ShippingInfo) AddressLine1() string {
	return s.addressLine1
}

// AddressLine2 returns the optional secondary address line.
func (s ShippingInfo) AddressLine2() string {
	return s.addressLine2
}

// City returns the destination city.
func (s ShippingInfo) City() string {
	return s.city
}

// PostalCode returns the destination postal code.
func (s ShippingInfo) PostalCode() string {
	return s.postalCode
}

// Country returns the destination country.
func (s ShippingInfo) Country() string {
	return s.country
}

func (s *ShippingInfo) setRecipientName(v string) error {
	if v == "" {
		return errs.NewValueIsRequiredError("recipientName")
	}
	s.recipientName = v
	return nil
}

func (s *ShippingInfo) setAddressLine1(v string) error {
	if v == "" {
		return errs.NewValueIsRequiredError("addressLine1")
	}
	s.addressLine1 = v
	return nil
}

func (s *ShippingInfo) setCity(v string) error {
	if v == "" {
		return errs.NewValueIsRequiredError("city")
	}
	s.city = v
	return nil
}

func (s *ShippingInfo) setPostalCode(v string) error {
	if v == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}
	s.postalCode = v
	return nil
}

func (s *ShippingInfo) setCountry(v string) error {
	if v == "" {
		return errs.NewValueIsRequiredError("country")
	}
	s.country = v
	return nil
}
