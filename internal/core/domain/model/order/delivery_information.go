package order

import (
	"errors"
	"time"

	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var (
	ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")
	ErrDeliveryInformationIsNotConstructed = errors.New(
		"DeliveryInformation must be created via NewDeliveryInformation constructor")
)

// Address is the delivery destination. Street2 is optional.
type Address struct {
	street1 string
	street2 string
	city    string
	state   string
	zip     string

	guard guard.ConstructorGuard
}

func NewAddress(street1, street2, city, state, zip string) (Address, error) {
	var validationErrs []error
	for name, value := range map[string]string{"street1": street1, "city": city, "state": state, "zip": zip} {
		if value == "" {
			validationErrs = append(validationErrs, errs.NewValueIsRequiredError(name))
		}
	}
	if err := errors.Join(validationErrs...); err != nil {
		return Address{}, err
	}

	return Address{
		street1: street1,
		street2: street2,
		city:    city,
		state:   state,
		zip:     zip,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Street1() string { return a.street1 }
func (a Address) Street2() string { return a.street2 }
func (a Address) City() string    { return a.city }
func (a Address) State() string   { return a.state }
func (a Address) Zip() string     { return a.zip }

func (a Address) IsEqual(other Address) bool {
	return a.street1 == other.street1 &&
		a.street2 == other.street2 &&
		a.city == other.city &&
		a.state == other.state &&
		a.zip == other.zip
}

// DeliveryInformation is where and when the order is delivered. It is replaced
// as a whole when a revision carrying new delivery information is confirmed.
type DeliveryInformation struct {
	deliveryTime    time.Time
	deliveryAddress Address

	guard guard.ConstructorGuard
}

func NewDeliveryInformation(deliveryTime time.Time, deliveryAddress Address) (DeliveryInformation, error) {
	var validationErrs []error
	if deliveryTime.IsZero() {
		validationErrs = append(validationErrs, errs.NewValueIsRequiredError("deliveryTime"))
	}
	if err := deliveryAddress.Validate(); err != nil {
		validationErrs = append(validationErrs, err)
	}
	if err := errors.Join(validationErrs...); err != nil {
		return DeliveryInformation{}, err
	}

	return DeliveryInformation{
		deliveryTime:    deliveryTime.UTC(),
		deliveryAddress: deliveryAddress,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (d DeliveryInformation) Validate() error {
	return d.guard.Validate(ErrDeliveryInformationIsNotConstructed)
}

func (d DeliveryInformation) DeliveryTime() time.Time {
	return d.deliveryTime
}

func (d DeliveryInformation) DeliveryAddress() Address {
	return d.deliveryAddress
}

// IsEqual compares by content.
func (d DeliveryInformation) IsEqual(other DeliveryInformation) bool {
	return d.deliveryTime.Equal(other.deliveryTime) && d.deliveryAddress.IsEqual(other.deliveryAddress)
}
