package order

import (
	"errors"

	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrPaymentInformationIsNotConstructed = errors.New(
	"PaymentInformation must be created via NewPaymentInformation constructor")

// PaymentInformation is an opaque payment token. The order service never
// interprets it; it only keeps it with the order for the payment collaborator.
type PaymentInformation struct {
	paymentToken string

	guard guard.ConstructorGuard
}

func NewPaymentInformation(paymentToken string) (PaymentInformation, error) {
	if paymentToken == "" {
		return PaymentInformation{}, errs.NewValueIsRequiredError("paymentToken")
	}
	return PaymentInformation{paymentToken: paymentToken, guard: guard.NewConstructorGuard()}, nil
}

func (p PaymentInformation) Validate() error {
	return p.guard.Validate(ErrPaymentInformationIsNotConstructed)
}

func (p PaymentInformation) PaymentToken() string {
	return p.paymentToken
}

func (p PaymentInformation) IsEqual(other PaymentInformation) bool {
	return p.paymentToken == other.paymentToken
}
