package kernel

import (
	"fmt"
	"math"

	"orderservice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is an immutable monetary amount backed by github.com/shopspring/decimal.
// The zero value is a valid amount of zero. Money carries no currency: the
// order service works in a single settlement currency.
//
// Money values must be compared with Equal, never with ==, because the
// underlying decimal keeps a pointer to its coefficient.
type Money struct {
	amount decimal.Decimal
}

// Zero is the additive identity.
var Zero = Money{}

// MaxOrderMinimum is the order minimum an order carries when none is supplied.
// Its value matches the largest 32-bit signed integer so that, without an
// explicit minimum, no realistic revision trips the minimum guard.
var MaxOrderMinimum = NewMoneyFromInt(math.MaxInt32)

// Scale is the number of fractional digits an amount may carry. Stored
// amounts are numeric(19,2), so anything finer would be rounded on write.
const Scale = 2

// NewMoney parses a decimal string such as "12.50". More than Scale
// fractional digits is rejected.
func NewMoney(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	if d.Exponent() < -Scale && !d.Equal(d.Truncate(Scale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%s has more than %d decimal places", amount, Scale))
	}
	return Money{amount: d}, nil
}

// NewMoneyFromInt returns an amount of whole units.
func NewMoneyFromInt(amount int64) Money {
	return Money{amount: decimal.NewFromInt(amount)}
}

// NewMoneyFromDecimal wraps an existing decimal, e.g. one read from the database.
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// Amount returns the underlying decimal.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Multiply scales the amount by an integer factor, typically a quantity.
func (m Money) Multiply(factor int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor)))}
}

func (m Money) IsGreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Equal compares amounts numerically, so 10 and 10.00 are equal.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

