package queries

import (
	"errors"

	"orderservice/internal/pkg/guard"
)

var ErrCountOrdersByStateQueryIsNotConstructed = errors.New(
	"CountOrdersByStateQuery must be created via NewCountOrdersByStateQuery constructor",
)

// CountOrdersByStateQuery counts stored orders per state. It feeds the
// per-state gauge.
type CountOrdersByStateQuery struct {
	guard guard.ConstructorGuard
}

func NewCountOrdersByStateQuery() CountOrdersByStateQuery {
	return CountOrdersByStateQuery{guard: guard.NewConstructorGuard()}
}

func (q CountOrdersByStateQuery) Validate() error {
	return q.guard.Validate(ErrCountOrdersByStateQueryIsNotConstructed)
}
