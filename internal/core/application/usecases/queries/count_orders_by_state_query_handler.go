package queries

import (
	"context"

	"orderservice/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type CountOrdersByStateQueryHandler struct {
	db *gorm.DB
}

func NewCountOrdersByStateQueryHandler(db *gorm.DB) CountOrdersByStateQueryHandler {
	return CountOrdersByStateQueryHandler{db: db}
}

// Handle returns a count for every state in order.States(), zero included.
func (h CountOrdersByStateQueryHandler) Handle(
	ctx context.Context,
	query CountOrdersByStateQuery,
) (map[order.State]int64, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	counts := make(map[order.State]int64, len(order.States()))
	for _, state := range order.States() {
		counts[state] = 0
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT state, COUNT(*)
		FROM orders
		GROUP BY state
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var count int64
		if err = rows.Scan(&name, &count); err != nil {
			return nil, err
		}

		state, parseErr := order.ParseState(name)
		if parseErr != nil {
			return nil, parseErr
		}
		counts[state] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
