package repository

import (
	"context"
	"database/sql"
	"strings"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

// InsertBatch writes all items of one order in a single multi-row insert.
func (r *MySQLOrderItemRepository) InsertBatch(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	placeholders := make([]string, len(items))
	args := make([]interface{}, 0, len(items)*6)
	for i, item := range items {
		placeholders[i] = "(?, ?, ?, ?, ?, ?)"
		args = append(args, item.ID, item.OrderID, item.Name, item.Description, item.Price, item.Quantity)
	}

	query := `
		INSERT INTO OrderItems (id, orderId, name, description, price, quantity)
		VALUES ` + strings.Join(placeholders, ", ")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.NewStoreError("inserting order items", err)
	}

	return nil
}

func (r *MySQLOrderItemRepository) ByOrderID(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	query := `
		SELECT id, orderId, name, description, price, quantity
		FROM OrderItems
		WHERE orderId = ?
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, errors.NewStoreError("querying order items", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.Name, &item.Description, &item.Price, &item.Quantity)
		if err != nil {
			return nil, errors.NewStoreError("scanning order item row", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("iterating order item rows", err)
	}

	return items, nil
}

func (r *MySQLOrderItemRepository) DeleteByOrderID(ctx context.Context, orderID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM OrderItems WHERE orderId = ?", orderID); err != nil {
		return errors.NewStoreError("deleting order items", err)
	}
	return nil
}
