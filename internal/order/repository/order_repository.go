package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = "id, customerId, date, source, status, totalAmount, createdAt"

// defaultCountBatchSize caps the IN list when the configured batch size is
// missing or nonsensical.
const defaultCountBatchSize = 100

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM Orders
		WHERE id = ?
	`

	var o domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.CustomerID, &o.Date, &o.Source, &o.Status, &o.TotalAmount, &o.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, errors.NewStoreError("querying order by id", err)
	}

	return &o, nil
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, order domain.Order) error {
	query := `
		INSERT INTO Orders (id, customerId, date, source, status, totalAmount, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		order.ID, order.CustomerID, order.Date, order.Source, order.Status,
		order.TotalAmount, order.CreatedAt,
	)
	if err != nil {
		return errors.NewStoreError("inserting order", err)
	}

	return nil
}

// ListPage returns one page of orders, newest first. An empty status matches
// every order.
func (r *MySQLOrderRepository) ListPage(ctx context.Context, status string, offset, limit int) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM Orders
	`
	args := []interface{}{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY date DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStoreError("listing orders", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		err := rows.Scan(&o.ID, &o.CustomerID, &o.Date, &o.Source, &o.Status, &o.TotalAmount, &o.CreatedAt)
		if err != nil {
			return nil, errors.NewStoreError("scanning order row", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("iterating order rows", err)
	}

	return orders, nil
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE Orders SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return errors.NewStoreError("updating order status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewStoreError("getting rows affected", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM Orders WHERE id = ?", id)
	if err != nil {
		return errors.NewStoreError("deleting order", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewStoreError("getting rows affected", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}

	return nil
}

// CountByCustomers returns live order counts per customer id, querying in
// chunks of batchSize ids so the IN list stays bounded. Customers with no
// orders are absent from the result.
func (r *MySQLOrderRepository) CountByCustomers(ctx context.Context, customerIDs []string, batchSize int) (map[string]int, error) {
	if batchSize < 1 {
		batchSize = defaultCountBatchSize
	}

	counts := make(map[string]int, len(customerIDs))

	for start := 0; start < len(customerIDs); start += batchSize {
		end := start + batchSize
		if end > len(customerIDs) {
			end = len(customerIDs)
		}
		batch := customerIDs[start:end]

		placeholders := make([]string, len(batch))
		args := make([]interface{}, len(batch))
		for i, id := range batch {
			placeholders[i] = "?"
			args[i] = id
		}

		query := fmt.Sprintf(`
			SELECT customerId, COUNT(*)
			FROM Orders
			WHERE customerId IN (%s)
			GROUP BY customerId`,
			strings.Join(placeholders, ", "),
		)

		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, errors.NewStoreError("counting orders by customer", err)
		}

		for rows.Next() {
			var customerID string
			var count int
			if err := rows.Scan(&customerID, &count); err != nil {
				rows.Close()
				return nil, errors.NewStoreError("scanning order count row", err)
			}
			counts[customerID] = count
		}

		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, errors.NewStoreError("iterating order count rows", err)
		}
		rows.Close()
	}

	return counts, nil
}

// ReassignCustomer rewrites every order of fromCustomerID to toCustomerID and
// reports how many rows moved.
func (r *MySQLOrderRepository) ReassignCustomer(ctx context.Context, fromCustomerID, toCustomerID string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE Orders SET customerId = ? WHERE customerId = ?",
		toCustomerID, fromCustomerID,
	)
	if err != nil {
		return 0, errors.NewStoreError("reassigning orders", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewStoreError("getting rows affected", err)
	}

	return int(rowsAffected), nil
}
