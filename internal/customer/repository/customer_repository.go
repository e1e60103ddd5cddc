package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
)

type MySQLCustomerRepository struct {
	db *sql.DB
}

func NewMySQLCustomerRepository(db *sql.DB) *MySQLCustomerRepository {
	return &MySQLCustomerRepository{db: db}
}

const customerColumns = "id, name, phone, address, email, totalOrders, totalSpent, createdAt"

func scanCustomer(row *sql.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Address, &c.Email,
		&c.TotalOrders, &c.TotalSpent, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MySQLCustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM Customers
		WHERE id = ?
	`

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer with id %s not found", id))
	}
	if err != nil {
		return nil, errors.NewStoreError("querying customer by id", err)
	}

	return customer, nil
}

// FindByPhone matches on the raw phone string exactly as it was stored, with no
// normalization. Several rows may share a phone because no unique constraint
// exists; the oldest row wins.
func (r *MySQLCustomerRepository) FindByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM Customers
		WHERE phone = ?
		ORDER BY createdAt ASC
		LIMIT 1
	`

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, phone))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer with phone %s not found", phone))
	}
	if err != nil {
		return nil, errors.NewStoreError("querying customer by phone", err)
	}

	return customer, nil
}

func (r *MySQLCustomerRepository) Insert(ctx context.Context, customer domain.Customer) error {
	query := `
		INSERT INTO Customers (id, name, phone, address, email, totalOrders, totalSpent, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		customer.ID, customer.Name, customer.Phone, customer.Address, customer.Email,
		customer.TotalOrders, customer.TotalSpent, customer.CreatedAt,
	)
	if err != nil {
		return errors.NewStoreError("inserting customer", err)
	}

	return nil
}

// UpdateFields writes only the fields present in changes. An empty change set
// is a no-op.
func (r *MySQLCustomerRepository) UpdateFields(ctx context.Context, id string, changes domain.ProposedChanges) error {
	if changes.IsEmpty() {
		return nil
	}

	sets := make([]string, 0, 6)
	args := make([]interface{}, 0, 7)

	if changes.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *changes.Name)
	}
	if changes.Address != nil {
		sets = append(sets, "address = ?")
		args = append(args, *changes.Address)
	}
	if changes.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *changes.Email)
	}
	if changes.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *changes.Phone)
	}
	if changes.TotalOrders != nil {
		sets = append(sets, "totalOrders = ?")
		args = append(args, *changes.TotalOrders)
	}
	if changes.TotalSpent != nil {
		sets = append(sets, "totalSpent = ?")
		args = append(args, *changes.TotalSpent)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE Customers SET %s WHERE id = ?", strings.Join(sets, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.NewStoreError("updating customer", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewStoreError("getting rows affected", err)
	}

	// MySQL reports 0 affected rows when the update set identical values, so a
	// zero here is only a NotFound if the row truly does not exist.
	if rowsAffected == 0 {
		var one int
		err := r.db.QueryRowContext(ctx, "SELECT 1 FROM Customers WHERE id = ?", id).Scan(&one)
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError(fmt.Sprintf("customer with id %s not found", id))
		}
		if err != nil {
			return errors.NewStoreError("checking customer existence", err)
		}
	}

	return nil
}

func (r *MySQLCustomerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM Customers WHERE id = ?", id)
	if err != nil {
		return errors.NewStoreError("deleting customer", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewStoreError("getting rows affected", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("customer with id %s not found", id))
	}

	return nil
}

func (r *MySQLCustomerRepository) List(ctx context.Context, offset, limit int) ([]domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM Customers
		ORDER BY createdAt DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, errors.NewStoreError("listing customers", err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

// ScanAll walks the whole Customers table in fixed-size pages, oldest first,
// calling fn once per page. The scan holds no cursor server-side: a failure
// midway is recoverable only by re-issuing the scan from the start.
func (r *MySQLCustomerRepository) ScanAll(ctx context.Context, pageSize int, fn func(page []domain.Customer) error) error {
	query := `
		SELECT ` + customerColumns + `
		FROM Customers
		ORDER BY createdAt ASC, id ASC
		LIMIT ? OFFSET ?
	`

	for offset := 0; ; offset += pageSize {
		rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
		if err != nil {
			return errors.NewStoreError("scanning customers", err)
		}

		page, err := collectCustomers(rows)
		rows.Close()
		if err != nil {
			return err
		}

		if len(page) == 0 {
			return nil
		}

		if err := fn(page); err != nil {
			return err
		}

		if len(page) < pageSize {
			return nil
		}
	}
}

func collectCustomers(rows *sql.Rows) ([]domain.Customer, error) {
	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		err := rows.Scan(
			&c.ID, &c.Name, &c.Phone, &c.Address, &c.Email,
			&c.TotalOrders, &c.TotalSpent, &c.CreatedAt,
		)
		if err != nil {
			return nil, errors.NewStoreError("scanning customer row", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("iterating customer rows", err)
	}

	return customers, nil
}
