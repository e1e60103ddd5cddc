package domain

import "time"

// UnknownCustomerName is the placeholder name stamped on customers created from
// orders that carried no real name. Merge planning treats it as replaceable.
const UnknownCustomerName = "Неизвестный клиент"

type Customer struct {
	ID          string
	Name        string
	Phone       string
	Address     *string
	Email       *string
	TotalOrders int
	TotalSpent  float64
	CreatedAt   time.Time
}

func (c Customer) HasAddress() bool {
	return c.Address != nil && *c.Address != ""
}

func (c Customer) HasEmail() bool {
	return c.Email != nil && *c.Email != ""
}
