package dto

import "time"

type CustomerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address,omitempty"`
	Email       string    `json:"email,omitempty"`
	TotalOrders int       `json:"totalOrders"`
	TotalSpent  float64   `json:"totalSpent"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Page      int                `json:"page"`
	PageSize  int                `json:"pageSize"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Email   *string `json:"email"`
}
