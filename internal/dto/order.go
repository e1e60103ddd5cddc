package dto

import "time"

type CreateOrderRequest struct {
	CustomerID string             `json:"customerId"`
	Customer   CustomerAttempt    `json:"customer"`
	Date       *time.Time         `json:"date"`
	Source     string             `json:"source"`
	Status     string             `json:"status"`
	Items      []OrderItemRequest `json:"items"`
}

type CustomerAttempt struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

type OrderItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type OrderResponse struct {
	ID          string              `json:"id"`
	CustomerID  string              `json:"customerId"`
	Customer    *CustomerResponse   `json:"customer,omitempty"`
	Date        time.Time           `json:"date"`
	Source      string              `json:"source"`
	Status      string              `json:"status"`
	Items       []OrderItemResponse `json:"items"`
	TotalAmount float64             `json:"totalAmount"`
}

type OrderItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type OrderListResponse struct {
	Orders   []OrderResponse `json:"orders"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
