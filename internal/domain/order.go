package domain

import "time"

type Order struct {
	ID          string
	CustomerID  string
	Date        time.Time
	Source      string
	Status      string
	TotalAmount float64
	CreatedAt   time.Time
}

const (
	OrderStatusNew        = "new"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

const (
	OrderSourceWebsite  = "website"
	OrderSourcePhone    = "phone"
	OrderSourceStore    = "store"
	OrderSourceReferral = "referral"
	OrderSourceOther    = "other"
)

func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

func IsValidOrderSource(source string) bool {
	switch source {
	case OrderSourceWebsite, OrderSourcePhone, OrderSourceStore, OrderSourceReferral, OrderSourceOther:
		return true
	}
	return false
}
