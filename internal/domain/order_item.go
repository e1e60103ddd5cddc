package domain

type OrderItem struct {
	ID          string
	OrderID     string
	Name        string
	Description *string
	Price       float64
	Quantity    int
}

// OrderTotal is the write-time total of an order: the sum of price times
// quantity over its items. It is stored on the order row and never re-derived
// on read.
func OrderTotal(items []OrderItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
