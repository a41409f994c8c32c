package warehouse

import (
	"time"

	"view-binder/accessor"
)

// SampleOrder returns a fully populated order with a lazily loaded customer.
func SampleOrder() *Order {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	placed := created.Add(2 * time.Hour)

	home := Address{
		ID:         1,
		Street:     "Karl Johans gate 1",
		City:       "Oslo",
		PostalCode: "0154",
		Country:    "NO",
		IsDefault:  true,
	}

	keyboard := NewProduct(10, "KB-01", "Keyboard", 4999, 12)
	cable := NewProduct(11, "CB-02", "USB cable", 799, 0)

	return &Order{
		Timestamps:      Timestamps{CreatedAt: created, UpdatedAt: placed},
		ID:              1001,
		OrderNumber:     "WH-1001",
		status:          StatusPaid,
		Currency:        "EUR",
		ShippingAddress: home,
		Customer: accessor.Defer(func() (*Customer, error) {
			c := NewCustomer(7, "Ada", "Lovelace", "ada@example.com")
			c.CreatedAt = created.AddDate(-1, 0, 0)
			c.Addresses = []Address{home}
			return c, nil
		}),
		Items: []OrderItem{
			{ID: 1, Quantity: 1, UnitPrice: 4999, Product: keyboard},
			{ID: 2, Quantity: 2, UnitPrice: 799, Product: cable},
		},
		PlacedAt: &placed,
	}
}
