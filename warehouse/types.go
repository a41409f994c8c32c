// Package warehouse is a small order-management domain used to exercise the
// binder: entities keep their state in unexported fields behind getters, and
// relations may be loaded lazily.
package warehouse

import (
	"time"

	"view-binder/accessor"
)

// Address represents a physical or billing/shipping address.
type Address struct {
	ID         uint   `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

// Timestamps is embedded by every entity.
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Customer represents a store customer/user.
type Customer struct {
	Timestamps
	ID           uint
	firstName    string
	lastName     string
	email        string
	Phone        string
	passwordHash string
	DateOfBirth  *time.Time
	Addresses    []Address
}

// NewCustomer creates a customer with its private fields set.
func NewCustomer(id uint, first, last, email string) *Customer {
	return &Customer{ID: id, firstName: first, lastName: last, email: email}
}

func (c *Customer) GetFirstName() string { return c.firstName }
func (c *Customer) GetLastName() string  { return c.lastName }

// FullName is exposed as a derived property.
func (c *Customer) FullName() string { return c.firstName + " " + c.lastName }

func (c *Customer) SetPassword(hash string) { c.passwordHash = hash }

// Product represents a sellable item in the store.
type Product struct {
	Timestamps
	ID          uint
	SKU         SKU
	Name        string
	Description string
	Price       Cents
	stock       int
	active      bool
	Weight      float64 // in grams
}

func NewProduct(id uint, sku SKU, name string, price Cents, stock int) *Product {
	return &Product{ID: id, SKU: sku, Name: name, Price: price, stock: stock, active: stock > 0}
}

func (p *Product) IsActive() bool { return p.active }

// SKU is a stock keeping unit.
type SKU string

// Cents is an amount in the minor currency unit.
type Cents int64

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusCancelled OrderStatus = "cancelled"
)

// Order represents a customer's purchase.
type Order struct {
	Timestamps
	ID          uint
	OrderNumber string
	status      OrderStatus
	Currency    string

	ShippingAddress Address
	BillingAddress  *Address

	// loaded on first access
	Customer *accessor.Deferred[Customer]
	Items    []OrderItem

	PlacedAt    *time.Time
	ShippedAt   *time.Time
	CancelledAt *time.Time
}

func (o *Order) GetStatus() OrderStatus { return o.status }

// TotalAmount sums the line totals.
func (o *Order) TotalAmount() Cents {
	var total Cents
	for _, it := range o.Items {
		total += it.TotalPrice()
	}

	return total
}

// OrderItem is a line item within an order.
type OrderItem struct {
	ID        uint
	Quantity  int
	UnitPrice Cents // price at time of purchase
	Product   *Product
}

// TotalPrice is UnitPrice * Quantity.
func (i OrderItem) TotalPrice() Cents {
	return i.UnitPrice * Cents(i.Quantity)
}
