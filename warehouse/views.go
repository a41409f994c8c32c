package warehouse

import (
	"reflect"
	"time"

	"view-binder/bind"
	"view-binder/view"
)

// AddressView is the public projection of an Address.
type AddressView struct {
	view.Bound
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// CustomerView exposes a customer without its credentials.
type CustomerView struct {
	view.Bound
	ID        uint                       `json:"id"`
	Email     string                     `json:"email"`
	FirstName string                     `json:"first_name"`
	LastName  string                     `json:"last_name"`
	FullName  string                     `json:"full_name" bind:"-"`
	Phone     string                     `json:"phone,omitempty"`
	Addresses view.Iterable[AddressView] `json:"addresses"`
	Member    string                     `json:"member_since" bind:"-"`
}

// PrepareView fills the fields the binder cannot derive.
func (v *CustomerView) PrepareView(source any) error {
	c, ok := source.(*Customer)
	if !ok {
		return nil
	}
	v.FullName = c.FullName()
	if !c.CreatedAt.IsZero() {
		v.Member = c.CreatedAt.Format(time.DateOnly)
	}

	return nil
}

// ProductView is the catalogue projection of a Product.
type ProductView struct {
	view.Bound
	SKU    string  `json:"sku"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Active bool    `json:"active"`
}

// OrderItemView is one line of an OrderView.
type OrderItemView struct {
	view.Bound
	Quantity  int          `json:"quantity"`
	UnitPrice int64        `json:"unit_price"`
	Product   *ProductView `json:"product"`
}

// OrderView is the detail projection of a single order. It renders wrapped
// in a data envelope.
type OrderView struct {
	view.Bound
	ID              uint                         `json:"id"`
	OrderNumber     string                       `json:"order_number"`
	Status          string                       `json:"status"`
	TotalAmount     int64                        `json:"total_amount" bind:"-"`
	Currency        string                       `json:"currency"`
	Customer        *CustomerView                `json:"customer"`
	ShippingAddress *AddressView                 `json:"shipping_address"`
	BillingAddress  *AddressView                 `json:"billing_address,omitempty"`
	Items           view.Iterable[view.Bindable] `json:"items" bind:",elem=warehouse.OrderItemView"`
	PlacedAt        *time.Time                   `json:"placed_at,omitempty"`
}

// PrepareView computes the order total.
func (v *OrderView) PrepareView(source any) error {
	if o, ok := source.(*Order); ok {
		v.TotalAmount = int64(o.TotalAmount())
	}

	return nil
}

// OrderSummary is the compact projection used in listings.
type OrderSummary struct {
	view.Bound
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
	Currency    string `json:"currency"`
	Items       int    `json:"items" bind:"-"`
}

// PrepareView counts the order lines.
func (v *OrderSummary) PrepareView(source any) error {
	if o, ok := source.(*Order); ok {
		v.Items = len(o.Items)
	}

	return nil
}

func init() {
	bind.Register[OrderItemView]("warehouse.OrderItemView")
}

// Types lists the warehouse types by name, views and entities alike.
func Types() map[string]reflect.Type {
	return map[string]reflect.Type{
		"Address":       reflect.TypeFor[Address](),
		"Customer":      reflect.TypeFor[Customer](),
		"Product":       reflect.TypeFor[Product](),
		"Order":         reflect.TypeFor[Order](),
		"OrderItem":     reflect.TypeFor[OrderItem](),
		"AddressView":   reflect.TypeFor[AddressView](),
		"CustomerView":  reflect.TypeFor[CustomerView](),
		"ProductView":   reflect.TypeFor[ProductView](),
		"OrderItemView": reflect.TypeFor[OrderItemView](),
		"OrderView":     reflect.TypeFor[OrderView](),
		"OrderSummary":  reflect.TypeFor[OrderSummary](),
		"OrderList":     reflect.TypeFor[OrderList](),
	}
}

// OrderList is the response for an order listing.
type OrderList struct {
	view.Response
	Orders view.Iterable[*OrderSummary] `json:"orders"`
	Count  int                          `json:"count"`
}

// ListOrders summarizes orders with b, keeping their order.
func ListOrders(b *bind.Binder, orders []*Order) (*OrderList, error) {
	it, err := view.Fill(orders, func(o *Order) (*OrderSummary, error) {
		return bind.New[OrderSummary](b, o)
	})
	if err != nil {
		return nil, err
	}

	return &OrderList{Orders: *it, Count: it.Len()}, nil
}
