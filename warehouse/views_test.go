package warehouse

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-binder/accessor"
	"view-binder/bind"
	"view-binder/internal/analyze"
	"view-binder/view"
)

func newBinder() *bind.Binder {
	return bind.NewBinder(bind.WithMetadata(analyze.NewCache()))
}

func TestOrderView(t *testing.T) {
	o := SampleOrder()

	v, err := bind.New[OrderView](newBinder(), o)
	require.NoError(t, err)

	assert.Equal(t, uint(1001), v.ID)
	assert.Equal(t, "WH-1001", v.OrderNumber)
	assert.Equal(t, "paid", v.Status)
	assert.Equal(t, int64(6597), v.TotalAmount)
	assert.Equal(t, "EUR", v.Currency)
	assert.Nil(t, v.BillingAddress)
	require.NotNil(t, v.PlacedAt)
	assert.Equal(t, 11, v.PlacedAt.Hour())

	require.NotNil(t, v.ShippingAddress)
	assert.Equal(t, "Oslo", v.ShippingAddress.City)
	assert.Equal(t, "0154", v.ShippingAddress.PostalCode)

	require.NotNil(t, v.Customer)
	assert.True(t, o.Customer.Materialized())
	assert.Equal(t, uint(7), v.Customer.ID)
	assert.Equal(t, "ada@example.com", v.Customer.Email)
	assert.Equal(t, "Ada", v.Customer.FirstName)
	assert.Equal(t, "Ada Lovelace", v.Customer.FullName)
	assert.Equal(t, "2023-03-01", v.Customer.Member)
	require.Equal(t, 1, v.Customer.Addresses.Len())
	assert.Equal(t, "Karl Johans gate 1", v.Customer.Addresses.Entries[0].Street)

	require.Equal(t, 2, v.Items.Len())
	first, ok := v.Items.Entries[0].(*OrderItemView)
	require.True(t, ok, "%T", v.Items.Entries[0])
	assert.Equal(t, 1, first.Quantity)
	assert.Equal(t, int64(4999), first.UnitPrice)
	require.NotNil(t, first.Product)
	assert.Equal(t, "KB-01", first.Product.SKU)
	assert.InDelta(t, 4999.0, first.Product.Price, 0)
	assert.True(t, first.Product.Active)

	second := v.Items.Entries[1].(*OrderItemView)
	assert.Equal(t, 2, second.Quantity)
	assert.False(t, second.Product.Active)
}

func TestOrderView_FailedCustomerLoad(t *testing.T) {
	o := SampleOrder()
	boom := errors.New("customer service down")
	o.Customer = accessor.Defer(func() (*Customer, error) { return nil, boom })

	_, err := bind.New[OrderView](newBinder(), o)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, accessor.ErrLoad)
}

func TestOrderView_Render(t *testing.T) {
	v, err := bind.New[OrderView](newBinder(), SampleOrder())
	require.NoError(t, err)

	r, err := view.Render(v)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, r.Status)

	var body struct {
		Data struct {
			Status   string `json:"status"`
			Customer struct {
				Email    string `json:"email"`
				FullName string `json:"full_name"`
				Password string `json:"password"`
			} `json:"customer"`
			Items []struct {
				Quantity int `json:"quantity"`
				Product  struct {
					SKU string `json:"sku"`
				} `json:"product"`
			} `json:"items"`
			BillingAddress any `json:"billing_address"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(r.Body, &body))

	assert.Equal(t, "paid", body.Data.Status)
	assert.Equal(t, "ada@example.com", body.Data.Customer.Email)
	assert.Equal(t, "Ada Lovelace", body.Data.Customer.FullName)
	assert.Empty(t, body.Data.Customer.Password)
	require.Len(t, body.Data.Items, 2)
	assert.Equal(t, "CB-02", body.Data.Items[1].Product.SKU)
	assert.Nil(t, body.Data.BillingAddress)
}

func TestListOrders(t *testing.T) {
	a := SampleOrder()
	b := SampleOrder()
	b.OrderNumber = "WH-1002"
	b.status = StatusShipped
	b.Items = b.Items[:1]

	list, err := ListOrders(newBinder(), []*Order{a, b})
	require.NoError(t, err)
	require.Equal(t, 2, list.Count)
	assert.Equal(t, "WH-1001", list.Orders.Entries[0].OrderNumber)
	assert.Equal(t, 2, list.Orders.Entries[0].Items)
	assert.Equal(t, "shipped", list.Orders.Entries[1].Status)
	assert.Equal(t, 1, list.Orders.Entries[1].Items)

	// the customer is never read for a summary
	assert.False(t, a.Customer.Materialized())

	r, err := view.Render(list)
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":2,"orders":[`+
		`{"order_number":"WH-1001","status":"paid","currency":"EUR","items":2},`+
		`{"order_number":"WH-1002","status":"shipped","currency":"EUR","items":1}]}`, string(r.Body))
}

func TestTypes(t *testing.T) {
	types := Types()
	assert.Equal(t, "OrderView", types["OrderView"].Name())

	registered, ok := bind.Lookup("warehouse.OrderItemView")
	require.True(t, ok)
	assert.Equal(t, types["OrderItemView"], registered)
}

func TestCustomer_Accessors(t *testing.T) {
	c := NewCustomer(1, "Grace", "Hopper", "grace@example.com")
	c.SetPassword("secret")

	acc := newBinder().Accessor()

	got, err := acc.Get(c, "firstName")
	require.NoError(t, err)
	assert.Equal(t, "Grace", got)

	// no getter, read through the fallback
	got, err = acc.Get(c, "email")
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", got)

	assert.False(t, acc.IsStrictlyReadable(c, "email"))
	assert.True(t, acc.IsWritable(c, "password"))
	assert.NoError(t, acc.Set(c, "password", "other"))
	assert.Equal(t, "other", c.passwordHash)
}

func TestSampleOrder_Timestamps(t *testing.T) {
	o := SampleOrder()
	assert.Equal(t, time.March, o.CreatedAt.Month())
	assert.True(t, o.UpdatedAt.After(o.CreatedAt))
}
