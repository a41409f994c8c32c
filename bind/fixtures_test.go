package bind

import (
	"errors"
	"iter"
	"strings"
	"time"

	"view-binder/accessor"
	"view-binder/view"
)

type sku string

type address struct {
	City string
	Zip  string
}

type customer struct {
	ID      int64
	email   string
	name    string
	Address *address
	Tags    []string
	Joined  time.Time
}

func (c *customer) GetName() string { return strings.ToUpper(c.name) }

type addressView struct {
	view.Bound
	City string
	Zip  string
}

type customerView struct {
	view.Response
	view.Bound
	ID      float64
	Email   string
	Name    string
	Address *addressView
	Tags    []string
	Joined  time.Time
}

type lineItem struct {
	SKU sku
	Qty int
}

type lineView struct {
	view.Bound
	SKU string
	Qty int64
}

type order struct {
	ID       int64
	Status   string
	Lines    []lineItem
	Customer *accessor.Deferred[customer]
	Placed   time.Time
	Notes    *string
}

type orderView struct {
	view.Response
	view.Bound
	ID       int64
	Status   string
	Lines    view.Iterable[lineView]
	Customer *customerView
	Placed   time.Time
	Notes    *string
}

// roundTrip declares a, b, c compatible with roundTripSource.
type roundTrip struct {
	A int
	B string
	C *string
}

type roundTripSource struct {
	A int
	B string
	C *string
}

type widened struct {
	Price float64
	Count int8
}

type narrow struct {
	Price int
	Count int64
}

type money struct{ Cents int64 }

type points struct{ Value int64 }

type pricedView struct {
	Amount money
	Label  string
}

type pricedSource struct {
	Amount points
	Label  string
}

// preparedView sets Status itself before binding.
type preparedView struct {
	view.Bound
	Status string
	ID     int64
	calls  int
}

func (v *preparedView) PrepareView(any) error {
	v.Status = "prepared"
	v.calls++
	return nil
}

type failingPrepare struct {
	view.Bound
	ID int64
}

func (*failingPrepare) PrepareView(any) error {
	return errors.New("not ready")
}

type annotatedView struct {
	Lines view.Iterable[any] `bind:",elem=bind.lineView"`
}

type unregisteredView struct {
	Lines view.Iterable[any] `bind:",elem=nope"`
}

type ambiguousView struct {
	Lines view.Iterable[any]
}

type skuList struct {
	view.Iterable[string]
}

func (skuList) MapEntry(src any) (any, error) {
	return string(src.(lineItem).SKU), nil
}

type mappedView struct {
	Lines skuList
}

type rawView struct {
	Tags view.Iterable[string]
}

type rawSource struct {
	Tags []string
}

type notIterableSource struct {
	Lines string
}

type privateTarget struct {
	ID int64
	id int64 `bind:"-"`
}

type streamedOrder struct {
	ID    int64
	Lines iter.Seq[lineItem]
}

var errNameUnavailable = errors.New("name unavailable")

// guardedView refuses to report its name while locked.
type guardedView struct {
	Name   string
	locked bool `bind:"-"`
}

func (v *guardedView) GetName() (string, error) {
	if v.locked {
		return "", errNameUnavailable
	}
	return v.Name, nil
}

type namedSource struct {
	Name string
}
