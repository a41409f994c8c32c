package analyze

import "time"

type A struct {
	APublic  bool
	aPrivate bool
}

type B struct {
	A
	aPrivate bool
	BPublic  bool
	bPrivate bool
}

type C struct {
	*B
	BPublic  bool
	CPublic  bool
	cPrivate bool
	Shared   string
}

type DTrait struct {
	DPublic   bool
	d3Private bool
	Shared    int
}

type D struct {
	C
	DTrait
	dOwn bool
}

type Twin struct {
	name string
	Name string
}

type Address struct {
	Street string
}

type Shape interface{ Area() float64 }

type Square struct{ Side float64 }

func (s Square) Area() float64 { return s.Side * s.Side }

type Circle struct{ R float64 }

func (c Circle) Area() float64 { return 3 * c.R * c.R }

type Kitchen struct {
	ID       int64
	Ratio    float32
	Label    Label
	Tags     []string
	Meta     map[string]any
	Address  Address
	Home     *Address
	Count    *int
	At       time.Time
	Wait     time.Duration
	Anything any
	Shape    Shape
	Callback func()
	stringer interface{ String() string }

	Renamed string    `bind:"alias"`
	Secret  string    `bind:"-"`
	Lines   []Address `bind:",elem=LineView"`
}

type Label string
