package view

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineView struct {
	Bound
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
	Note     *string
	Internal string `json:"-"`
	hidden   string
}

type orderView struct {
	Response
	Bound
	ID       int64                `json:"id"`
	Lines    Iterable[lineView]   `json:"lines"`
	Totals   map[string]float64   `json:"totals,omitempty"`
	Placed   time.Time            `json:"placed"`
	Tags     []string             `json:"tags"`
	Meta     *KeyValue            `json:"meta"`
	Children *Iterable[*lineView] `json:"children"`
}

type statusView struct {
	Response
	Code int
}

func (statusView) Status() int { return http.StatusCreated }

type failing struct{}

func (failing) Normalize(Encoder) (any, error) { return nil, errors.New("boom") }

func TestIsBindable(t *testing.T) {
	assert.True(t, IsBindable(reflect.TypeFor[lineView]()))
	assert.True(t, IsBindable(reflect.TypeFor[*lineView]()))
	assert.True(t, IsBindable(reflect.TypeFor[orderView]()))
	assert.False(t, IsBindable(reflect.TypeFor[statusView]()))
	assert.False(t, IsBindable(reflect.TypeFor[Iterable[lineView]]()))
	assert.False(t, IsBindable(reflect.TypeFor[int]()))
	assert.False(t, IsBindable(nil))
}

func TestIsCollection(t *testing.T) {
	type lines struct {
		Iterable[lineView]
	}

	assert.True(t, IsCollection(reflect.TypeFor[Iterable[lineView]]()))
	assert.True(t, IsCollection(reflect.TypeFor[*Iterable[int]]()))
	assert.True(t, IsCollection(reflect.TypeFor[lines]()))
	assert.False(t, IsCollection(reflect.TypeFor[lineView]()))
	assert.False(t, IsCollection(nil))
}

func TestResponseDefaults(t *testing.T) {
	var r Response
	assert.Equal(t, http.StatusOK, r.Status())
	assert.Equal(t, map[string]string{"Content-Type": "application/json"}, r.Headers())
}

func TestIterable(t *testing.T) {
	it := NewIterable[int]()
	require.NoError(t, it.Append(1))
	require.NoError(t, it.Append(int8(2)))
	require.Error(t, it.Append("three"))

	assert.Equal(t, 2, it.Len())
	assert.Equal(t, []int{1, 2}, it.Entries)
	assert.Equal(t, reflect.TypeFor[int](), it.ElemType())
}

func TestFill(t *testing.T) {
	it, err := Fill([]int{3, 1, 2}, func(n int) (string, error) {
		return strconv.Itoa(n * 10), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"30", "10", "20"}, it.Entries)

	_, err = Fill([]int{1}, MapFunc[int, string](nil))
	require.ErrorIs(t, err, ErrNoMapping)

	_, err = Fill([]int{1, 2}, func(n int) (string, error) {
		if n == 2 {
			return "", errors.New("bad")
		}
		return "", nil
	})
	require.EqualError(t, err, "entry 1: bad")
}

func TestNormalize(t *testing.T) {
	note := "fragile"
	placed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	v := &orderView{
		ID: 9,
		Lines: Iterable[lineView]{Entries: []lineView{
			{SKU: "a", Quantity: 2, Note: &note, Internal: "x", hidden: "y"},
			{SKU: "b"},
		}},
		Placed: placed,
		Tags:   []string{"new"},
		Meta:   NewKeyValue("source", map[string]any{"channel": "web"}),
	}

	got, err := Normalize(v)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"id": int64(9),
		"lines": []any{
			map[string]any{"sku": "a", "quantity": 2, "Note": "fragile"},
			map[string]any{"sku": "b", "quantity": 0},
		},
		"placed": placed,
		"tags":   []any{"new"},
		"meta":   map[string]any{"source": map[string]any{"channel": "web"}},
	}, got)
}

type tallyView struct {
	Count  int       `json:"count"`
	Paid   bool      `json:"paid"`
	Label  string    `json:"label"`
	Since  time.Time `json:"since"`
	Ratio  float64   `json:"ratio,omitempty"`
	Origin *lineView `json:"origin"`
	Tags   []string  `json:"tags"`
}

func TestNormalize_KeepsZeroValues(t *testing.T) {
	got, err := Normalize(tallyView{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"count": 0,
		"paid":  false,
		"label": "",
		"since": time.Time{},
	}, got)

	r, err := Render(&lineView{SKU: "z"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"sku":"z","quantity":0}}`, string(r.Body))
}

func TestNormalize_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		expected any
	}{
		{"nil", nil, nil},
		{"int", 5, 5},
		{"nil pointer", (*lineView)(nil), nil},
		{"bytes", []byte("hi"), []byte("hi")},
		{"nil slice", []int(nil), nil},
		{"map", map[int]string{1: "a"}, map[string]any{"1": "a"}},
		{"array", [2]bool{true, false}, []any{true, false}},
		{"duration", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalize_Errors(t *testing.T) {
	_, err := Normalize(func() {})
	require.Error(t, err)

	_, err = Normalize([]any{1, failing{}})
	require.EqualError(t, err, "[1]: boom")

	_, err = Normalize(NewData(failing{}))
	require.EqualError(t, err, "boom")
}

func TestRender(t *testing.T) {
	r, err := Render(&lineView{SKU: "a", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, r.Status)
	assert.Equal(t, "application/json", r.Headers["Content-Type"])
	assert.JSONEq(t, `{"data":{"sku":"a","quantity":1}}`, string(r.Body))

	r, err = Render(statusView{Code: 4})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, r.Status)
	assert.JSONEq(t, `{"Code":4}`, string(r.Body))

	r, err = Render(NewKeyValue("count", 3))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"count":3}}`, string(r.Body))

	r, err = Render(NewIterable("a", "b"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":["a","b"]}`, string(r.Body))

	_, err = Render(failing{})
	require.ErrorContains(t, err, "boom")
}

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, Write(rec, NewData([]int{1, 2})))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":[1,2]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	require.Error(t, Write(rec, make(chan int)))
}

func ExampleRender() {
	r, _ := Render(NewIterable(1, 2, 3))
	fmt.Println(r.Status, string(r.Body))
	// Output: 200 {"data":[1,2,3]}
}
