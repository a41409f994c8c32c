package bind

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-binder/internal/diagnostic"
	"view-binder/view"
)

type explainView struct {
	Emaill  string
	Address *addressView
	Lines   view.Iterable[any]
	Amount  money
	hidden  string
}

type explainSource struct {
	Email   string
	Address *address
	Lines   []lineItem
	Amount  points
	hidden  string
}

func TestBinder_Explain(t *testing.T) {
	d := newBinder().Explain(explainView{}, reflect.TypeFor[*explainSource]())

	unmatched := d.ByCode(diagnostic.CodeUnmatched)
	require.Len(t, unmatched, 1)
	assert.Equal(t, "Emaill", unmatched[0].FieldPath)
	assert.Equal(t, []string{"Email"}, unmatched[0].Suggestions)
	assert.Equal(t, "bind.explainView <- bind.explainSource", unmatched[0].TypePair)

	paired := d.ByCode(diagnostic.CodePaired)
	fields := make([]string, 0, len(paired))
	for _, p := range paired {
		fields = append(fields, p.FieldPath)
	}
	assert.Equal(t, []string{"Address", "Lines", "Hidden"}, fields)
	assert.Contains(t, paired[0].Message, "constructible")

	incompatible := d.ByCode(diagnostic.CodeIncompatible)
	require.Len(t, incompatible, 1)
	assert.Equal(t, "Amount", incompatible[0].FieldPath)

	elem := d.ByCode(diagnostic.CodeElement)
	require.Len(t, elem, 1)
	assert.Equal(t, "Lines", elem[0].FieldPath)
	assert.Equal(t, diagnostic.DiagnosticError, elem[0].Severity)

	unwritable := d.ByCode(diagnostic.CodeUnwritable)
	require.Len(t, unwritable, 1)
	assert.Equal(t, "Hidden", unwritable[0].FieldPath)

	assert.False(t, d.IsValid())
}

func TestBinder_ExplainClean(t *testing.T) {
	d := newBinder().Explain(&orderView{}, &order{})

	assert.True(t, d.IsValid())
	assert.Empty(t, d.Warnings)
	assert.Len(t, d.Infos, 6)
}

func TestBinder_ExplainMetadataError(t *testing.T) {
	d := newBinder().Explain(42, order{})

	require.Len(t, d.Errors, 1)
	assert.Equal(t, diagnostic.CodeMetadata, d.Errors[0].Code)

	d = newBinder().Explain(orderView{}, nil)
	require.Len(t, d.Errors, 1)
}

func TestBinder_Pairs(t *testing.T) {
	pairs, err := newBinder().Pairs(orderView{}, order{})
	require.NoError(t, err)

	require.Len(t, pairs, 6)
	assert.Equal(t, PairInfo{Target: "ID", Source: "ID", Type: "int64", Verdict: "builtin"}, pairs[0])
	assert.Equal(t, PairInfo{Target: "Customer", Source: "Customer", Type: "?bind.customerView", Verdict: "constructible"}, pairs[3])

	_, err = newBinder().Pairs(orderView{}, 1)
	require.Error(t, err)
}

type conversionView struct {
	Count  int8
	Label  int
	Amount float64
	Flag   bool
}

type conversionSource struct {
	Count  int64
	Label  string
	Amount int32
	Flag   bool
}

func TestBinder_ExplainConversion(t *testing.T) {
	d := newBinder().Explain(conversionView{}, conversionSource{})

	conv := d.ByCode(diagnostic.CodeConversion)
	require.Len(t, conv, 2)

	assert.Equal(t, "Label", conv[0].FieldPath)
	assert.Equal(t, diagnostic.DiagnosticWarning, conv[0].Severity)
	assert.Contains(t, conv[0].Message, "string values will not convert to int")

	assert.Equal(t, "Count", conv[1].FieldPath)
	assert.Equal(t, diagnostic.DiagnosticInfo, conv[1].Severity)
	assert.Contains(t, conv[1].Message, "checked number")
}
