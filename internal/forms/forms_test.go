package forms

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleInputAcceptsNumbersAndStrings(t *testing.T) {
	body := `{"client":"Pedro","total":9500,"items":[{"name":"Arroz","quantity":2,"price":"2500"},{"name":"Leche","quantity":"1","price":4500.0}]}`
	var in SaleInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	assert.Nil(t, Shape(in))

	assert.Equal(t, "9500", in.Fields()["total"])
	lines := in.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "2", lines[0]["quantity"])
	assert.Equal(t, "2500", lines[0]["price"])
	assert.Equal(t, "4500.0", lines[1]["price"])
}

func TestRawRejectsObjects(t *testing.T) {
	var in SaleInput
	assert.Error(t, json.Unmarshal([]byte(`{"total":{"x":1}}`), &in))
}

func TestShapeReportsFieldNamesFromTags(t *testing.T) {
	in := ClientInput{Name: strings.Repeat("a", 300), Document: "123"}
	fe := Shape(in)
	require.NotNil(t, fe)
	assert.Equal(t, "Must be at most 255 characters long.", fe.First("name"))
	assert.False(t, fe.Has("document"))
}

func TestShapeNestedLines(t *testing.T) {
	in := SaleInput{Client: "Ana", Items: []SaleLine{{Name: "ok"}, {Name: strings.Repeat("x", 256)}}}
	fe := Shape(in)
	require.NotNil(t, fe)
	assert.True(t, fe.Has("items.1.name"), "%v", fe)
}

func TestProductFields(t *testing.T) {
	in := ProductInput{Name: "Leche Entera", Price: "4500", Stock: "100", BrandID: "1", TypeID: "2", UnitID: "3"}
	assert.Nil(t, Shape(in))
	assert.Equal(t, map[string]string{
		"name": "Leche Entera", "price": "4500", "stock": "100",
		"brand_id": "1", "type_id": "2", "unit_id": "3",
	}, in.Fields())
}
