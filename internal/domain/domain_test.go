package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameKeyFoldsCaseAndSpacing(t *testing.T) {
	assert.Equal(t, NameKey("leche entera"), NameKey("  Leche   ENTERA "))
	// decomposed "é" (e + combining acute) matches the precomposed form
	assert.Equal(t, NameKey("cafe\u0301"), NameKey("CAFÉ"))
	assert.NotEqual(t, NameKey("Leche"), NameKey("Leches"))
}

func TestEmailKey(t *testing.T) {
	assert.Equal(t, "ana@tienda.co", EmailKey("  Ana@Tienda.CO "))
}

func TestValidationErrorExposesConflicts(t *testing.T) {
	ce := &ConflictError{Entity: EntityProduct, Field: "name", Value: "leche entera"}
	var err error = ConflictAsValidation(ce)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields.First("name"), "leche entera")

	var got *ConflictError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, EntityProduct, got.Entity)
}

func TestFieldErrorsFlattenIsOrdered(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("phone", "b")
	fe.Add("document", "a")
	fe.Add("phone", "c")
	assert.Equal(t, []string{"a", "b", "c"}, fe.Flatten())
}

func TestAvailabilityBands(t *testing.T) {
	assert.Equal(t, "OUT_OF_STOCK", AvailabilityFor(0).Status)
	assert.Equal(t, "LOW_STOCK", AvailabilityFor(4).Status)
	assert.Equal(t, "IN_STOCK", AvailabilityFor(5).Status)
}

func TestItemsTotal(t *testing.T) {
	items := []SaleItem{
		{ProductName: "Arroz", Price: decimal.NewFromInt(2500), Quantity: 2},
		{ProductName: "Leche", Price: decimal.RequireFromString("4500.50"), Quantity: 1},
	}
	assert.True(t, decimal.RequireFromString("9500.50").Equal(ItemsTotal(items)))
}
