package receipt

import (
	"bytes"
	"testing"
	"time"

	"tienda/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesPDF(t *testing.T) {
	sale := domain.Sale{
		ID: 12, ClientName: "Pedro Pérez", Status: domain.SaleCompleted,
		CreatedAt: time.Date(2026, 3, 14, 15, 4, 0, 0, time.UTC),
		Total:     decimal.NewFromInt(9500),
	}
	items := []domain.SaleItem{
		{ProductName: "Arroz", Quantity: 2, Price: decimal.NewFromInt(2500)},
		{ProductName: "Leche Entera", Quantity: 1, Price: decimal.NewFromInt(4500)},
	}

	pdf, err := Render("Tienda", sale, items)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestRenderWithoutLines(t *testing.T) {
	pdf, err := Render("Tienda", domain.Sale{ID: 1, ClientName: "x"}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
