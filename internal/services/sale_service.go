package services

import (
	"context"
	"strings"
	"time"

	"tienda/internal/domain"
	"tienda/internal/repos"
	"tienda/internal/validate"
)

type SaleService struct {
	Sales *repos.SaleRepo
	Store validate.Store
	Clock Clock
}

func NewSaleService(sales *repos.SaleRepo, store validate.Store) *SaleService {
	return &SaleService{Sales: sales, Store: store}
}

// check validates the header and every line. A blank total is replaced by
// the sum of the lines; a supplied one is kept as is.
func (s *SaleService) check(ctx context.Context, header map[string]string, lines []map[string]string) (domain.Sale, []domain.SaleItem, error) {
	res := validate.Check(ctx, s.Store, validate.SaleSchema, header, 0)
	lineRes := validate.CheckLines(ctx, s.Store, &res, validate.SaleItemSchema, lines)
	if err := res.Err(); err != nil {
		return domain.Sale{}, nil, err
	}

	items := make([]domain.SaleItem, len(lineRes))
	for i, lr := range lineRes {
		items[i] = domain.SaleItem{
			ProductName: lr.String("name"),
			Quantity:    lr.Int("quantity"),
			Price:       lr.Decimal("price"),
		}
	}
	sale := domain.Sale{
		ClientName: res.String("client"),
		Status:     res.String("status"),
		Total:      domain.ItemsTotal(items),
	}
	if res.String("total") != "" {
		sale.Total = res.Decimal("total")
	}
	return sale, items, nil
}

// Create stores the sale and its lines together, or nothing.
func (s *SaleService) Create(ctx context.Context, header map[string]string, lines []map[string]string) (domain.Sale, []domain.SaleItem, error) {
	sale, items, err := s.check(ctx, header, lines)
	if err != nil {
		return domain.Sale{}, nil, err
	}
	sale.CreatedAt = s.Clock.now()
	if err := s.Sales.Create(ctx, &sale, items); err != nil {
		return domain.Sale{}, nil, err
	}
	return sale, items, nil
}

// Update replaces the header and the whole set of lines. A blank status keeps
// the stored one.
func (s *SaleService) Update(ctx context.Context, id int64, header map[string]string, lines []map[string]string) (domain.Sale, []domain.SaleItem, error) {
	cur, _, err := s.Sales.Get(ctx, id)
	if err != nil {
		return domain.Sale{}, nil, err
	}
	sale, items, err := s.check(ctx, header, lines)
	if err != nil {
		return domain.Sale{}, nil, err
	}
	sale.ID, sale.CreatedAt = id, cur.CreatedAt
	if strings.TrimSpace(header["status"]) == "" {
		sale.Status = cur.Status
	}
	if err := s.Sales.Replace(ctx, &sale, items); err != nil {
		return domain.Sale{}, nil, err
	}
	return sale, items, nil
}

func (s *SaleService) Complete(ctx context.Context, id int64) error {
	return s.Sales.SetStatus(ctx, id, domain.SaleCompleted)
}

func (s *SaleService) Delete(ctx context.Context, id int64) error {
	return s.Sales.Delete(ctx, id)
}

func (s *SaleService) Detail(ctx context.Context, id int64) (domain.Sale, []domain.SaleItem, error) {
	return s.Sales.Get(ctx, id)
}

func (s *SaleService) List(ctx context.Context) ([]domain.Sale, error) {
	return s.Sales.List(ctx)
}

// Stats totals today's and this month's sales in the clock's time zone.
func (s *SaleService) Stats(ctx context.Context) (domain.SaleStats, error) {
	now := s.Clock.local()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var st domain.SaleStats
	var err error
	if st.TodayTotal, err = s.Sales.SumBetween(ctx, day, day.AddDate(0, 0, 1)); err != nil {
		return st, err
	}
	if st.MonthTotal, err = s.Sales.SumBetween(ctx, month, month.AddDate(0, 1, 0)); err != nil {
		return st, err
	}
	if st.Count, err = s.Sales.Count(ctx); err != nil {
		return st, err
	}
	return st, nil
}
