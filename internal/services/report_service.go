package services

import (
	"context"

	"tienda/internal/domain"
	"tienda/internal/repos"
	"tienda/internal/validate"
)

type ReportService struct {
	Reports *repos.ReportRepo
	Store   validate.Store
	Clock   Clock
}

func NewReportService(reports *repos.ReportRepo, store validate.Store) *ReportService {
	return &ReportService{Reports: reports, Store: store}
}

// Create files a report. The administrator is mandatory; the purchase, order
// and sale are optional but must exist when given.
func (s *ReportService) Create(ctx context.Context, in map[string]string) (domain.Report, error) {
	res := validate.Check(ctx, s.Store, validate.ReportSchema, in, 0)
	if err := res.Err(); err != nil {
		return domain.Report{}, err
	}
	rep := domain.Report{
		AdminID:     res.ID("admin_id"),
		PurchaseID:  res.OptionalID("purchase_id"),
		OrderID:     res.OptionalID("order_id"),
		SaleID:      res.OptionalID("sale_id"),
		CreatedAt:   s.Clock.now(),
		Description: res.String("description"),
	}
	if err := s.Reports.Create(ctx, &rep); err != nil {
		return domain.Report{}, err
	}
	return rep, nil
}

func (s *ReportService) Delete(ctx context.Context, id int64) error {
	return s.Reports.Delete(ctx, id)
}

func (s *ReportService) List(ctx context.Context) ([]domain.ReportRow, error) {
	return s.Reports.List(ctx)
}
