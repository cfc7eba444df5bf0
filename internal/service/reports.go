package service

import (
	"context"

	"github.com/lerose/boutique/internal/repo"
)

const reportLimit = 5

type ReportService struct {
	Repo *repo.GormRepo
}

func (s *ReportService) TopCustomers(ctx context.Context) ([]repo.TopCustomer, error) {
	return s.Repo.TopCustomers(ctx, reportLimit)
}

func (s *ReportService) TopProducts(ctx context.Context) ([]repo.TopProduct, error) {
	return s.Repo.TopProducts(ctx, reportLimit)
}
