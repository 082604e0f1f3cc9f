package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet_discovery/internal/models"
	"pet_discovery/internal/repository"
)

var errCompanyNameRequired = errors.New("company name is required")

type CompanyService struct {
	repo repository.CompanyRepo
}

func NewCompanyService(repo repository.CompanyRepo) *CompanyService {
	return &CompanyService{repo: repo}
}

// Create validates c and stores it. The representative service must be a known category.
func (s *CompanyService) Create(ctx context.Context, c models.Company) (int, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return 0, fmt.Errorf("%w: %w", ErrInvalidCompany, errCompanyNameRequired)
	}
	if !c.RepService.Known() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownService, c.RepService)
	}
	return s.repo.Create(ctx, c)
}
