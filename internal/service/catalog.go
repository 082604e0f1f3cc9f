package service

import "pet_discovery/internal/models"

type CatalogService struct{}

func NewCatalogService() *CatalogService { return &CatalogService{} }

// Services returns the category catalog in display order.
func (s *CatalogService) Services() []models.Service {
	return models.Services()
}
