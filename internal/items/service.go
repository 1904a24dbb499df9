package items

import "context"

// Service exposes the public catalog: only Approved items are visible.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CatalogRestaurants(ctx context.Context) ([]*Restaurant, error) {
	return s.repo.ApprovedRestaurants(ctx)
}

func (s *Service) CatalogMenuItems(ctx context.Context, restaurantID int) ([]*MenuItem, error) {
	if restaurantID > 0 {
		return s.repo.ApprovedMenuItemsForRestaurant(ctx, restaurantID)
	}
	return s.repo.ApprovedMenuItems(ctx)
}
