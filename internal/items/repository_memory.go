package items

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// InMemoryRepository backs tests and local development. It mirrors the
// Postgres repository's routing and query behavior without a database.
type InMemoryRepository struct {
	restaurants []*Restaurant
	menuItems   []*MenuItem
	nextID      int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Save(ctx context.Context, batch []Item) error {
	for _, item := range batch {
		switch item.(type) {
		case *Restaurant, *MenuItem:
		default:
			return fmt.Errorf("%w: %T", ErrUnknownKind, item)
		}
	}

	for _, item := range batch {
		restaurant, ok := item.(*Restaurant)
		if !ok {
			continue
		}
		restaurant.ID = r.nextID
		r.nextID++
		r.restaurants = append(r.restaurants, restaurant)
	}

	for _, item := range batch {
		menuItem, ok := item.(*MenuItem)
		if !ok {
			continue
		}
		if menuItem.Restaurant != nil {
			menuItem.RestaurantID = menuItem.Restaurant.ID
		}
		r.menuItems = append(r.menuItems, menuItem)
	}
	return nil
}

func (r *InMemoryRepository) ApprovedRestaurants(ctx context.Context) ([]*Restaurant, error) {
	return r.restaurantsByStatus(StatusApproved), nil
}

func (r *InMemoryRepository) PendingRestaurants(ctx context.Context) ([]*Restaurant, error) {
	return r.restaurantsByStatus(StatusPending), nil
}

func (r *InMemoryRepository) restaurantsByStatus(status Status) []*Restaurant {
	var out []*Restaurant
	for _, res := range r.restaurants {
		if res.Status == status {
			out = append(out, res)
		}
	}
	return out
}

func (r *InMemoryRepository) ApprovedMenuItems(ctx context.Context) ([]*MenuItem, error) {
	var out []*MenuItem
	for _, m := range r.menuItems {
		if m.Status == StatusApproved {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ApprovedMenuItemsForRestaurant(ctx context.Context, restaurantID int) ([]*MenuItem, error) {
	var out []*MenuItem
	for _, m := range r.menuItems {
		if m.Status == StatusApproved && m.RestaurantID == restaurantID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) PendingMenuItemsForOwner(ctx context.Context, ownerEmail string) ([]*MenuItem, error) {
	var out []*MenuItem
	for _, m := range r.menuItems {
		if m.Status != StatusPending || m.Restaurant == nil {
			continue
		}
		if strings.EqualFold(m.Restaurant.OwnerEmail, ownerEmail) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) RestaurantByID(ctx context.Context, id int) (*Restaurant, error) {
	for _, res := range r.restaurants {
		if res.ID == id {
			return res, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) MenuItemByID(ctx context.Context, id uuid.UUID) (*MenuItem, error) {
	for _, m := range r.menuItems {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) RestaurantsByIDs(ctx context.Context, ids []int) ([]*Restaurant, error) {
	var out []*Restaurant
	for _, id := range ids {
		for _, res := range r.restaurants {
			if res.ID == id {
				out = append(out, res)
			}
		}
	}
	return out, nil
}

func (r *InMemoryRepository) MenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]*MenuItem, error) {
	var out []*MenuItem
	for _, id := range ids {
		for _, m := range r.menuItems {
			if m.ID == id {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func (r *InMemoryRepository) SetRestaurantsApproved(ctx context.Context, ids []int) (int64, error) {
	var affected int64
	for _, id := range ids {
		for _, res := range r.restaurants {
			if res.ID == id {
				res.Status = StatusApproved
				affected++
			}
		}
	}
	return affected, nil
}

func (r *InMemoryRepository) SetMenuItemsApproved(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var affected int64
	for _, id := range ids {
		for _, m := range r.menuItems {
			if m.ID == id {
				m.Status = StatusApproved
				affected++
			}
		}
	}
	return affected, nil
}
