package items

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUnknownKind = errors.New("unsupported item kind")
	ErrNotFound    = errors.New("item not found")
)

// Repository defines all database operations for catalog items.
// Services depend ONLY on this interface.
type Repository interface {

	// Save routes each item to its table by concrete kind. Restaurants
	// are written first so menu items can reference their durable ids.
	Save(ctx context.Context, batch []Item) error

	// -------------------------------
	// Public catalog
	// -------------------------------

	ApprovedRestaurants(ctx context.Context) ([]*Restaurant, error)
	ApprovedMenuItems(ctx context.Context) ([]*MenuItem, error)
	ApprovedMenuItemsForRestaurant(ctx context.Context, restaurantID int) ([]*MenuItem, error)

	// -------------------------------
	// Verification views
	// -------------------------------

	PendingRestaurants(ctx context.Context) ([]*Restaurant, error)
	PendingMenuItemsForOwner(ctx context.Context, ownerEmail string) ([]*MenuItem, error)

	// -------------------------------
	// Approval (id-based re-fetch, never payload objects)
	// -------------------------------

	RestaurantByID(ctx context.Context, id int) (*Restaurant, error)
	MenuItemByID(ctx context.Context, id uuid.UUID) (*MenuItem, error)
	RestaurantsByIDs(ctx context.Context, ids []int) ([]*Restaurant, error)
	MenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]*MenuItem, error)

	// Idempotent bulk status flips. Unknown ids are skipped; the count
	// of rows actually changed is returned.
	SetRestaurantsApproved(ctx context.Context, ids []int) (int64, error)
	SetMenuItemsApproved(ctx context.Context, ids []uuid.UUID) (int64, error)
}
