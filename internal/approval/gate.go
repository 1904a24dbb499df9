package approval

import (
	"context"
	"errors"
	"strings"

	"thali/internal/items"

	"github.com/google/uuid"
)

var ErrForbidden = errors.New("requester may not approve one or more of the named items")

// Gate enforces who may flip an item from Pending to Approved. The site
// admin email is injected at construction; the gate holds no global state.
type Gate struct {
	repo       items.Repository
	adminEmail string
}

func NewGate(repo items.Repository, adminEmail string) *Gate {
	return &Gate{repo: repo, adminEmail: adminEmail}
}

// PendingItems is the verification view for one requester.
type PendingItems struct {
	Restaurants []*items.Restaurant `json:"restaurants"`
	MenuItems   []*items.MenuItem   `json:"menu_items"`
}

// PendingFor returns what the requester is allowed to verify: pending
// restaurants only for the site admin, pending menu items for the
// restaurants the requester owns.
func (g *Gate) PendingFor(ctx context.Context, requester string) (*PendingItems, error) {
	pending := &PendingItems{}

	if g.isAdmin(requester) {
		restaurants, err := g.repo.PendingRestaurants(ctx)
		if err != nil {
			return nil, err
		}
		pending.Restaurants = restaurants
	}

	menuItems, err := g.repo.PendingMenuItemsForOwner(ctx, requester)
	if err != nil {
		return nil, err
	}
	pending.MenuItems = menuItems

	return pending, nil
}

// Approve flips every named item to Approved, but only if the requester
// is in the validator set of every single one. One failed check denies
// the whole batch with no mutation. Ids the store no longer has are
// skipped; approving an already-approved item is a no-op.
//
// Items are re-fetched by id: client payloads are never trusted for
// authorization decisions.
func (g *Gate) Approve(ctx context.Context, requester string, restaurantIDs []int, menuItemIDs []uuid.UUID) error {
	if strings.TrimSpace(requester) == "" {
		return ErrForbidden
	}

	restaurants, err := g.repo.RestaurantsByIDs(ctx, restaurantIDs)
	if err != nil {
		return err
	}
	for _, restaurant := range restaurants {
		if !g.allowed(requester, restaurant) {
			return ErrForbidden
		}
	}

	menuItems, err := g.repo.MenuItemsByIDs(ctx, menuItemIDs)
	if err != nil {
		return err
	}
	for _, menuItem := range menuItems {
		if !g.allowed(requester, menuItem) {
			return ErrForbidden
		}
	}

	if _, err := g.repo.SetRestaurantsApproved(ctx, restaurantIDs); err != nil {
		return err
	}
	if _, err := g.repo.SetMenuItemsApproved(ctx, menuItemIDs); err != nil {
		return err
	}
	return nil
}

// ApproveRestaurant is the single-target variant used by the verification
// screen. Unlike bulk approval, a missing id surfaces as not-found.
func (g *Gate) ApproveRestaurant(ctx context.Context, requester string, id int) error {
	restaurant, err := g.repo.RestaurantByID(ctx, id)
	if err != nil {
		return err
	}
	if !g.allowed(requester, restaurant) {
		return ErrForbidden
	}
	_, err = g.repo.SetRestaurantsApproved(ctx, []int{id})
	return err
}

func (g *Gate) ApproveMenuItem(ctx context.Context, requester string, id uuid.UUID) error {
	menuItem, err := g.repo.MenuItemByID(ctx, id)
	if err != nil {
		return err
	}
	if !g.allowed(requester, menuItem) {
		return ErrForbidden
	}
	_, err = g.repo.SetMenuItemsApproved(ctx, []uuid.UUID{id})
	return err
}

func (g *Gate) isAdmin(requester string) bool {
	return strings.EqualFold(requester, g.adminEmail)
}

func (g *Gate) allowed(requester string, item items.Item) bool {
	for _, validator := range item.Validators(g.adminEmail) {
		if strings.EqualFold(validator, requester) {
			return true
		}
	}
	return false
}
