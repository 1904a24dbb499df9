package approval

import (
	"context"
	"errors"
	"testing"

	"thali/internal/items"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const adminEmail = "admin@site.com"

func seedRepo(t *testing.T) (*items.InMemoryRepository, *items.Restaurant, *items.MenuItem) {
	t.Helper()

	repo := items.NewInMemoryRepository()
	restaurant := &items.Restaurant{
		Name:       "Pasta Place",
		OwnerEmail: "owner@x.com",
		Status:     items.StatusPending,
	}
	menuItem := &items.MenuItem{
		ID:         uuid.New(),
		Title:      "Spaghetti",
		Price:      decimal.RequireFromString("9.50"),
		Status:     items.StatusPending,
		Restaurant: restaurant,
	}

	if err := repo.Save(context.Background(), []items.Item{restaurant, menuItem}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return repo, restaurant, menuItem
}

func TestAdminApprovesRestaurant(t *testing.T) {
	repo, restaurant, _ := seedRepo(t)
	gate := NewGate(repo, adminEmail)

	if err := gate.ApproveRestaurant(context.Background(), adminEmail, restaurant.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restaurant.Status != items.StatusApproved {
		t.Fatalf("expected approved, got %q", restaurant.Status)
	}
}

func TestOwnerCannotApproveRestaurant(t *testing.T) {
	repo, restaurant, _ := seedRepo(t)
	gate := NewGate(repo, adminEmail)

	err := gate.ApproveRestaurant(context.Background(), "owner@x.com", restaurant.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if restaurant.Status != items.StatusPending {
		t.Fatalf("status must not change, got %q", restaurant.Status)
	}
}

func TestOwnerApprovesMenuItem(t *testing.T) {
	repo, _, menuItem := seedRepo(t)
	gate := NewGate(repo, adminEmail)

	// Owner email comparison is case-insensitive.
	if err := gate.ApproveMenuItem(context.Background(), "OWNER@X.COM", menuItem.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if menuItem.Status != items.StatusApproved {
		t.Fatalf("expected approved, got %q", menuItem.Status)
	}
}

func TestAdminCannotApproveMenuItem(t *testing.T) {
	repo, _, menuItem := seedRepo(t)
	gate := NewGate(repo, adminEmail)

	err := gate.ApproveMenuItem(context.Background(), adminEmail, menuItem.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for the admin, got %v", err)
	}
}

func TestBulkApprovalAllOrNothing(t *testing.T) {
	repo, restaurant, menuItem := seedRepo(t)
	gate := NewGate(repo, adminEmail)

	// The admin may approve the restaurant but not the owner's menu item:
	// the whole batch must be denied and nothing may change.
	err := gate.Approve(
		context.Background(),
		adminEmail,
		[]int{restaurant.ID},
		[]uuid.UUID{menuItem.ID},
	)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if restaurant.Status != items.StatusPending {
		t.Fatalf("restaurant status changed despite denial: %q", restaurant.Status)
	}
	if menuItem.Status != items.StatusPending {
		t.Fatalf("menu item status changed despite denial: %q", menuItem.Status)
	}
}

func TestBulkApprovalSucceedsForEntitledRequester(t *testing.T) {
	repo, restaurant, _ := seedRepo(t)
	gate := NewGate(repo, adminEmail)

	if err := gate.Approve(context.Background(), adminEmail, []int{restaurant.ID}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restaurant.Status != items.StatusApproved {
		t.Fatalf("expected approved, got %q", restaurant.Status)
	}
}

func TestBulkApprovalSkipsUnknownIDs(t *testing.T) {
	repo, restaurant, _ := seedRepo(t)
	gate := NewGate(repo, adminEmail)

	// Stale ids are skipped silently in the bulk path.
	err := gate.Approve(context.Background(), adminEmail, []int{restaurant.ID, 9999}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restaurant.Status != items.StatusApproved {
		t.Fatalf("expected approved, got %q", restaurant.Status)
	}
}

func TestApprovalIsIdempotent(t *testing.T) {
	repo, restaurant, _ := seedRepo(t)
	gate := NewGate(repo, adminEmail)

	for i := 0; i < 2; i++ {
		if err := gate.ApproveRestaurant(context.Background(), adminEmail, restaurant.ID); err != nil {
			t.Fatalf("pass %d: unexpected error: %v", i+1, err)
		}
	}
	if restaurant.Status != items.StatusApproved {
		t.Fatalf("expected approved, got %q", restaurant.Status)
	}
}

func TestSingleTargetNotFound(t *testing.T) {
	repo, _, _ := seedRepo(t)
	gate := NewGate(repo, adminEmail)

	if err := gate.ApproveRestaurant(context.Background(), adminEmail, 404); !errors.Is(err, items.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := gate.ApproveMenuItem(context.Background(), "owner@x.com", uuid.New()); !errors.Is(err, items.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnonymousRequesterDenied(t *testing.T) {
	repo, restaurant, _ := seedRepo(t)
	gate := NewGate(repo, adminEmail)

	if err := gate.Approve(context.Background(), "  ", []int{restaurant.ID}, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPendingForAdminAndOwner(t *testing.T) {
	repo, _, _ := seedRepo(t)
	gate := NewGate(repo, adminEmail)

	adminView, err := gate.PendingFor(context.Background(), adminEmail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(adminView.Restaurants) != 1 {
		t.Fatalf("admin should see 1 pending restaurant, got %d", len(adminView.Restaurants))
	}
	if len(adminView.MenuItems) != 0 {
		t.Fatalf("admin owns no restaurant, expected 0 menu items, got %d", len(adminView.MenuItems))
	}

	ownerView, err := gate.PendingFor(context.Background(), "owner@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ownerView.Restaurants) != 0 {
		t.Fatalf("owner should see no pending restaurants, got %d", len(ownerView.Restaurants))
	}
	if len(ownerView.MenuItems) != 1 {
		t.Fatalf("owner should see 1 pending menu item, got %d", len(ownerView.MenuItems))
	}
}
