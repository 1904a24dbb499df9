package items

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status of a catalog item in the approval workflow.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
)

// Item is the closed set of entities that flow through the bulk-import and
// approval pipeline. Exactly two kinds exist: Restaurant and MenuItem.
type Item interface {
	GetStatus() Status
	SetStatus(Status)

	// Validators returns the identities allowed to approve this item.
	// Restaurants are approved by the site admin; menu items by the
	// owner of their restaurant.
	Validators(adminEmail string) []string

	// CardKind tags the item for the catalog/preview rendering layer.
	CardKind() string
}

type Restaurant struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	OwnerEmail string    `json:"owner_email"`
	Status     Status    `json:"status"`
	ImagePath  string    `json:"image_path,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

func (r *Restaurant) GetStatus() Status  { return r.Status }
func (r *Restaurant) SetStatus(s Status) { r.Status = s }

func (r *Restaurant) Validators(adminEmail string) []string {
	return []string{adminEmail}
}

func (r *Restaurant) CardKind() string { return "restaurant_card" }

type MenuItem struct {
	// ID is assigned at parse time so the item can be referenced before
	// its restaurant has a durable id.
	ID     uuid.UUID       `json:"id"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	Status Status          `json:"status"`

	// RestaurantID is zero until the batch is committed; while staged the
	// link to the parent lives in the Restaurant pointer.
	RestaurantID int         `json:"restaurant_id"`
	Restaurant   *Restaurant `json:"-"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

func (m *MenuItem) GetStatus() Status  { return m.Status }
func (m *MenuItem) SetStatus(s Status) { m.Status = s }

func (m *MenuItem) Validators(adminEmail string) []string {
	if m.Restaurant == nil {
		return nil
	}
	return []string{m.Restaurant.OwnerEmail}
}

func (m *MenuItem) CardKind() string { return "menu_item_row" }
