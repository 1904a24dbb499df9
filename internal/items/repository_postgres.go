package items

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Commit a staged batch
// --------------------------------------------------
func (r *PostgresRepository) Save(ctx context.Context, batch []Item) error {
	// Reject unknown kinds before touching the database.
	for _, item := range batch {
		switch item.(type) {
		case *Restaurant, *MenuItem:
		default:
			return fmt.Errorf("%w: %T", ErrUnknownKind, item)
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Restaurants first: menu items need the generated restaurant ids.
	for _, item := range batch {
		restaurant, ok := item.(*Restaurant)
		if !ok {
			continue
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO restaurants (name, owner_email, status, image_path)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`,
			restaurant.Name,
			restaurant.OwnerEmail,
			restaurant.Status,
			restaurant.ImagePath,
		).Scan(&restaurant.ID, &restaurant.CreatedAt)
		if err != nil {
			return err
		}
	}

	for _, item := range batch {
		menuItem, ok := item.(*MenuItem)
		if !ok {
			continue
		}
		if menuItem.Restaurant != nil {
			menuItem.RestaurantID = menuItem.Restaurant.ID
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO menu_items (id, title, price, status, restaurant_id)
			VALUES ($1, $2, $3, $4, $5)
		`,
			menuItem.ID.String(),
			menuItem.Title,
			menuItem.Price.StringFixed(2),
			menuItem.Status,
			menuItem.RestaurantID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// Restaurant queries
// --------------------------------------------------

const restaurantColumns = `id, name, owner_email, status, COALESCE(image_path, ''), created_at`

func (r *PostgresRepository) ApprovedRestaurants(ctx context.Context) ([]*Restaurant, error) {
	return r.queryRestaurants(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE status = $1
		ORDER BY id
	`, StatusApproved)
}

func (r *PostgresRepository) PendingRestaurants(ctx context.Context) ([]*Restaurant, error) {
	return r.queryRestaurants(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE status = $1
		ORDER BY id
	`, StatusPending)
}

func (r *PostgresRepository) RestaurantsByIDs(ctx context.Context, ids []int) ([]*Restaurant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.queryRestaurants(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE id = ANY($1)
		ORDER BY id
	`, ids)
}

func (r *PostgresRepository) RestaurantByID(ctx context.Context, id int) (*Restaurant, error) {
	restaurants, err := r.queryRestaurants(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	if len(restaurants) == 0 {
		return nil, ErrNotFound
	}
	return restaurants[0], nil
}

func (r *PostgresRepository) queryRestaurants(ctx context.Context, query string, args ...any) ([]*Restaurant, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []*Restaurant
	for rows.Next() {
		var res Restaurant
		if err := rows.Scan(
			&res.ID,
			&res.Name,
			&res.OwnerEmail,
			&res.Status,
			&res.ImagePath,
			&res.CreatedAt,
		); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, &res)
	}
	return restaurants, rows.Err()
}

// --------------------------------------------------
// Menu item queries (parent restaurant always loaded:
// the approval gate needs the owner email)
// --------------------------------------------------

const menuItemSelect = `
	SELECT
		m.id, m.title, m.price::text, m.status, m.restaurant_id, m.created_at,
		r.id, r.name, r.owner_email, r.status, COALESCE(r.image_path, ''), r.created_at
	FROM menu_items m
	JOIN restaurants r ON r.id = m.restaurant_id
`

func (r *PostgresRepository) ApprovedMenuItems(ctx context.Context) ([]*MenuItem, error) {
	return r.queryMenuItems(ctx, menuItemSelect+`
		WHERE m.status = $1
		ORDER BY m.created_at, m.id
	`, StatusApproved)
}

func (r *PostgresRepository) ApprovedMenuItemsForRestaurant(ctx context.Context, restaurantID int) ([]*MenuItem, error) {
	return r.queryMenuItems(ctx, menuItemSelect+`
		WHERE m.status = $1 AND m.restaurant_id = $2
		ORDER BY m.created_at, m.id
	`, StatusApproved, restaurantID)
}

func (r *PostgresRepository) PendingMenuItemsForOwner(ctx context.Context, ownerEmail string) ([]*MenuItem, error) {
	return r.queryMenuItems(ctx, menuItemSelect+`
		WHERE m.status = $1 AND LOWER(r.owner_email) = LOWER($2)
		ORDER BY m.created_at, m.id
	`, StatusPending, ownerEmail)
}

func (r *PostgresRepository) MenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]*MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.queryMenuItems(ctx, menuItemSelect+`
		WHERE m.id = ANY($1::uuid[])
		ORDER BY m.created_at, m.id
	`, uuidStrings(ids))
}

func (r *PostgresRepository) MenuItemByID(ctx context.Context, id uuid.UUID) (*MenuItem, error) {
	menuItems, err := r.queryMenuItems(ctx, menuItemSelect+`
		WHERE m.id = $1
	`, id.String())
	if err != nil {
		return nil, err
	}
	if len(menuItems) == 0 {
		return nil, ErrNotFound
	}
	return menuItems[0], nil
}

func (r *PostgresRepository) queryMenuItems(ctx context.Context, query string, args ...any) ([]*MenuItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menuItems []*MenuItem
	for rows.Next() {
		var (
			item    MenuItem
			parent  Restaurant
			rawID   string
			rawCost string
		)
		if err := rows.Scan(
			&rawID,
			&item.Title,
			&rawCost,
			&item.Status,
			&item.RestaurantID,
			&item.CreatedAt,
			&parent.ID,
			&parent.Name,
			&parent.OwnerEmail,
			&parent.Status,
			&parent.ImagePath,
			&parent.CreatedAt,
		); err != nil {
			return nil, err
		}

		item.ID, err = uuid.Parse(rawID)
		if err != nil {
			return nil, err
		}
		item.Price, err = decimal.NewFromString(rawCost)
		if err != nil {
			return nil, err
		}
		item.Restaurant = &parent

		menuItems = append(menuItems, &item)
	}
	return menuItems, rows.Err()
}

// --------------------------------------------------
// Approval flips (single UPDATE, atomic per call)
// --------------------------------------------------

func (r *PostgresRepository) SetRestaurantsApproved(ctx context.Context, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE restaurants
		SET status = $1
		WHERE id = ANY($2)
	`, StatusApproved, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRepository) SetMenuItemsApproved(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE menu_items
		SET status = $1
		WHERE id = ANY($2::uuid[])
	`, StatusApproved, uuidStrings(ids))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
