package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"thali/internal/items"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyPayload   = errors.New("import payload is empty")
	ErrInvalidPayload = errors.New("import payload is not a JSON array")
	ErrMissingBatchID = errors.New("restaurant record is missing its id")
	ErrInvalidPrice   = errors.New("menu item price is not numeric")
)

const (
	typeRestaurant = "restaurant"
	typeMenuItem   = "menuitem"

	// parentRefKey is the property linking a menu item to a restaurant's
	// batch-local id. It is matched case-insensitively, at any nesting
	// depth inside the record.
	parentRefKey = "restaurantId"
)

// Result is a parsed import batch: restaurants first in source order, then
// menu items in source order. Skipped counts menu-item records dropped
// because their restaurant reference did not resolve.
type Result struct {
	Items   []items.Item
	Skipped int
}

// Parse converts a JSON import payload into staged catalog items.
//
// Two passes: restaurants are collected first and keyed by their
// batch-local id; menu items then resolve against that key set. A menu
// item whose reference does not resolve is dropped, not rejected —
// existing import contract, reported back through Result.Skipped.
func Parse(payload []byte) (*Result, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, ErrEmptyPayload
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var records []map[string]any
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	result := &Result{}

	// Pass 1: restaurants, keyed by batch-local id.
	byBatchID := make(map[string]*items.Restaurant)
	for _, record := range records {
		if recordType(record) != typeRestaurant {
			continue
		}

		batchID := strings.TrimSpace(stringField(record, "id"))
		if batchID == "" {
			return nil, ErrMissingBatchID
		}

		restaurant := &items.Restaurant{
			Name:       stringField(record, "name"),
			OwnerEmail: stringField(record, "ownerEmailAddress"),
			Status:     items.StatusPending,
		}

		byBatchID[strings.ToLower(batchID)] = restaurant
		result.Items = append(result.Items, restaurant)
	}

	// Pass 2: menu items, resolved against pass 1.
	for _, record := range records {
		if recordType(record) != typeMenuItem {
			continue
		}

		ref, ok := findDeep(record, parentRefKey)
		if !ok {
			result.Skipped++
			continue
		}
		parent, ok := byBatchID[strings.ToLower(scalarString(ref))]
		if !ok {
			result.Skipped++
			continue
		}

		price, err := priceField(record)
		if err != nil {
			return nil, err
		}

		result.Items = append(result.Items, &items.MenuItem{
			ID:         uuid.New(),
			Title:      stringField(record, "title"),
			Price:      price,
			Status:     items.StatusPending,
			Restaurant: parent,
		})
	}

	return result, nil
}

// recordType reads the "type" discriminator, tolerant of case and
// surrounding whitespace. Records without one are ignored by both passes.
func recordType(record map[string]any) string {
	value, ok := lookup(record, "type")
	if !ok {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// lookup finds a top-level property by case-insensitive name.
func lookup(record map[string]any, name string) (any, bool) {
	if value, ok := record[name]; ok {
		return value, true
	}
	for key, value := range record {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return nil, false
}

// stringField extracts a string property leniently: missing or non-string
// values become the empty string.
func stringField(record map[string]any, name string) string {
	value, ok := lookup(record, name)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

func priceField(record map[string]any) (decimal.Decimal, error) {
	value, ok := lookup(record, "price")
	if !ok {
		return decimal.Decimal{}, ErrInvalidPrice
	}

	switch v := value.(type) {
	case json.Number:
		price, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidPrice, v.String())
		}
		return price, nil
	case string:
		price, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidPrice, v)
		}
		return price, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrInvalidPrice, value)
	}
}

// findDeep searches a decoded record for a property by case-insensitive
// name at any nesting depth. Import payloads in the wild carry the
// restaurant reference under wrapper objects, so the top level alone is
// not enough.
func findDeep(value any, name string) (any, bool) {
	switch v := value.(type) {
	case map[string]any:
		for key, nested := range v {
			if strings.EqualFold(key, name) {
				return nested, true
			}
		}
		for _, nested := range v {
			if found, ok := findDeep(nested, name); ok {
				return found, true
			}
		}
	case []any:
		for _, nested := range v {
			if found, ok := findDeep(nested, name); ok {
				return found, true
			}
		}
	}
	return nil, false
}

// scalarString renders a reference value for key comparison; batch ids may
// appear as strings or bare numbers.
func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
