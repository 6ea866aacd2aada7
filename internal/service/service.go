// Package service implements the collection facades the HTTP layer talks
// to: validated CRUD plus the derived read views (featured, categories,
// by-slug, search) over whichever store backend was composed in.
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrDuplicateSlug is returned when an article insert or update would
// collide with another article's slug.
var ErrDuplicateSlug = errors.New("an article with this slug already exists")

// IsValidationError reports whether err came from input validation, so
// the handler layer can map it to a 422 without importing the validation
// library.
func IsValidationError(err error) bool {
	var verrs validation.Errors
	return errors.As(err, &verrs)
}

// CategorySummary is one entry of a category listing: the name and how
// many records carry it in the unfiltered collection.
type CategorySummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// stamp returns the current UTC time in the timestamp format stored on
// records. Nanosecond precision keeps updated_at strictly increasing
// across back-to-back mutations.
func stamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// normalizer is implemented by entities that repair legacy field shapes
// after decoding.
type normalizer interface {
	Normalize()
}

// decodeRows unmarshals store rows into entities, normalizing each.
func decodeRows[T any](rows []json.RawMessage) ([]T, error) {
	items := make([]T, 0, len(rows))
	for _, row := range rows {
		var item T
		if err := json.Unmarshal(row, &item); err != nil {
			return nil, fmt.Errorf("failed to decode stored record: %w", err)
		}
		if n, ok := any(&item).(normalizer); ok {
			n.Normalize()
		}
		items = append(items, item)
	}
	return items, nil
}

// decodeRow unmarshals a single store row.
func decodeRow[T any](row json.RawMessage) (*T, error) {
	var item T
	if err := json.Unmarshal(row, &item); err != nil {
		return nil, fmt.Errorf("failed to decode stored record: %w", err)
	}
	if n, ok := any(&item).(normalizer); ok {
		n.Normalize()
	}
	return &item, nil
}

// preparePatch strips fields a partial update may never change and
// refreshes the modification timestamp.
func preparePatch(patch map[string]any) map[string]any {
	if patch == nil {
		patch = make(map[string]any)
	}
	delete(patch, "id")
	delete(patch, "created_at")
	patch["updated_at"] = stamp()
	return patch
}
