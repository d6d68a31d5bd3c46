package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vendhub/vendhub-backend/pkg/db"
	"github.com/vendhub/vendhub-backend/pkg/db/models"
)

// Resolver finds or creates the location and product referenced by one
// canonical transaction. Resolution is a sequence of explicit phases so
// each can be reasoned about and tested on its own: exact lookup, then
// (for products) fuzzy lookup, then create.
type Resolver struct {
	repo Repository
}

// NewResolver builds a resolver over the provided repository.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// ResolveLocation returns the location for a vendor-supplied code,
// creating it on first sighting. The lookup tests both the as-supplied
// code and the code with the legacy prefix stripped; new rows store the
// stripped form.
func (r *Resolver) ResolveLocation(ctx context.Context, code string) (*models.Location, error) {
	supplied := strings.TrimSpace(code)
	normalized := NormalizeLocationCode(supplied)

	candidates := []string{normalized}
	if supplied != normalized {
		candidates = append(candidates, supplied)
	}

	existing, err := r.repo.FindLocationByCodes(ctx, candidates)
	if err != nil {
		return nil, &PersistenceError{Op: "location lookup", Err: err}
	}
	if existing != nil {
		return existing, nil
	}

	address := fmt.Sprintf("Auto-created from import (code %s)", supplied)
	location := &models.Location{
		ID:      uuid.New(),
		Code:    normalized,
		Name:    "Location " + normalized,
		Address: &address,
	}
	if err := r.repo.CreateLocation(ctx, location); err != nil {
		op := "create location"
		if db.IsUniqueViolation(err, "") {
			op = fmt.Sprintf("create location %q (code already taken by a concurrent import)", normalized)
		}
		return nil, &PersistenceError{Op: op, Err: err}
	}
	return location, nil
}

// ResolveProduct returns the product for a UPC/name pair: exact UPC match
// first, then a fuzzy name match with the variant suffix stripped, then a
// create with a keyword-derived category.
func (r *Resolver) ResolveProduct(ctx context.Context, name, upc string) (*models.Product, error) {
	trimmedName := strings.TrimSpace(name)
	trimmedUPC := strings.TrimSpace(upc)

	if trimmedUPC != "" {
		existing, err := r.repo.FindProductByUPC(ctx, trimmedUPC)
		if err != nil {
			return nil, &PersistenceError{Op: "product lookup", Err: err}
		}
		if existing != nil {
			return existing, nil
		}
	}

	if fragment := StripVariantSuffix(trimmedName); fragment != "" {
		match, err := r.repo.FirstProductNameContaining(ctx, fragment)
		if err != nil {
			return nil, &PersistenceError{Op: "product fuzzy lookup", Err: err}
		}
		if match != nil {
			return match, nil
		}
	}

	product := &models.Product{
		ID:       uuid.New(),
		Name:     trimmedName,
		Category: CategorizeProduct(trimmedName),
	}
	if trimmedUPC != "" {
		product.UPC = &trimmedUPC
	}
	if err := r.repo.CreateProduct(ctx, product); err != nil {
		op := "create product"
		if db.IsUniqueViolation(err, "") {
			op = fmt.Sprintf("create product %q (UPC already taken by a concurrent import)", trimmedUPC)
		}
		return nil, &PersistenceError{Op: op, Err: err}
	}
	return product, nil
}
