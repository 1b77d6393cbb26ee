package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/phygon975/API-project/internal/config"
	"github.com/phygon975/API-project/internal/model"
	"github.com/phygon975/API-project/internal/service"
	"github.com/phygon975/API-project/internal/storage"
)

// initStorage opens the configured database and brings its schema up to
// date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// parseOverrideFlags turns the repeatable --set-* flag values into override
// requests. Each value is DEVICE=VALUE; repeated flags for the same device
// merge into one request.
func parseOverrideFlags(categories, subtypes, materials []string) (map[string]service.OverrideRequest, error) {
	overrides := make(map[string]service.OverrideRequest)

	get := func(device string) service.OverrideRequest {
		return overrides[device]
	}

	for _, v := range categories {
		device, value, err := splitOverride(v)
		if err != nil {
			return nil, fmt.Errorf("--set-category %q: %w", v, err)
		}
		req := get(device)
		req.Category = model.EquipmentCategory(value)
		if !req.Category.Valid() {
			return nil, fmt.Errorf("--set-category %q: unknown category %q", v, value)
		}
		overrides[device] = req
	}

	for _, v := range subtypes {
		device, value, err := splitOverride(v)
		if err != nil {
			return nil, fmt.Errorf("--set-subtype %q: %w", v, err)
		}
		req := get(device)
		req.Subtype = value
		overrides[device] = req
	}

	for _, v := range materials {
		device, value, err := splitOverride(v)
		if err != nil {
			return nil, fmt.Errorf("--set-material %q: %w", v, err)
		}
		req := get(device)
		req.Material = value
		overrides[device] = req
	}

	return overrides, nil
}

func splitOverride(v string) (device, value string, err error) {
	device, value, ok := strings.Cut(v, "=")
	if !ok || device == "" || value == "" {
		return "", "", fmt.Errorf("expected DEVICE=VALUE")
	}
	return device, value, nil
}
