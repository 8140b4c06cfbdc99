package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"hosting-storefront/internal/domain"
)

// PlanRepository reads the hosting plan catalog.
type PlanRepository interface {
	Init(ctx context.Context) error
	ListActive(ctx context.Context) ([]domain.Plan, error)
}

// ScanPlan reads one row of the catalog column list
// (id, name, slug, price, max_players, ram_gb, cpu_cores, storage_gb,
// has_ddos_protection, support_level, features, is_popular, is_active).
func ScanPlan(row interface {
	Scan(dest ...any) error
}) (domain.Plan, error) {
	var (
		plan         domain.Plan
		supportLevel sql.NullString
		features     []byte
	)
	if err := row.Scan(
		&plan.ID,
		&plan.Name,
		&plan.Slug,
		&plan.Price,
		&plan.MaxPlayers,
		&plan.RAMGB,
		&plan.CPUCores,
		&plan.StorageGB,
		&plan.HasDDoSProtection,
		&supportLevel,
		&features,
		&plan.IsPopular,
		&plan.IsActive,
	); err != nil {
		return domain.Plan{}, fmt.Errorf("scan plan: %w", err)
	}
	plan.SupportLevel = supportLevel.String
	if features != nil {
		plan.Features = json.RawMessage(features)
	}
	return plan, nil
}
