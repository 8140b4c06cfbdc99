package postgres

import (
	"context"
	"fmt"

	"hosting-storefront/internal/domain"
	"hosting-storefront/internal/repository"
)

type PlanRepository struct {
	db     repository.DBTX
	tables Tables
}

func NewPlanRepository(db repository.DBTX, tables Tables) repository.PlanRepository {
	return &PlanRepository{db: db, tables: tables}
}

func (r *PlanRepository) Init(ctx context.Context) error {
	if err := ensureSchema(ctx, r.db, r.tables.Schema); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	price NUMERIC(10, 2) NOT NULL,
	max_players INTEGER NOT NULL DEFAULT 0,
	ram_gb INTEGER NOT NULL DEFAULT 0,
	cpu_cores INTEGER NOT NULL DEFAULT 0,
	storage_gb INTEGER NOT NULL DEFAULT 0,
	has_ddos_protection BOOLEAN NOT NULL DEFAULT FALSE,
	support_level TEXT NOT NULL DEFAULT '',
	features JSONB NULL,
	is_popular BOOLEAN NOT NULL DEFAULT FALSE,
	is_active BOOLEAN NOT NULL DEFAULT TRUE
)`, r.tables.Plans)); err != nil {
		return fmt.Errorf("create plans table: %w", err)
	}
	return nil
}

func (r *PlanRepository) ListActive(ctx context.Context) ([]domain.Plan, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
SELECT id, name, slug, price::float8, max_players, ram_gb, cpu_cores,
       storage_gb, has_ddos_protection, support_level, to_jsonb(features)::text,
       is_popular, is_active
FROM %s
WHERE is_active = true
ORDER BY price ASC, id ASC`, r.tables.Plans))
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	plans := []domain.Plan{}
	for rows.Next() {
		plan, err := repository.ScanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}
	return plans, nil
}
