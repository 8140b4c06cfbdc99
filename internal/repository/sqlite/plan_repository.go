package sqlite

import (
	"context"
	"fmt"

	"hosting-storefront/internal/domain"
	"hosting-storefront/internal/repository"
)

const createPlansTable = `
CREATE TABLE IF NOT EXISTS plans (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	price REAL NOT NULL,
	max_players INTEGER NOT NULL DEFAULT 0,
	ram_gb INTEGER NOT NULL DEFAULT 0,
	cpu_cores INTEGER NOT NULL DEFAULT 0,
	storage_gb INTEGER NOT NULL DEFAULT 0,
	has_ddos_protection INTEGER NOT NULL DEFAULT 0,
	support_level TEXT NOT NULL DEFAULT '',
	features TEXT NULL,
	is_popular INTEGER NOT NULL DEFAULT 0,
	is_active INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_plans_active_price ON plans(is_active, price);
`

type PlanRepository struct {
	db repository.DBTX
}

func NewPlanRepository(db repository.DBTX) repository.PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPlansTable); err != nil {
		return fmt.Errorf("create plans table: %w", err)
	}
	return nil
}

func (r *PlanRepository) ListActive(ctx context.Context) ([]domain.Plan, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, slug, price, max_players, ram_gb, cpu_cores,
       storage_gb, has_ddos_protection, support_level, features,
       is_popular, is_active
FROM plans
WHERE is_active = 1
ORDER BY price ASC, id ASC`)
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
