package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hosting-storefront/internal/domain"
)

type fakePlans struct {
	plans []domain.Plan
	err   error
}

func (f *fakePlans) Init(context.Context) error { return nil }

func (f *fakePlans) ListActive(context.Context) ([]domain.Plan, error) {
	return f.plans, f.err
}

func TestPlanService_ListActive(t *testing.T) {
	repo := &fakePlans{plans: []domain.Plan{
		{ID: 3, Slug: "three", Price: 3, IsActive: true},
		{ID: 1, Slug: "five", Price: 5, IsActive: true},
	}}

	plans, err := NewPlanService(repo).ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "three", plans[0].Slug)
	assert.Equal(t, "five", plans[1].Slug)
}

func TestPlanService_ListActive_Error(t *testing.T) {
	boom := errors.New("db down")

	_, err := NewPlanService(&fakePlans{err: boom}).ListActive(context.Background())
	assert.ErrorIs(t, err, boom)
}
