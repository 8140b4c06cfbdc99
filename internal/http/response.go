package http

import (
	"encoding/json"
	"time"

	"hosting-storefront/internal/domain"
)

type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at"`
}

type PlanResponse struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Slug              string          `json:"slug"`
	Price             float64         `json:"price"`
	MaxPlayers        int             `json:"max_players"`
	RAMGB             int             `json:"ram_gb"`
	CPUCores          int             `json:"cpu_cores"`
	StorageGB         int             `json:"storage_gb"`
	HasDDoSProtection bool            `json:"has_ddos_protection"`
	SupportLevel      string          `json:"support_level"`
	Features          json.RawMessage `json:"features"`
	IsPopular         bool            `json:"is_popular"`
	IsActive          bool            `json:"is_active"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func planToResponse(plan domain.Plan) PlanResponse {
	return PlanResponse{
		ID:                plan.ID,
		Name:              plan.Name,
		Slug:              plan.Slug,
		Price:             plan.Price,
		MaxPlayers:        plan.MaxPlayers,
		RAMGB:             plan.RAMGB,
		CPUCores:          plan.CPUCores,
		StorageGB:         plan.StorageGB,
		HasDDoSProtection: plan.HasDDoSProtection,
		SupportLevel:      plan.SupportLevel,
		Features:          featuresJSON(plan.Features),
		IsPopular:         plan.IsPopular,
		IsActive:          plan.IsActive,
	}
}

// featuresJSON passes stored JSON through untouched. Missing features become
// null and text that is not JSON is sent as a string.
func featuresJSON(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	if json.Valid(raw) {
		return raw
	}
	quoted, err := json.Marshal(string(raw))
	if err != nil {
		return json.RawMessage("null")
	}
	return quoted
}
