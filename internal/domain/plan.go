package domain

import "encoding/json"

// Plan is a hosting plan offered in the catalog. Plans are maintained outside
// this service and are only ever read.
type Plan struct {
	ID                int64
	Name              string
	Slug              string
	Price             float64
	MaxPlayers        int
	RAMGB             int
	CPUCores          int
	StorageGB         int
	HasDDoSProtection bool
	SupportLevel      string
	Features          json.RawMessage
	IsPopular         bool
	IsActive          bool
}
