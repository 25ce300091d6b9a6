// Package leads persists submitted configurator runs and exposes them to the
// sales side.
package leads

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the sales pipeline state of a lead.
type Status string

const (
	StatusNew          Status = "new"
	StatusContacted    Status = "contacted"
	StatusProposalSent Status = "proposal_sent"
	StatusConverted    Status = "converted"
	StatusRejected     Status = "rejected"
)

// Valid reports whether s is a known pipeline state.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusProposalSent, StatusConverted, StatusRejected:
		return true
	}
	return false
}

// Lead is one stored prospect request. Services holds the selected service
// keys; Configuration holds the full wire document for later inspection.
type Lead struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Company        string          `json:"company,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Services       []string        `json:"services"`
	Configuration  json.RawMessage `json:"configuration"`
	EstimatedPrice decimal.Decimal `json:"estimated_price"`
	Status         Status          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}
