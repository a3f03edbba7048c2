package domain

import (
	"encoding/json"
	"time"
)

// Scenario is an immutable snapshot of raw inputs and the computed result.
type Scenario struct {
	ID        string          `json:"id"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}
