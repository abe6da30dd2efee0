package dto

import "github.com/google/uuid"

// RerankResponse reports how many completed attempts got a fresh rank.
type RerankResponse struct {
	TestID uuid.UUID `json:"test_id"`
	Ranked int       `json:"ranked"`
}
