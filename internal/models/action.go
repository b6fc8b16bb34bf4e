package models

import "github.com/google/uuid"

// ActionRecord captures one committed table operation for the historian.
type ActionRecord struct {
	TableID       uuid.UUID              `json:"table_id"`
	Round         int                    `json:"round"`
	ActionIndex   int                    `json:"action_index"`
	ActorPlayerID uuid.UUID              `json:"actor_player_id"`
	ActionType    string                 `json:"action_type"`
	ActionPayload map[string]interface{} `json:"action_payload"`
	Timestamp     int64                  `json:"timestamp"`
}
