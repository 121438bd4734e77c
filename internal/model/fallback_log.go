package model

import "time"

// FallbackLogEntry is the append-only record written once per fallback
// invocation. The pipeline never reads these back; they exist for operators.
type FallbackLogEntry struct {
	ID           string      `json:"id" bson:"_id"`
	Timestamp    time.Time   `json:"timestamp" bson:"timestamp"`
	StudentID    string      `json:"studentId" bson:"studentId"`
	ToolID       string      `json:"toolId" bson:"toolId"`
	Kind         InsightKind `json:"kind" bson:"kind"`
	ItemKey      string      `json:"itemKey,omitempty" bson:"itemKey,omitempty"`
	ErrorMessage string      `json:"errorMessage" bson:"errorMessage"`
}

// FallbackSummary aggregates fallback usage for the ops dashboard
type FallbackSummary struct {
	ToolID string              `json:"toolId"`
	Total  int                 `json:"total"`
	ByKind map[InsightKind]int `json:"byKind"`
}
