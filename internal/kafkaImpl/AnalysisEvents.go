package kafkaImpl

import (
	"time"
	"SurveyPulse/internal/models"
)

// AnalysisRequestedEvent is the job descriptor the submit path enqueues.
// It carries the already-assembled dataset so the worker never has to
// re-fetch survey data and the identifiers seen by the analyzer are
// exactly the ones frozen at submit time.
type AnalysisRequestedEvent struct {
    EventID    string    `json:"eventId"`
    Type       string    `json:"type"` // "analysis.requested"
    AnalysisID string    `json:"analysisId"`
    OwnerID    string    `json:"ownerId"`
    Dataset    models.AnalysisDataset `json:"dataset"`
    Timestamp  time.Time `json:"timestamp"`
}

// AnalysisProgressEvent is emitted at every checkpoint of a running job
// and fans out to websocket watchers.
type AnalysisProgressEvent struct {
    EventID    string    `json:"eventId"`
    Type       string    `json:"type"` // "analysis.progress"
    AnalysisID string    `json:"analysisId"`
    Status     string    `json:"status"`
    Progress   int       `json:"progress"`
    Timestamp  time.Time `json:"timestamp"`
}
