package amqp

import (
	"encoding/json"
	"time"
)

// AnalysisExportMessage announces a finished financial analysis. It carries
// only identifiers; the worker recomputes the summary from the database so
// the payload never goes stale in the queue.
type AnalysisExportMessage struct {
	ProfileID   int64     `json:"profileId"`
	GeneratedAt time.Time `json:"generatedAt"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewAnalysisExportMessage(profileID int64, generatedAt time.Time) *AnalysisExportMessage {
	return &AnalysisExportMessage{
		ProfileID:   profileID,
		GeneratedAt: generatedAt,
		Timestamp:   time.Now(),
	}
}

func (m *AnalysisExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func AnalysisExportMessageFromJSON(data []byte) (*AnalysisExportMessage, error) {
	var msg AnalysisExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
