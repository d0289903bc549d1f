package amqp

import (
	"encoding/json"
	"time"
)

// StatementJobMessage asks a worker to process one extracted statement.
// It carries only the path to the statement text and the statement month;
// the worker reads the file and runs the pipeline itself.
type StatementJobMessage struct {
	TextPath  string    `json:"text_path"`
	Month     string    `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

func NewStatementJobMessage(textPath, month string) *StatementJobMessage {
	return &StatementJobMessage{
		TextPath:  textPath,
		Month:     month,
		Timestamp: time.Now(),
	}
}

func (m *StatementJobMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func StatementJobMessageFromJSON(data []byte) (*StatementJobMessage, error) {
	var msg StatementJobMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
