package repository

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// TaskRecord is one element of the persisted task array.
type TaskRecord struct {
	ID           RecordID `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Priority     string   `json:"priority"`
	DueDate      *string  `json:"dueDate"`
	Completed    bool     `json:"completed"`
	CreatedAt    string   `json:"createdAt"`
	TimerSeconds int      `json:"timerSeconds"`
	TimerRunning bool     `json:"timerRunning"`
	Tags         []string `json:"tags"`
}

// RecordID is a task id as stored. Older data used numeric ids, so both JSON
// numbers and strings decode into it.
type RecordID string

// UnmarshalJSON accepts a JSON string or number.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return err
	}
	*id = RecordID(n.String())
	return nil
}

// EncodeTaskRecords serialises records as a JSON array. A nil slice encodes as [].
func EncodeTaskRecords(records []TaskRecord) (string, error) {
	if records == nil {
		records = []TaskRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeTaskRecords parses a JSON array of records.
func DecodeTaskRecords(raw string) ([]TaskRecord, error) {
	var records []TaskRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, err
	}
	return records, nil
}
