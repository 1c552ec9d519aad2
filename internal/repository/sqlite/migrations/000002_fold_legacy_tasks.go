package migrations

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"taskflow/internal/logging"
)

// The fold targets the default tasks key only. With a custom
// storage.tasks_key the folded tasks sit under currentTasksKey, which that
// configuration never reads.
const (
	legacyTasksKey  = "taskflow_tasks_v1"
	currentTasksKey = "taskflow_tasks"
)

// legacyFields are copied verbatim from a legacy record. The nested
// "timer" object of the old format is dropped; tracked time restarts at 0.
var legacyFields = []string{"id", "title", "description", "category", "priority", "dueDate", "completed", "createdAt", "tags"}

func init() {
	RegisterGoMigration(2, Up_000002_fold_legacy_tasks, Down_000002_fold_legacy_tasks)
}

// Up_000002_fold_legacy_tasks moves tasks saved under the old v1 key into the
// current key. Existing current data wins; the legacy key is removed either way.
func Up_000002_fold_legacy_tasks(tx *sql.Tx) error {
	var legacy string
	err := tx.QueryRow("SELECT value FROM kv_store WHERE key = ?", legacyTasksKey).Scan(&legacy)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read legacy tasks: %w", err)
	}

	var current int
	if err := tx.QueryRow("SELECT COUNT(*) FROM kv_store WHERE key = ?", currentTasksKey).Scan(&current); err != nil {
		return fmt.Errorf("failed to check current tasks: %w", err)
	}

	if current == 0 {
		folded, err := foldLegacyTasks(legacy)
		if err != nil {
			logging.Warnf("dropping unreadable legacy tasks: %v", err)
		} else {
			_, err = tx.Exec("INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)",
				currentTasksKey, folded, time.Now().UTC().Format(time.RFC3339))
			if err != nil {
				return fmt.Errorf("failed to write folded tasks: %w", err)
			}
		}
	}

	if _, err := tx.Exec("DELETE FROM kv_store WHERE key = ?", legacyTasksKey); err != nil {
		return fmt.Errorf("failed to remove legacy tasks: %w", err)
	}
	return nil
}

// Down_000002_fold_legacy_tasks is irreversible; the legacy key is gone.
func Down_000002_fold_legacy_tasks(tx *sql.Tx) error {
	return nil
}

func foldLegacyTasks(raw string) (string, error) {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return "", err
	}

	folded := make([]map[string]json.RawMessage, 0, len(items))
	for _, item := range items {
		record := map[string]json.RawMessage{
			"timerSeconds": json.RawMessage("0"),
			"timerRunning": json.RawMessage("false"),
		}
		for _, field := range legacyFields {
			if value, ok := item[field]; ok {
				record[field] = value
			}
		}
		folded = append(folded, record)
	}

	data, err := json.Marshal(folded)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
