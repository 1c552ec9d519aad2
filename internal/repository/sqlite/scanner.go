package sqlite

import (
	"time"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanEntry scans a key, value and update time from a database row.
// An unparseable update time leaves UpdatedAt zero.
func ScanEntry(scanner Scanner) (*Entry, error) {
	entry := &Entry{}
	var updatedAt string

	if err := scanner.Scan(&entry.Key, &entry.Value, &updatedAt); err != nil {
		return nil, err
	}

	if ts, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		entry.UpdatedAt = ts
	}

	return entry, nil
}

// ScanKey scans a single key column.
func ScanKey(scanner Scanner) (*string, error) {
	var key string
	if err := scanner.Scan(&key); err != nil {
		return nil, err
	}
	return &key, nil
}

// ScanKeys scans every remaining key row.
func ScanKeys(rows Rows) ([]*string, error) {
	var keys []*string
	for rows.Next() {
		key, err := ScanKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}
