package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"humancursor/internal/recorder"
)

// ErrRecordingNotFound is returned when no row matches the requested
// session id.
var ErrRecordingNotFound = errors.New("recording not found")

// SaveRecording upserts the serialized item list for sessionID.
func (d *Database) SaveRecording(sessionID string, items []recorder.Item) error {
	payload, err := recorder.Serialize(items)
	if err != nil {
		return err
	}

	return d.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO recordings (session_id, item_count, payload, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(session_id) DO UPDATE SET
				item_count = excluded.item_count,
				payload = excluded.payload,
				updated_at = CURRENT_TIMESTAMP
		`, sessionID, len(items), payload)
		if err != nil {
			return fmt.Errorf("save recording: %w", err)
		}
		return nil
	})
}

// LoadRecording returns the item list persisted under sessionID.
func (d *Database) LoadRecording(sessionID string) ([]recorder.Item, error) {
	var payload []byte
	err := d.db.QueryRow(`SELECT payload FROM recordings WHERE session_id = ?`, sessionID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load recording: %w", err)
	}

	return recorder.Deserialize(payload)
}

// DeleteRecording removes the row for sessionID, if any.
func (d *Database) DeleteRecording(sessionID string) error {
	_, err := d.db.Exec(`DELETE FROM recordings WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("delete recording: %w", err)
	}
	return nil
}
