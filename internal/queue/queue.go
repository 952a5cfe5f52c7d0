package queue

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Priority constants for queue entries
const (
	PriorityAPI   = 100 // User-requested via API
	PriorityBatch = 10  // Batch recommender
)

// QueueStatus represents the status of a queue entry
type QueueStatus string

const (
	StatusQueued     QueueStatus = "Queued"
	StatusProcessing QueueStatus = "Processing"
	StatusCompleted  QueueStatus = "Completed"
	StatusFailed     QueueStatus = "Failed"
)

// QueueEntry represents a recommendation run job in the queue
type QueueEntry struct {
	QueueID      int         `json:"queue_id"`
	ReportID     string      `json:"report_id"`
	IncludeZeros bool        `json:"include_zeros"`
	Priority     int         `json:"priority"`
	Status       QueueStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	StartedAt    *time.Time  `json:"started_at"`
	CompletedAt  *time.Time  `json:"completed_at"`
	ErrorMessage *string     `json:"error_message"`
	RunID        *int        `json:"run_id"`
}

// CreateQueueEntry adds a new recommendation run job to the queue
func CreateQueueEntry(db *sql.DB, reportID string, includeZeros bool, priority int) (int, error) {
	query := `INSERT INTO run_queue (
		report_id,
		include_zeros,
		priority,
		status
	) VALUES ($1, $2, $3, $4)
	RETURNING queue_id;`

	var queueID int
	err := db.QueryRow(query, reportID, includeZeros, priority, StatusQueued).Scan(&queueID)
	if err != nil {
		return -1, fmt.Errorf("failed to create queue entry: %w", err)
	}

	log.Info().Msgf("Created queue entry %d for report %s with priority %d", queueID, reportID, priority)
	return queueID, nil
}

// GetNextQueuedRun fetches the next pending job from the queue (highest
// priority first, oldest first). Returns nil when the queue is empty.
func GetNextQueuedRun(db *sql.DB) (*QueueEntry, error) {
	query := `
		SELECT
			queue_id,
			report_id,
			include_zeros,
			priority,
			status,
			created_at,
			started_at,
			completed_at,
			error_message,
			run_id
		FROM run_queue
		WHERE status = $1
		ORDER BY priority DESC, created_at ASC
		LIMIT 1;`

	entry := &QueueEntry{}
	err := db.QueryRow(query, StatusQueued).Scan(
		&entry.QueueID,
		&entry.ReportID,
		&entry.IncludeZeros,
		&entry.Priority,
		&entry.Status,
		&entry.CreatedAt,
		&entry.StartedAt,
		&entry.CompletedAt,
		&entry.ErrorMessage,
		&entry.RunID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch next queued run: %w", err)
	}

	return entry, nil
}

// SetQueueProcessing marks an entry as picked up by a worker
func SetQueueProcessing(db *sql.DB, queueID int) error {
	result, err := db.Exec(
		`UPDATE run_queue SET status = $2, started_at = now()
		WHERE queue_id = $1 AND status = $3;`,
		queueID, StatusProcessing, StatusQueued,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("queue entry %d was not in Queued status", queueID)
	}
	return nil
}

// SetQueueCompleted marks an entry as done, linking the produced run
func SetQueueCompleted(db *sql.DB, queueID int, runID int) error {
	_, err := db.Exec(
		`UPDATE run_queue SET status = $2, completed_at = now(), run_id = $3
		WHERE queue_id = $1;`,
		queueID, StatusCompleted, runID,
	)
	return err
}

// SetQueueFailed marks an entry as failed with a diagnostic message
func SetQueueFailed(db *sql.DB, queueID int, message string) error {
	_, err := db.Exec(
		`UPDATE run_queue SET status = $2, completed_at = now(), error_message = $3
		WHERE queue_id = $1;`,
		queueID, StatusFailed, message,
	)
	return err
}

// GetQueueEntry loads one entry by id
func GetQueueEntry(db *sql.DB, queueID int) (*QueueEntry, error) {
	query := `
		SELECT
			queue_id,
			report_id,
			include_zeros,
			priority,
			status,
			created_at,
			started_at,
			completed_at,
			error_message,
			run_id
		FROM run_queue
		WHERE queue_id = $1;`

	entry := &QueueEntry{}
	err := db.QueryRow(query, queueID).Scan(
		&entry.QueueID,
		&entry.ReportID,
		&entry.IncludeZeros,
		&entry.Priority,
		&entry.Status,
		&entry.CreatedAt,
		&entry.StartedAt,
		&entry.CompletedAt,
		&entry.ErrorMessage,
		&entry.RunID,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no queue entry with id %d", queueID)
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}
