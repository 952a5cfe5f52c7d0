package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"soil-reco/internal/engine"
)

// RunStatus tracks a recommendation run's lifecycle.
type RunStatus string

const (
	RunPending    RunStatus = "Pending"
	RunInProgress RunStatus = "InProgress"
	RunCompleted  RunStatus = "Completed"
	RunFailed     RunStatus = "Failed"
)

// Run is one recommendation run over a stored report. Result is populated
// once the run completes.
type Run struct {
	RunID        int            `json:"run_id"`
	ReportID     string         `json:"report_id"`
	IncludeZeros bool           `json:"include_zeros"`
	Status       RunStatus      `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	CompletedAt  *time.Time     `json:"completed_at"`
	ErrorMessage *string        `json:"error_message"`
	Result       *engine.Result `json:"result"`
}

// CreatePendingRun inserts a run row and returns its id.
func CreatePendingRun(db *sql.DB, reportID string, includeZeros bool) (int, error) {
	var runID int
	err := db.QueryRow(
		`INSERT INTO recommendation_runs (report_id, include_zeros, status)
		VALUES ($1, $2, $3)
		RETURNING run_id;`,
		reportID, includeZeros, RunPending,
	).Scan(&runID)
	if err != nil {
		return -1, fmt.Errorf("failed to create run: %w", err)
	}
	return runID, nil
}

func SetRunInProgress(db *sql.DB, runID int) error {
	_, err := db.Exec(
		`UPDATE recommendation_runs SET status = $2 WHERE run_id = $1;`,
		runID, RunInProgress,
	)
	return err
}

// SetRunCompleted stores the run result and marks it completed.
func SetRunCompleted(db *sql.DB, runID int, result *engine.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result for run %d: %w", runID, err)
	}
	_, err = db.Exec(
		`UPDATE recommendation_runs
		SET status = $2, result = $3, completed_at = now()
		WHERE run_id = $1;`,
		runID, RunCompleted, data,
	)
	return err
}

func SetRunFailed(db *sql.DB, runID int, message string) error {
	_, err := db.Exec(
		`UPDATE recommendation_runs
		SET status = $2, error_message = $3, completed_at = now()
		WHERE run_id = $1;`,
		runID, RunFailed, message,
	)
	return err
}

// GetRunByID loads a run with its result when present.
func GetRunByID(db *sql.DB, runID int) (*Run, error) {
	run := Run{RunID: runID}
	var result []byte
	err := db.QueryRow(
		`select report_id, include_zeros, status, created_at, completed_at, error_message, result
		from recommendation_runs
		where run_id = $1;`,
		runID,
	).Scan(&run.ReportID, &run.IncludeZeros, &run.Status, &run.CreatedAt,
		&run.CompletedAt, &run.ErrorMessage, &result)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no run with id %d", runID)
	}
	if err != nil {
		return nil, err
	}

	if len(result) > 0 {
		run.Result = &engine.Result{}
		if err := json.Unmarshal(result, run.Result); err != nil {
			return nil, err
		}
	}

	return &run, nil
}

// GetRunsByReport lists a report's runs, newest first, without results.
func GetRunsByReport(db *sql.DB, reportID string) ([]Run, error) {
	rows, err := db.Query(
		`select run_id, report_id, include_zeros, status, created_at, completed_at, error_message
		from recommendation_runs
		where report_id = $1
		order by created_at desc;`,
		reportID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var run Run
		err := rows.Scan(&run.RunID, &run.ReportID, &run.IncludeZeros, &run.Status,
			&run.CreatedAt, &run.CompletedAt, &run.ErrorMessage)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
