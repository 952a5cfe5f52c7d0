package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"soil-reco/internal/engine"

	"github.com/google/uuid"
)

// Report is an imported soil-analysis report.
type Report struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Dataset    engine.Dataset `json:"dataset"`
	ImportedAt time.Time      `json:"imported_at"`
}

// ReportSummary is the listing shape: metadata without the rows.
type ReportSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Columns    int       `json:"columns"`
	RowCount   int       `json:"row_count"`
	ImportedAt time.Time `json:"imported_at"`
}

// NewReportID generates a report id.
func NewReportID() string {
	return "r_" + uuid.NewString()
}

// SaveReport stores the report header row and each data row.
func SaveReport(tx *sql.Tx, report Report) error {
	headers, err := json.Marshal(report.Dataset.Headers)
	if err != nil {
		return fmt.Errorf("failed to marshal headers for report %s: %w", report.ID, err)
	}

	query := `INSERT INTO reports (report_id, name, headers)
		VALUES ($1, $2, $3)
		ON CONFLICT (report_id) DO UPDATE SET name = $2, headers = $3;`
	_, err = tx.Exec(query, report.ID, report.Name, headers)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`delete from report_rows where report_id = $1;`, report.ID)
	if err != nil {
		return err
	}

	for i, row := range report.Dataset.Rows {
		cells, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to marshal row %d for report %s: %w", i, report.ID, err)
		}
		_, err = tx.Exec(
			`INSERT INTO report_rows (report_id, row_index, cells) VALUES ($1, $2, $3);`,
			report.ID, i, cells,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetReportByID loads a report with its rows in import order.
func GetReportByID(db *sql.DB, id string) (*Report, error) {
	report := Report{ID: id}
	var headers []byte
	err := db.QueryRow(
		`select name, headers, imported_at from reports where report_id = $1;`, id,
	).Scan(&report.Name, &headers, &report.ImportedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no report with id %s", id)
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(headers, &report.Dataset.Headers); err != nil {
		return nil, err
	}

	rows, err := db.Query(
		`select cells from report_rows where report_id = $1 order by row_index;`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cells []byte
		if err := rows.Scan(&cells); err != nil {
			return nil, err
		}
		var row []string
		if err := json.Unmarshal(cells, &row); err != nil {
			return nil, err
		}
		report.Dataset.Rows = append(report.Dataset.Rows, row)
	}

	return &report, rows.Err()
}

// GetAllReportsShort lists reports without loading rows.
func GetAllReportsShort(db *sql.DB) ([]ReportSummary, error) {
	query := `
		select r.report_id, r.name, r.headers, r.imported_at, count(rr.report_id)
		from reports r
			left join report_rows rr on r.report_id = rr.report_id
		group by r.report_id, r.name, r.headers, r.imported_at
		order by r.imported_at desc;`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]ReportSummary, 0)
	for rows.Next() {
		var summary ReportSummary
		var headers []byte
		if err := rows.Scan(&summary.ID, &summary.Name, &headers, &summary.ImportedAt, &summary.RowCount); err != nil {
			return nil, err
		}
		var headerNames []string
		if err := json.Unmarshal(headers, &headerNames); err != nil {
			return nil, err
		}
		summary.Columns = len(headerNames)
		reports = append(reports, summary)
	}

	return reports, rows.Err()
}

func DeleteReport(db *sql.DB, id string) error {
	_, err := db.Exec(`delete from reports where report_id = $1;`, id)
	return err
}
