package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

func init() {
	goose.AddMigrationContext(upRecommendationRuns, downRecommendationRuns)
}

func upRecommendationRuns(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		create table recommendation_runs
		(
			run_id serial primary key,
			report_id varchar not null references reports (report_id) on delete cascade,
			include_zeros boolean not null default false,
			status varchar not null check (status in ('Pending', 'InProgress', 'Completed', 'Failed')),
			created_at timestamp with time zone not null default now(),
			completed_at timestamp with time zone,
			error_message text,
			result jsonb
		);`)
	if err != nil {
		_ = tx.Rollback()
		log.Fatal().Err(err).Msg("failed to create recommendation_runs table")
		return err
	}

	_, err = tx.ExecContext(ctx, `
		create index idx_recommendation_runs_report on recommendation_runs(report_id, created_at desc);`)
	if err != nil {
		_ = tx.Rollback()
		log.Fatal().Err(err).Msg("failed to create index on recommendation_runs table")
		return err
	}

	return nil
}

func downRecommendationRuns(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `drop table if exists recommendation_runs;`)
	if err != nil {
		_ = tx.Rollback()
		log.Fatal().Err(err).Msg("failed to drop recommendation_runs table")
		return err
	}

	return nil
}
