package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

func init() {
	goose.AddMigrationContext(upRunQueue, downRunQueue)
}

func upRunQueue(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		create table run_queue
		(
			queue_id serial primary key,
			report_id varchar not null references reports (report_id) on delete cascade,
			include_zeros boolean not null default false,
			priority int not null default 10,
			status varchar not null check (status in ('Queued', 'Processing', 'Completed', 'Failed')),
			created_at timestamp with time zone not null default now(),
			started_at timestamp with time zone,
			completed_at timestamp with time zone,
			error_message text,
			run_id int references recommendation_runs (run_id) on delete set null
		);`)
	if err != nil {
		_ = tx.Rollback()
		log.Fatal().Err(err).Msg("failed to create run_queue table")
		return err
	}

	// Index for efficient queue polling (highest priority first, oldest first)
	_, err = tx.ExecContext(ctx, `
		create index idx_run_queue_polling on run_queue(status, priority desc, created_at asc)
		where status in ('Queued', 'Processing');`)
	if err != nil {
		_ = tx.Rollback()
		log.Fatal().Err(err).Msg("failed to create index on run_queue table")
		return err
	}

	return nil
}

func downRunQueue(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `drop table if exists run_queue;`)
	if err != nil {
		_ = tx.Rollback()
		log.Fatal().Err(err).Msg("failed to drop run_queue table")
		return err
	}

	return nil
}
