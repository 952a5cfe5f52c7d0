package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

func init() {
	goose.AddMigrationContext(upInitial, downInitial)
}

func upInitial(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		create table products
		(
			product_id varchar primary key,
			name varchar not null,
			category varchar not null default 'fertilizer',
			unit varchar not null default 'kg/ha',
			guarantees jsonb not null default '{}',
			dose_rules jsonb not null default '{}'
		);`)
	if err != nil {
		_ = tx.Rollback()
		log.Fatal().Err(err).Msg("failed to create products table")
		return err
	}

	_, err = tx.ExecContext(ctx, `
		create table formulas
		(
			formula_id varchar primary key,
			name varchar not null,
			expression text not null,
			target_attribute varchar not null,
			product_ids jsonb not null default '[]',
			depths jsonb not null default '[]',
			priority int not null default 100,
			enabled boolean not null default true
		);`)
	if err != nil {
		_ = tx.Rollback()
		log.Fatal().Err(err).Msg("failed to create formulas table")
		return err
	}

	_, err = tx.ExecContext(ctx, `
		create table variables
		(
			name varchar primary key,
			value double precision not null
		);`)
	if err != nil {
		_ = tx.Rollback()
		log.Fatal().Err(err).Msg("failed to create variables table")
		return err
	}

	_, err = tx.ExecContext(ctx, `
		create table reports
		(
			report_id varchar primary key,
			name varchar not null,
			headers jsonb not null,
			imported_at timestamp with time zone not null default now()
		);`)
	if err != nil {
		_ = tx.Rollback()
		log.Fatal().Err(err).Msg("failed to create reports table")
		return err
	}

	_, err = tx.ExecContext(ctx, `
		create table report_rows
		(
			report_id varchar not null references reports (report_id) on delete cascade,
			row_index int not null,
			cells jsonb not null,
			primary key (report_id, row_index)
		);`)
	if err != nil {
		_ = tx.Rollback()
		log.Fatal().Err(err).Msg("failed to create report_rows table")
		return err
	}

	return nil
}

func downInitial(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		drop table if exists report_rows;
		drop table if exists reports;
		drop table if exists variables;
		drop table if exists formulas;
		drop table if exists products;`)
	if err != nil {
		_ = tx.Rollback()
		log.Fatal().Err(err).Msg("failed to drop initial tables")
		return err
	}

	return nil
}
