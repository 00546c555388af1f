package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"strikebench/internal/model"
)

// Store persists benchmark runs and step gas results.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutRun upserts the run and then its step results.
func (s *Store) PutRun(ctx context.Context, run model.Run, steps []model.StepResult) error {
	if err := s.UpsertRun(ctx, run); err != nil {
		return fmt.Errorf("upsert run: %w", err)
	}
	if err := s.UpsertStepResults(ctx, steps); err != nil {
		return fmt.Errorf("upsert step results: %w", err)
	}
	return nil
}

// UpsertRun inserts or updates a run row.
func (s *Store) UpsertRun(ctx context.Context, run model.Run) error {
	if run.RunID == "" {
		return fmt.Errorf("run id required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO bench_runs (
			run_id, scenario, chain_id, rpc_url, token0, token1, engine, router,
			status, error, started_at, finished_at, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now(),now())
		ON CONFLICT (run_id)
		DO UPDATE SET
			chain_id = EXCLUDED.chain_id,
			rpc_url = EXCLUDED.rpc_url,
			token0 = EXCLUDED.token0,
			token1 = EXCLUDED.token1,
			engine = EXCLUDED.engine,
			router = EXCLUDED.router,
			status = EXCLUDED.status,
			error = EXCLUDED.error,
			finished_at = EXCLUDED.finished_at,
			updated_at = now()
	`,
		run.RunID,
		run.Scenario,
		int64(run.ChainID),
		run.RPCURL,
		run.Token0,
		run.Token1,
		run.Engine,
		run.Router,
		run.Status,
		run.Error,
		run.StartedAt,
		run.FinishedAt,
	)
	return err
}

// UpsertStepResults inserts or updates step results in one batch.
func (s *Store) UpsertStepResults(ctx context.Context, steps []model.StepResult) error {
	if len(steps) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, step := range steps {
		transfers := step.Transfers
		if transfers == nil {
			transfers = []model.TokenTransfer{}
		}
		payload, err := json.Marshal(transfers)
		if err != nil {
			return fmt.Errorf("marshal transfers for %s: %w", step.Step, err)
		}
		batch.Queue(`
			INSERT INTO bench_step_results (
				run_id, step_index, step, label, kind, account, gas_used, tx_hash, block_number,
				measured, gas_ceiling, ceiling_met, transfers, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,now())
			ON CONFLICT (run_id, step_index)
			DO UPDATE SET
				step = EXCLUDED.step,
				label = EXCLUDED.label,
				kind = EXCLUDED.kind,
				account = EXCLUDED.account,
				gas_used = EXCLUDED.gas_used,
				tx_hash = EXCLUDED.tx_hash,
				block_number = EXCLUDED.block_number,
				measured = EXCLUDED.measured,
				gas_ceiling = EXCLUDED.gas_ceiling,
				ceiling_met = EXCLUDED.ceiling_met,
				transfers = EXCLUDED.transfers
		`,
			step.RunID,
			step.Index,
			step.Step,
			step.Label,
			step.Kind,
			step.Account,
			int64(step.GasUsed),
			step.TxHash,
			int64(step.BlockNumber),
			step.Measured,
			step.GasCeiling,
			step.CeilingMet,
			payload,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range steps {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// StepResults returns the stored steps of a run in execution order.
func (s *Store) StepResults(ctx context.Context, runID string) ([]model.StepResult, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT run_id::text, step_index, step, label, kind, account, gas_used, tx_hash, block_number,
			measured, gas_ceiling, ceiling_met, transfers
		FROM bench_step_results
		WHERE run_id = $1
		ORDER BY step_index
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StepResult
	for rows.Next() {
		var (
			step      model.StepResult
			gasUsed   int64
			block     int64
			transfers []byte
		)
		if err := rows.Scan(
			&step.RunID,
			&step.Index,
			&step.Step,
			&step.Label,
			&step.Kind,
			&step.Account,
			&gasUsed,
			&step.TxHash,
			&block,
			&step.Measured,
			&step.GasCeiling,
			&step.CeilingMet,
			&transfers,
		); err != nil {
			return nil, err
		}
		step.GasUsed = uint64(gasUsed)
		step.BlockNumber = uint64(block)
		if err := json.Unmarshal(transfers, &step.Transfers); err != nil {
			return nil, fmt.Errorf("decode transfers for %s: %w", step.Step, err)
		}
		out = append(out, step)
	}
	return out, rows.Err()
}

// RunStatus returns the stored status of a run.
func (s *Store) RunStatus(ctx context.Context, runID string) (string, error) {
	var status string
	err := s.pool.QueryRow(ctx, `SELECT status FROM bench_runs WHERE run_id = $1`, runID).Scan(&status)
	return status, err
}
