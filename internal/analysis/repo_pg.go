package analysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"talent-backend/internal/signals"
)

// PGStore implements Store using Postgres. Claim and MarkAnalyzing rely on
// conditional updates so concurrent triggers race on a single row update
// instead of a read-modify-write.
type PGStore struct {
	DB *sql.DB
}

const recordColumns = `
candidate_id, status, overall_score, code_quality_score, project_depth_score,
portfolio_completeness_score, improvements, github_facts, portfolio_facts,
failure_reason, attempt, analyzed_at, updated_at`

// Load returns the current record for the candidate.
func (s *PGStore) Load(ctx context.Context, candidateID string) (Record, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM analysis_records WHERE candidate_id = $1 LIMIT 1`,
		candidateID)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return record, err
}

// Claim transitions the candidate to queued unless work is in flight.
func (s *PGStore) Claim(ctx context.Context, candidateID string) (Record, error) {
	const query = `
INSERT INTO analysis_records (candidate_id, status, attempt, updated_at)
VALUES ($1, 'queued', 1, $2)
ON CONFLICT (candidate_id) DO UPDATE
SET status = 'queued',
    attempt = analysis_records.attempt + 1,
    failure_reason = NULL,
    updated_at = $2
WHERE analysis_records.status NOT IN ('queued', 'analyzing')`
	res, err := s.DB.ExecContext(ctx, query, candidateID, time.Now().UTC())
	if err != nil {
		return Record{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Record{}, err
	}
	if affected == 0 {
		return Record{}, ErrConflict
	}
	return s.Load(ctx, candidateID)
}

// MarkAnalyzing transitions queued to analyzing.
func (s *PGStore) MarkAnalyzing(ctx context.Context, candidateID string) (Record, error) {
	const query = `
UPDATE analysis_records
SET status = 'analyzing', updated_at = $2
WHERE candidate_id = $1 AND status = 'queued'`
	res, err := s.DB.ExecContext(ctx, query, candidateID, time.Now().UTC())
	if err != nil {
		return Record{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Record{}, err
	}
	if affected == 0 {
		return Record{}, ErrConflict
	}
	return s.Load(ctx, candidateID)
}

// SaveResult stores the terminal record and appends it to history inside
// one transaction.
func (s *PGStore) SaveResult(ctx context.Context, record Record) error {
	improvements, githubFacts, portfolioFacts, err := marshalRecordJSON(record)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const upsert = `
INSERT INTO analysis_records (candidate_id, status, overall_score, code_quality_score,
    project_depth_score, portfolio_completeness_score, improvements, github_facts,
    portfolio_facts, failure_reason, attempt, analyzed_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (candidate_id) DO UPDATE
SET status = EXCLUDED.status,
    overall_score = EXCLUDED.overall_score,
    code_quality_score = EXCLUDED.code_quality_score,
    project_depth_score = EXCLUDED.project_depth_score,
    portfolio_completeness_score = EXCLUDED.portfolio_completeness_score,
    improvements = EXCLUDED.improvements,
    github_facts = EXCLUDED.github_facts,
    portfolio_facts = EXCLUDED.portfolio_facts,
    failure_reason = EXCLUDED.failure_reason,
    attempt = EXCLUDED.attempt,
    analyzed_at = EXCLUDED.analyzed_at,
    updated_at = EXCLUDED.updated_at`
	if _, err := tx.ExecContext(ctx, upsert,
		record.CandidateID,
		string(record.Status),
		record.Scores.Overall,
		record.Scores.CodeQuality,
		record.Scores.ProjectDepth,
		record.Scores.PortfolioCompleteness,
		improvements,
		githubFacts,
		portfolioFacts,
		nullString(record.FailureReason),
		record.Attempt,
		nullTime(record.AnalyzedAt),
		now,
	); err != nil {
		return err
	}

	const appendHistory = `
INSERT INTO analysis_history (id, candidate_id, status, overall_score, code_quality_score,
    project_depth_score, portfolio_completeness_score, improvements, failure_reason,
    attempt, analyzed_at, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	if _, err := tx.ExecContext(ctx, appendHistory,
		uuid.NewString(),
		record.CandidateID,
		string(record.Status),
		record.Scores.Overall,
		record.Scores.CodeQuality,
		record.Scores.ProjectDepth,
		record.Scores.PortfolioCompleteness,
		improvements,
		nullString(record.FailureReason),
		record.Attempt,
		nullTime(record.AnalyzedAt),
		now,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// History returns prior results, newest first.
func (s *PGStore) History(ctx context.Context, candidateID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
SELECT candidate_id, status, overall_score, code_quality_score, project_depth_score,
       portfolio_completeness_score, improvements, failure_reason, attempt, analyzed_at, recorded_at
FROM analysis_history
WHERE candidate_id = $1
ORDER BY recorded_at DESC
LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, candidateID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var record Record
		var status string
		var improvements []byte
		var failureReason sql.NullString
		var analyzedAt sql.NullTime
		if err := rows.Scan(
			&record.CandidateID,
			&status,
			&record.Scores.Overall,
			&record.Scores.CodeQuality,
			&record.Scores.ProjectDepth,
			&record.Scores.PortfolioCompleteness,
			&improvements,
			&failureReason,
			&record.Attempt,
			&analyzedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, err
		}
		record.Status = Status(status)
		record.FailureReason = failureReason.String
		if analyzedAt.Valid {
			at := analyzedAt.Time
			record.AnalyzedAt = &at
		}
		if len(improvements) > 0 {
			if err := json.Unmarshal(improvements, &record.Improvements); err != nil {
				return nil, err
			}
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var record Record
	var status string
	var improvements, githubFacts, portfolioFacts []byte
	var failureReason sql.NullString
	var analyzedAt sql.NullTime
	if err := row.Scan(
		&record.CandidateID,
		&status,
		&record.Scores.Overall,
		&record.Scores.CodeQuality,
		&record.Scores.ProjectDepth,
		&record.Scores.PortfolioCompleteness,
		&improvements,
		&githubFacts,
		&portfolioFacts,
		&failureReason,
		&record.Attempt,
		&analyzedAt,
		&record.UpdatedAt,
	); err != nil {
		return Record{}, err
	}
	record.Status = Status(status)
	record.FailureReason = failureReason.String
	if analyzedAt.Valid {
		at := analyzedAt.Time
		record.AnalyzedAt = &at
	}
	if len(improvements) > 0 {
		if err := json.Unmarshal(improvements, &record.Improvements); err != nil {
			return Record{}, err
		}
	}
	if len(githubFacts) > 0 {
		var facts signals.GithubFacts
		if err := json.Unmarshal(githubFacts, &facts); err != nil {
			return Record{}, err
		}
		record.GithubFacts = &facts
	}
	if len(portfolioFacts) > 0 {
		var facts signals.PortfolioFacts
		if err := json.Unmarshal(portfolioFacts, &facts); err != nil {
			return Record{}, err
		}
		record.PortfolioFacts = &facts
	}
	return record, nil
}

func marshalRecordJSON(record Record) (improvements, githubFacts, portfolioFacts []byte, err error) {
	list := record.Improvements
	if list == nil {
		list = []string{}
	}
	if improvements, err = json.Marshal(list); err != nil {
		return nil, nil, nil, err
	}
	if record.GithubFacts != nil {
		if githubFacts, err = json.Marshal(record.GithubFacts); err != nil {
			return nil, nil, nil, err
		}
	}
	if record.PortfolioFacts != nil {
		if portfolioFacts, err = json.Marshal(record.PortfolioFacts); err != nil {
			return nil, nil, nil, err
		}
	}
	return improvements, githubFacts, portfolioFacts, nil
}

func nullString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return *value
}
