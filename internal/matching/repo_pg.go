package matching

import (
	"context"
	"database/sql"
	"encoding/json"
)

// PGShortlistRepo implements ShortlistRepo using Postgres.
type PGShortlistRepo struct {
	DB *sql.DB
}

// ReplaceForJob deletes the job's stored shortlist and inserts the new
// batch inside one transaction.
func (r *PGShortlistRepo) ReplaceForJob(ctx context.Context, jobID string, entries []ShortlistEntry) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shortlist_entries WHERE job_id = $1`, jobID); err != nil {
		return err
	}

	const insert = `
INSERT INTO shortlist_entries (job_id, candidate_id, match_score, sub_scores, rank, computed_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	for _, entry := range entries {
		subScores, err := json.Marshal(entry.SubScores)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insert,
			entry.JobID,
			entry.CandidateID,
			entry.MatchScore,
			subScores,
			entry.Rank,
			entry.ComputedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListForJob returns the stored shortlist in rank order.
func (r *PGShortlistRepo) ListForJob(ctx context.Context, jobID string) ([]ShortlistEntry, error) {
	const query = `
SELECT job_id, candidate_id, match_score, sub_scores, rank, computed_at
FROM shortlist_entries
WHERE job_id = $1
ORDER BY rank ASC, candidate_id ASC`
	rows, err := r.DB.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ShortlistEntry
	for rows.Next() {
		var entry ShortlistEntry
		var subScores []byte
		if err := rows.Scan(&entry.JobID, &entry.CandidateID, &entry.MatchScore, &subScores, &entry.Rank, &entry.ComputedAt); err != nil {
			return nil, err
		}
		if len(subScores) > 0 {
			if err := json.Unmarshal(subScores, &entry.SubScores); err != nil {
				return nil, err
			}
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
