package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGCandidatesRepo implements CandidatesRepo using Postgres.
type PGCandidatesRepo struct {
	DB *sql.DB
}

// Create inserts a new candidate.
func (r *PGCandidatesRepo) Create(ctx context.Context, candidate Candidate) error {
	const query = `
INSERT INTO candidates (id, skills, years_of_experience, education_level, availability, portfolio_url, github_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	skills, err := marshalStrings(candidate.Skills)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		candidate.ID,
		skills,
		candidate.YearsOfExperience,
		string(candidate.EducationLevel),
		string(candidate.Availability),
		nullString(candidate.PortfolioURL),
		nullString(candidate.GithubURL),
		candidate.CreatedAt,
		candidate.UpdatedAt,
	)
	return err
}

// GetByID returns a candidate by ID.
func (r *PGCandidatesRepo) GetByID(ctx context.Context, candidateID string) (Candidate, error) {
	const query = `
SELECT id, skills, years_of_experience, education_level, availability, portfolio_url, github_url, created_at, updated_at
FROM candidates
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, candidateID)
	candidate, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Candidate{}, ErrNotFound
	}
	return candidate, err
}

// Update replaces mutable candidate fields.
func (r *PGCandidatesRepo) Update(ctx context.Context, candidate Candidate) error {
	const query = `
UPDATE candidates
SET skills = $2, years_of_experience = $3, education_level = $4, availability = $5,
    portfolio_url = $6, github_url = $7, updated_at = $8
WHERE id = $1`
	skills, err := marshalStrings(candidate.Skills)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		candidate.ID,
		skills,
		candidate.YearsOfExperience,
		string(candidate.EducationLevel),
		string(candidate.Availability),
		nullString(candidate.PortfolioURL),
		nullString(candidate.GithubURL),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all candidates ordered by ID.
func (r *PGCandidatesRepo) List(ctx context.Context) ([]Candidate, error) {
	const query = `
SELECT id, skills, years_of_experience, education_level, availability, portfolio_url, github_url, created_at, updated_at
FROM candidates
ORDER BY id ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, candidate)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row rowScanner) (Candidate, error) {
	var c Candidate
	var skills []byte
	var education, availability string
	var portfolioURL, githubURL sql.NullString
	if err := row.Scan(&c.ID, &skills, &c.YearsOfExperience, &education, &availability, &portfolioURL, &githubURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return Candidate{}, err
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &c.Skills); err != nil {
			return Candidate{}, err
		}
	}
	c.EducationLevel = EducationLevel(education)
	c.Availability = Availability(availability)
	c.PortfolioURL = portfolioURL.String
	c.GithubURL = githubURL.String
	return c, nil
}

// PGJobsRepo implements JobsRepo using Postgres.
type PGJobsRepo struct {
	DB *sql.DB
}

// Create inserts a new job posting.
func (r *PGJobsRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, required_skills, min_experience, education_preference, budget, role_type, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	skills, err := marshalStrings(job.RequiredSkills)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		job.ID,
		skills,
		job.MinExperience,
		nullString(string(job.EducationPreference)),
		job.Budget,
		string(job.RoleType),
		job.CreatedAt,
	)
	return err
}

// GetByID returns a job by ID.
func (r *PGJobsRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	const query = `
SELECT id, required_skills, min_experience, education_preference, budget, role_type, created_at
FROM jobs
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, jobID)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	return job, err
}

// List returns all jobs ordered by ID.
func (r *PGJobsRepo) List(ctx context.Context) ([]Job, error) {
	const query = `
SELECT id, required_skills, min_experience, education_preference, budget, role_type, created_at
FROM jobs
ORDER BY id ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func scanJob(row rowScanner) (Job, error) {
	var j Job
	var skills []byte
	var educationPreference sql.NullString
	var roleType string
	if err := row.Scan(&j.ID, &skills, &j.MinExperience, &educationPreference, &j.Budget, &roleType, &j.CreatedAt); err != nil {
		return Job{}, err
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &j.RequiredSkills); err != nil {
			return Job{}, err
		}
	}
	j.EducationPreference = EducationLevel(educationPreference.String)
	j.RoleType = RoleType(roleType)
	return j, nil
}

func marshalStrings(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

func nullString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
