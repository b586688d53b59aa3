package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"cardsync/internal/pcm"
)

// JobRepository records the terminal outcome of every import job submission.
type JobRepository struct {
	DB *pgxpool.Pool
}

func (r *JobRepository) Save(runID, artifact string, res pcm.ImportResult) error {
	_, err := r.DB.Exec(context.Background(), `
		INSERT INTO import_job_history
		(id, run_id, artifact, job_id, outcome, errors)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.New(), runID, artifact, res.JobID, string(res.Outcome), strings.Join(res.Errors, "\n"))

	return err
}
