package repository

import (
	"database/sql"
	"encoding/json"

	"cardsync/internal/model"
)

// CardRepository keeps a per-run snapshot of every extracted card so runs can
// be audited after the artifacts are gone.
type CardRepository struct {
	DB *sql.DB
}

func (r *CardRepository) Save(runID string, c model.Card) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}

	var exists bool
	err = r.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM card_snapshot WHERE card_id = $1 AND run_id = $2)",
		c.ID, runID).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		_, err = r.DB.Exec(`
			UPDATE card_snapshot
			SET pdp_url = $1, payload = $2
			WHERE card_id = $3 AND run_id = $4
		`, c.PdpURL, payload, c.ID, runID)
	} else {
		_, err = r.DB.Exec(`
			INSERT INTO card_snapshot
			(run_id, card_id, pdp_url, payload)
			VALUES ($1, $2, $3, $4)
		`, runID, c.ID, c.PdpURL, payload)
	}

	return err
}

func (r *CardRepository) ListRun(runID string) ([]model.Card, error) {
	rows, err := r.DB.Query(`
		SELECT payload
		FROM card_snapshot
		WHERE run_id = $1
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Card
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			continue
		}
		var c model.Card
		if err := json.Unmarshal(payload, &c); err != nil {
			continue
		}
		list = append(list, c)
	}

	return list, nil
}
