package convert

import (
	"bufio"
	"encoding/csv"
	"os"
	"strings"

	"cardsync/internal/model"
)

// WriteRows writes the import CSV with every field quoted, matching what the
// destination import expects. encoding/csv has no quote-all mode, so the
// writer is hand-rolled; reads go through encoding/csv, which keeps the
// artifact round-trip lossless.
func WriteRows(path string, rows []model.ImportRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	writeRecord(w, model.ImportRowHeaders)
	for _, row := range rows {
		writeRecord(w, row.Record())
	}
	return w.Flush()
}

func writeRecord(w *bufio.Writer, rec []string) {
	for i, field := range rec {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(field, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteByte('\n')
}

// ReadRows loads a previously written import CSV.
func ReadRows(path string) ([]model.ImportRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	var rows []model.ImportRow
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		rows = append(rows, model.ImportRowFromRecord(rec))
	}
	return rows, nil
}

// ApplyImageIDs joins uploaded file ids into the rows by external_ref and
// returns how many rows were updated.
func ApplyImageIDs(rows []model.ImportRow, imageIDs map[string]string) int {
	updated := 0
	for i := range rows {
		if id, ok := imageIDs[rows[i].ExternalRef]; ok && id != "" {
			rows[i].MainImageID = id
			updated++
		}
	}
	return updated
}
