package pcm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"time"

	"cardsync/internal/observability"
)

// Terminal outcomes of an import job. TimedOut means the poll bound was
// exhausted without the job reaching a terminal status; callers may retry it
// differently from an explicit failure.
type JobOutcome string

const (
	JobSuccess  JobOutcome = "success"
	JobFailed   JobOutcome = "failed"
	JobTimedOut JobOutcome = "timed_out"
)

const errorReportLimit = 10

type ImportResult struct {
	JobID   string
	Outcome JobOutcome
	Errors  []string
}

// Importer drives a batch artifact through submit and the poll loop.
type Importer struct {
	Client       *Client
	PollInterval time.Duration
	PollLimit    int
}

// ImportProducts submits the catalog CSV and polls the returned job to a
// terminal state.
func (im *Importer) ImportProducts(csvPath string) ImportResult {
	return im.runImport(csvPath, "/pcm/products/import", "text/csv")
}

// ImportPricebook submits the pricebook batch file.
func (im *Importer) ImportPricebook(jsonlPath string) ImportResult {
	return im.runImport(jsonlPath, "/pcm/pricebooks/import", "application/x-ndjson")
}

func (im *Importer) runImport(path, endpoint, contentType string) ImportResult {
	log.Printf("Importing %s...", path)

	jobID, err := im.submit(path, endpoint, contentType)
	if err != nil {
		log.Printf("Failed to create import job: %v", err)
		observability.ImportJobs.WithLabelValues(string(JobFailed)).Inc()
		return ImportResult{Outcome: JobFailed}
	}
	log.Printf("Import job created: %s", jobID)

	result := im.wait(jobID)
	observability.ImportJobs.WithLabelValues(string(result.Outcome)).Inc()
	return result
}

func (im *Importer) submit(path, endpoint, contentType string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(path)))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(content); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", im.Client.APIURL+endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := im.Client.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("import endpoint status %d", resp.StatusCode)
	}

	var result dataID
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Data.ID, nil
}

func (im *Importer) wait(jobID string) ImportResult {
	for i := 0; i < im.PollLimit; i++ {
		status, err := im.JobStatus(jobID)
		if err != nil {
			log.Printf("Job status check failed: %v", err)
		} else {
			log.Printf("Job status: %s", status)
			switch status {
			case "success":
				return ImportResult{JobID: jobID, Outcome: JobSuccess}
			case "failed":
				return ImportResult{JobID: jobID, Outcome: JobFailed, Errors: im.jobErrors(jobID)}
			}
		}

		if i < im.PollLimit-1 {
			time.Sleep(im.PollInterval)
		}
	}

	log.Println("Import timed out")
	return ImportResult{JobID: jobID, Outcome: JobTimedOut}
}

type jobResponse struct {
	Data struct {
		Attributes struct {
			Status string `json:"status"`
		} `json:"attributes"`
	} `json:"data"`
}

// JobStatus fetches one job's current status.
func (im *Importer) JobStatus(jobID string) (string, error) {
	req, err := http.NewRequest("GET", im.Client.APIURL+"/pcm/jobs/"+jobID, nil)
	if err != nil {
		return "", err
	}

	resp, err := im.Client.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("job status endpoint status %d", resp.StatusCode)
	}

	var result jobResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Data.Attributes.Status, nil
}

type jobErrorsResponse struct {
	Data []struct {
		Attributes struct {
			Message string `json:"message"`
		} `json:"attributes"`
	} `json:"data"`
}

// jobErrors retrieves per-record failure detail, capped for reporting.
// Best-effort: a retrieval failure never changes the job's outcome.
func (im *Importer) jobErrors(jobID string) []string {
	msgs, err := im.JobErrors(jobID)
	if err != nil {
		log.Printf("Failed to fetch job errors: %v", err)
		return nil
	}
	for _, m := range msgs {
		log.Printf("  - %s", m)
	}
	return msgs
}

// JobErrors fetches the first few per-record error messages of a failed job.
func (im *Importer) JobErrors(jobID string) ([]string, error) {
	req, err := http.NewRequest("GET", im.Client.APIURL+"/pcm/jobs/"+jobID+"/errors", nil)
	if err != nil {
		return nil, err
	}

	resp, err := im.Client.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("job errors endpoint status %d", resp.StatusCode)
	}

	var result jobErrorsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	var msgs []string
	for i, e := range result.Data {
		if i >= errorReportLimit {
			break
		}
		msgs = append(msgs, e.Attributes.Message)
	}
	return msgs, nil
}
