package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"cardsync/internal/config"
	"cardsync/internal/pcm"
)

// go run cmd/jobstatus/main.go -job=0f6f1b43e...
func main() {
	jobID := flag.String("job", "", "Import job id to inspect")
	flag.Parse()

	if *jobID == "" {
		log.Fatal("Missing -job")
	}

	cfg := config.Load()
	if cfg.EPClientID == "" || cfg.EPClientSecret == "" {
		log.Fatal("Missing destination credentials: set EP_CLIENT_ID and EP_CLIENT_SECRET")
	}

	client := &pcm.Client{
		APIURL: cfg.EPAPIURL,
		Auth: &pcm.Auth{
			APIURL:       cfg.EPAPIURL,
			ClientID:     cfg.EPClientID,
			ClientSecret: cfg.EPClientSecret,
			Store: &pcm.FileTokenStore{
				Path: filepath.Join(cfg.DataDir, ".ep_token_cache.json"),
			},
		},
	}
	importer := &pcm.Importer{Client: client}

	status, err := importer.JobStatus(*jobID)
	if err != nil {
		log.Fatalf("Failed to fetch job %s: %v", *jobID, err)
	}
	fmt.Printf("Job %s: %s\n", *jobID, status)

	if status == "failed" {
		msgs, err := importer.JobErrors(*jobID)
		if err != nil {
			log.Printf("Failed to fetch job errors: %v", err)
			return
		}
		fmt.Printf("Found %d errors:\n", len(msgs))
		for _, m := range msgs {
			fmt.Printf("  - %s\n", m)
		}
	}
}
