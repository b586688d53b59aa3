package main

import (
	"flag"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"cardsync/internal/artifact"
	"cardsync/internal/config"
	"cardsync/internal/convert"
	"cardsync/internal/db"
	"cardsync/internal/explore"
	"cardsync/internal/model"
	"cardsync/internal/observability"
	"cardsync/internal/pcm"
	"cardsync/internal/pricebook"
	"cardsync/internal/pricing"
	"cardsync/internal/repository"
)

// go run cmd/migrate/main.go -mode=extract -pages=5
// go run cmd/migrate/main.go -mode=pricing -input=data/products_20250101_120000.json
// go run cmd/migrate/main.go -mode=all -pages=3 -max-pricing=20
func main() {
	mode := flag.String("mode", "all", "Stage to run: extract, pricing, convert, pricebook, upload-images, import, import-pricebook or all")
	pages := flag.Int("pages", 0, "Listing pages to extract (default from config)")
	maxPricing := flag.Int("max-pricing", 0, "Cap on products to scrape pricing for (0 = all)")
	input := flag.String("input", "", "Input artifact from the previous stage")
	csvIn := flag.String("csv", "", "Converted CSV artifact (upload-images mode)")
	flag.Parse()

	cfg := config.Load()
	if cfg.MetricsPort != "" {
		observability.Start(cfg.MetricsPort)
	}

	if *pages <= 0 {
		*pages = cfg.MaxPages
	}

	p := newPipeline(cfg, *mode)
	defer p.close()

	switch *mode {
	case "extract":
		p.extract(*pages)

	case "pricing":
		p.pricing(requireInput(*input, "extract"), *maxPricing)

	case "convert":
		p.convert(requireInput(*input, "extract or pricing"))

	case "pricebook":
		p.pricebook(requireInput(*input, "extract or pricing"))

	case "upload-images":
		if *csvIn == "" {
			log.Fatal("Missing -csv: run convert first and pass its CSV")
		}
		p.uploadImages(requireInput(*input, "extract or pricing"), *csvIn)

	case "import":
		p.importProducts(requireInput(*input, "convert or upload-images"))

	case "import-pricebook":
		p.importPricebook(requireInput(*input, "pricebook"))

	case "all":
		log.Println("Running complete import process...")
		productsFile := p.extract(*pages)
		pricedFile := p.pricing(productsFile, *maxPricing)
		csvFile := p.convert(pricedFile)
		csvWithImages := p.uploadImages(pricedFile, csvFile)
		res := p.importProducts(csvWithImages)
		if res.Outcome == pcm.JobSuccess {
			log.Println("Complete! All products imported successfully.")
		} else {
			log.Printf("Import did not confirm success (outcome: %s)", res.Outcome)
		}

	default:
		log.Fatalf("Unknown mode %q", *mode)
	}
}

func requireInput(input, producer string) string {
	if input == "" {
		log.Fatalf("Missing -input: run %s first and pass its artifact", producer)
	}
	return input
}

var authModes = map[string]bool{
	"upload-images":    true,
	"import":           true,
	"import-pricebook": true,
	"all":              true,
}

// pipeline wires the stages to shared config, the artifact store and the
// optional run-history repositories.
type pipeline struct {
	cfg   *config.Config
	runID string
	store *artifact.Store

	client   *pcm.Client
	importer *pcm.Importer

	cardRepo *repository.CardRepository
	jobRepo  *repository.JobRepository
	closers  []func()
}

func newPipeline(cfg *config.Config, mode string) *pipeline {
	p := &pipeline{
		cfg:   cfg,
		runID: uuid.New().String(),
		store: artifact.NewStore(cfg.DataDir),
	}

	if authModes[mode] {
		if cfg.EPClientID == "" || cfg.EPClientSecret == "" {
			log.Fatal("Missing destination credentials: set EP_CLIENT_ID and EP_CLIENT_SECRET")
		}

		var tokens pcm.TokenStore = &pcm.FileTokenStore{
			Path: filepath.Join(cfg.DataDir, ".ep_token_cache.json"),
		}
		if cfg.RedisURL != "" {
			tokens = &pcm.RedisTokenStore{
				Client: redis.NewClient(&redis.Options{Addr: cfg.RedisURL}),
			}
		}

		p.client = &pcm.Client{
			APIURL: cfg.EPAPIURL,
			Auth: &pcm.Auth{
				APIURL:       cfg.EPAPIURL,
				ClientID:     cfg.EPClientID,
				ClientSecret: cfg.EPClientSecret,
				Store:        tokens,
			},
		}
		p.importer = &pcm.Importer{
			Client:       p.client,
			PollInterval: cfg.PollInterval,
			PollLimit:    cfg.PollLimit,
		}
	}

	if cfg.DatabaseURL != "" {
		if sqlDB, err := db.New(cfg.DatabaseURL); err == nil {
			p.cardRepo = &repository.CardRepository{DB: sqlDB}
			p.closers = append(p.closers, func() { sqlDB.Close() })
		} else {
			log.Printf("Run history disabled, could not open Postgres: %v", err)
		}
		if pool, err := db.NewPool(cfg.DatabaseURL); err == nil {
			p.jobRepo = &repository.JobRepository{DB: pool}
			p.closers = append(p.closers, pool.Close)
		}
	}

	return p
}

func (p *pipeline) close() {
	for _, c := range p.closers {
		c()
	}
}

func (p *pipeline) extract(pages int) string {
	extractor := &explore.Extractor{
		Client: &explore.Client{
			URL:   p.cfg.ExploreURL,
			Token: p.cfg.ExploreToken,
		},
		MaxPages: pages,
		Delay:    p.cfg.PageDelay,
	}

	cards, fetched := extractor.ExtractAll()
	log.Printf("Extracted %d cards from %d pages", len(cards), fetched)

	if p.cardRepo != nil {
		for _, c := range cards {
			if err := p.cardRepo.Save(p.runID, c); err != nil {
				log.Printf("Failed to snapshot card %s: %v", c.ID, err)
			}
		}
	}

	path, err := p.store.SaveJSON("products", cards)
	if err != nil {
		log.Fatalf("Failed to write products artifact: %v", err)
	}
	log.Printf("Extracted products written to %s", path)
	return path
}

func (p *pipeline) pricing(input string, maxProducts int) string {
	cards := loadCards(input)

	scraper := &pricing.Scraper{
		BaseURL: p.cfg.CardPageURL,
		Delay:   p.cfg.PricingDelay,
	}
	cards, found := scraper.ScrapePricing(cards, maxProducts)

	path, err := p.store.SaveJSON("products_with_pricing", cards)
	if err != nil {
		log.Fatalf("Failed to write pricing artifact: %v", err)
	}
	log.Printf("Saved %d products (%d priced) to %s", len(cards), found, path)
	return path
}

func (p *pipeline) convert(input string) string {
	cards := loadCards(input)

	rows := make([]model.ImportRow, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, convert.ConvertCard(c))
	}

	path, err := p.store.CSVPath("import_products")
	if err != nil {
		log.Fatalf("Failed to prepare CSV artifact: %v", err)
	}
	if err := convert.WriteRows(path, rows); err != nil {
		log.Fatalf("Failed to write CSV artifact: %v", err)
	}
	log.Printf("Converted %d products to %s", len(rows), path)
	return path
}

func (p *pipeline) pricebook(input string) string {
	cards := loadCards(input)

	builder := &pricebook.Builder{
		FXRate:            p.cfg.FXRate,
		DefaultPriceMinor: int64(p.cfg.DefaultPriceMinor),
	}
	records := builder.Build(cards)

	path, err := p.store.SaveJSONL("pricebook", records)
	if err != nil {
		log.Fatalf("Failed to write pricebook artifact: %v", err)
	}
	log.Printf("Generated pricebook with %d price lines at %s", len(records)-1, path)
	return path
}

func (p *pipeline) uploadImages(input, csvPath string) string {
	cards := loadCards(input)

	log.Printf("Uploading images for %d products...", len(cards))
	imageIDs := make(map[string]string)
	for i, c := range cards {
		if c.PreferredImageURL == "" {
			continue
		}

		id, err := p.client.UploadFileByURL(c.PreferredImageURL)
		if err != nil {
			log.Printf("Upload %d/%d failed: %v", i+1, len(cards), err)
		} else {
			imageIDs[convert.Truncate(c.ID, 50)] = id
			observability.ImagesUploaded.Inc()
			log.Printf("Upload %d/%d: %s", i+1, len(cards), id)
		}

		time.Sleep(p.cfg.UploadDelay)
	}

	rows, err := convert.ReadRows(csvPath)
	if err != nil {
		log.Fatalf("Failed to read CSV artifact %s: %v", csvPath, err)
	}
	updated := convert.ApplyImageIDs(rows, imageIDs)

	out := artifact.WithSuffix(csvPath, "_with_images")
	if err := convert.WriteRows(out, rows); err != nil {
		log.Fatalf("Failed to write CSV artifact: %v", err)
	}
	log.Printf("Uploaded %d images, updated %d rows, wrote %s", len(imageIDs), updated, out)
	return out
}

func (p *pipeline) importProducts(csvPath string) pcm.ImportResult {
	res := p.importer.ImportProducts(csvPath)
	p.recordJob(csvPath, res)
	logOutcome(res)
	return res
}

func (p *pipeline) importPricebook(jsonlPath string) pcm.ImportResult {
	res := p.importer.ImportPricebook(jsonlPath)
	p.recordJob(jsonlPath, res)
	logOutcome(res)
	return res
}

func (p *pipeline) recordJob(path string, res pcm.ImportResult) {
	if p.jobRepo == nil {
		return
	}
	if err := p.jobRepo.Save(p.runID, path, res); err != nil {
		log.Printf("Failed to record job history: %v", err)
	}
}

func logOutcome(res pcm.ImportResult) {
	switch res.Outcome {
	case pcm.JobSuccess:
		log.Println("Import completed successfully")
	case pcm.JobFailed:
		log.Printf("Import failed (%d errors reported)", len(res.Errors))
	case pcm.JobTimedOut:
		log.Println("Import did not reach a terminal state in time")
	}
}

func loadCards(path string) []model.Card {
	var cards []model.Card
	if err := artifact.ReadJSON(path, &cards); err != nil {
		log.Fatalf("Failed to read products artifact %s: %v", path, err)
	}
	return cards
}
