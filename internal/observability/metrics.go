package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PagesFetched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "explore_pages_fetched_total",
			Help: "Listing pages fetched from the explore API",
		},
	)
	CardsExtracted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cards_extracted_total",
			Help: "Cards accumulated from the explore API",
		},
	)
	PricesFound = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prices_scraped_total",
			Help: "Products whose standard price was scraped",
		},
	)
	ImagesUploaded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "images_uploaded_total",
			Help: "Product images uploaded to the destination",
		},
	)
	ImportJobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_jobs_total",
			Help: "Import jobs by terminal outcome",
		},
		[]string{"outcome"},
	)
)

func Start(port string) {
	prometheus.MustRegister(PagesFetched, CardsExtracted, PricesFound, ImagesUploaded, ImportJobs)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}
