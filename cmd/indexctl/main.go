// indexctl indexes a PDF into the vector store or queries it for similar
// documents, without going through the HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"rfp-assist/internal/catalog"
	"rfp-assist/internal/config"
	"rfp-assist/internal/embedding"
	"rfp-assist/internal/helper"
	"rfp-assist/internal/indexer"
	"rfp-assist/internal/parser"
	"rfp-assist/internal/retriever"
	"rfp-assist/internal/store"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	filePath := flag.String("file", "", "Path to a PDF file to index")
	title := flag.String("title", "", "Document title to query for similar documents")
	k := flag.Int("k", 5, "Number of similar documents to return")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	if *filePath == "" && *title == "" {
		log.Fatal().Msg("Provide a PDF with -file or a document title with -title")
	}
	if *filePath != "" && *title != "" {
		log.Fatal().Msg("Provide either -file or -title, but not both")
	}

	st := store.New(cfg.Storage.StoreFile)

	if *filePath != "" {
		indexFile(context.Background(), cfg, st, *filePath)
		return
	}
	querySimilar(st, *title, *k)
}

func indexFile(ctx context.Context, cfg *config.Config, st *store.Store, filePath string) {
	embedder, err := embedding.NewEmbedder(&cfg.Embedder)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	var cat *catalog.Catalog
	if cfg.Storage.CatalogFile != "" {
		cat, err = catalog.Open(cfg.Storage.CatalogFile, cfg.Storage.CatalogDebug)
		if err != nil {
			log.Fatal().Err(err).Msg("Error opening chunk catalog")
		}
		defer cat.Close()
		if err := cat.Init(ctx); err != nil {
			log.Fatal().Err(err).Msg("Error initializing chunk catalog")
		}
	}

	ix := indexer.New(&cfg.Pipeline, parser.NewPDFExtractor(), embedder, st, cat)
	rec, err := ix.Index(ctx, filePath, helper.SanitizeFilename(filePath))
	if err != nil {
		log.Fatal().Err(err).Msg("Error indexing document")
	}
	log.Info().Str("doc_id", rec.DocID).Str("category", rec.Metadata.Category).Msg("document indexed")
}

func querySimilar(st *store.Store, title string, k int) {
	ret := retriever.New(st)
	hits, err := ret.TopSimilar(title, k)
	if err != nil {
		log.Fatal().Err(err).Msg("Error querying similar documents")
	}
	for i, hit := range hits {
		fmt.Printf("%2d. %-40s %-20s %.4f\n", i+1, hit.Title, hit.Category, hit.Similarity)
	}
}
