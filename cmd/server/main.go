package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"rfp-assist/internal/assistant"
	"rfp-assist/internal/catalog"
	"rfp-assist/internal/config"
	"rfp-assist/internal/embedding"
	"rfp-assist/internal/indexer"
	"rfp-assist/internal/parser"
	"rfp-assist/internal/retriever"
	"rfp-assist/internal/server"
	"rfp-assist/internal/store"
	"rfp-assist/internal/threads"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	flag.Parse()

	// .env holds API keys in development; missing file is fine
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	embedder, err := embedding.NewEmbedder(&cfg.Embedder)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	st := store.New(cfg.Storage.StoreFile)

	var cat *catalog.Catalog
	if cfg.Storage.CatalogFile != "" {
		cat, err = catalog.Open(cfg.Storage.CatalogFile, cfg.Storage.CatalogDebug)
		if err != nil {
			log.Fatal().Err(err).Msg("Error opening chunk catalog")
		}
		defer cat.Close()
		if err := cat.Init(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Error initializing chunk catalog")
		}
	}

	ix := indexer.New(&cfg.Pipeline, parser.NewPDFExtractor(), embedder, st, cat)
	ret := retriever.New(st)
	client := assistant.NewOpenAIClient(cfg.Assistant.APIKey, cfg.Assistant.AssistantID)
	orc := assistant.NewOrchestrator(client, ret, &cfg.Assistant)
	reg := threads.NewRegistry()

	srv := server.New(ix, reg, orc, client, cat, cfg.Storage.UploadDir)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Handler(),
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}
