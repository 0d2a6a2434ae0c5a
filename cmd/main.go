package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"document-copilot/internal/chromemdb"
	"document-copilot/internal/chunker"
	"document-copilot/internal/config"
	"document-copilot/internal/db"
	"document-copilot/internal/embedding"
	"document-copilot/internal/helper"
	"document-copilot/internal/models"
	"document-copilot/internal/parser"
	"document-copilot/internal/rag"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	filePath := flag.String("file", "", "Path to the document file to index")
	query := flag.String("query", "", "Question to answer from the indexed document")
	dryRun := flag.Bool("dry-run", false, "Parse and chunk the document without indexing it")
	retrievalOnly := flag.Bool("retrieval-only", false, "Return the aggregated context without calling the answer model")
	flag.Parse()

	if *filePath != "" && *query != "" {
		log.Fatal().Msg("Please provide either a document file using the -file flag or a query using the -query flag, but not both")
	}

	ctx := context.Background()
	switch {
	case *filePath != "":
		indexDocument(ctx, *filePath, *dryRun)
	case *query != "":
		answerQuery(ctx, *query, *retrievalOnly)
	default:
		log.Fatal().Msg("Please provide either a document file using the -file flag or a query using the -query flag")
	}
}

func indexDocument(ctx context.Context, filePath string, dryRun bool) {
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	if dryRun {
		pages, err := parser.ExtractPages(filePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Error parsing document")
		}
		chunks := chunker.ChunkPages(pages)
		log.Info().Int("pages", len(pages)).Int("chunks", len(chunks)).Msg("Parsed document")
		helper.PrettyPrint(chunks)
		return
	}

	store, closeStore := newStore(cfg)
	defer closeStore()

	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	if err := rag.NewRAG(store, embedder, cfg, false).Index(ctx, filePath); err != nil {
		log.Fatal().Err(err).Msg("Error indexing document")
	}
	log.Info().Str("file", filePath).Msg("Document indexed")
}

func answerQuery(ctx context.Context, query string, retrievalOnly bool) {
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	store, closeStore := newStore(cfg)
	defer closeStore()

	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	response, err := rag.NewRAG(store, embedder, cfg, retrievalOnly).Query(ctx, query)
	if err != nil {
		if msg := friendlyMessage(err); msg != "" {
			fmt.Println(msg)
			return
		}
		log.Fatal().Err(err).Msg("Error querying")
	}

	log.Info().Msg("Query: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
	fmt.Printf("%s\n\n", response.Query)

	log.Info().Msg("Source: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
	fmt.Printf("%s (intent %s, pages %v)\n\n", response.Source, response.Intent, response.Pages)

	log.Info().Msg("Assistant: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
	fmt.Printf("%s\n\n", response.Content)
}

// newStore builds the configured index backend and a cleanup func.
func newStore(cfg *config.Config) (rag.Store, func()) {
	switch cfg.Storage {
	case "postgres":
		sqldb, err := db.ConnectDB(cfg.Database.DSN, cfg.Database.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("Error connecting to database")
		}
		bunDB := db.NewDB(sqldb, cfg.Database.Debug)
		return rag.NewPostgresStore(bunDB), func() { bunDB.Close() }
	default:
		if err := helper.CreateFolder(cfg.VectorDB.Path); err != nil {
			log.Fatal().Err(err).Msg("Error creating vector database folder")
		}
		manager, err := chromemdb.NewVectorDBManager(cfg.VectorDB.Path, cfg.VectorDB.Collection, cfg.VectorDB.InMemory, cfg.VectorDB.EncryptionKey)
		if err != nil {
			log.Fatal().Err(err).Msg("Error creating vector database manager")
		}

		// In-memory mode persists nothing on its own; restore the last
		// encrypted export on open and write a fresh one on close.
		exported := cfg.VectorDB.InMemory && cfg.VectorDB.EncryptionKey != ""
		if exported {
			if err := manager.Import(context.Background()); err != nil {
				log.Debug().Err(err).Msg("No exported collection to restore")
			}
		}
		log.Debug().Int("chunks", manager.Count()).Msg("Opened vector collection")

		return rag.NewChromemStore(manager), func() {
			if !exported {
				return
			}
			if err := manager.Export(context.Background()); err != nil {
				log.Warn().Err(err).Msg("Error exporting collection")
			}
		}
	}
}

// friendlyMessage maps the pipeline's expected no-answer conditions to the
// fixed user-facing messages.
func friendlyMessage(err error) string {
	switch {
	case errors.Is(err, rag.ErrNoResults):
		return models.MsgNoRelevantContent
	case errors.Is(err, rag.ErrSectionNotFound):
		return models.MsgNoSectionContent
	case errors.Is(err, rag.ErrNoSectionID):
		return models.MsgNoSectionNumber
	}
	return ""
}
