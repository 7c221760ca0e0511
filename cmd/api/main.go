package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/saarthi-app/backend/internal/config"
	"github.com/saarthi-app/backend/internal/handler"
	versemodel "github.com/saarthi-app/backend/internal/model/verse"
	chatservice "github.com/saarthi-app/backend/internal/service/chat"
	emotionservice "github.com/saarthi-app/backend/internal/service/emotion"
	intentservice "github.com/saarthi-app/backend/internal/service/intent"
	"github.com/saarthi-app/backend/internal/service/reflection"
	verseservice "github.com/saarthi-app/backend/internal/service/verse"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Shared chat model backend. The service runs fine without one: every
	// stage then answers from its deterministic substitute.
	var chatModel model.ChatModel
	if cfg.AI.Enabled() {
		chatModel, err = cfg.AI.NewChatModel(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize chat model: %v", err)
			chatModel = nil
		} else {
			log.Println("chat model initialized")
		}
	} else {
		log.Println("Ark credentials not configured, running with heuristic and template fallbacks only")
	}

	var embedder embedding.Embedder
	if cfg.AI.EmbeddingEnabled() {
		embedder, err = cfg.AI.NewEmbedder(ctx)
		if err != nil {
			log.Printf("warning: failed to initialize embedder: %v", err)
			embedder = nil
		} else {
			log.Println("embedding model initialized")
		}
	} else {
		log.Println("embedding model not configured, verse search runs lexically")
	}

	intentSvc, err := intentservice.NewService(ctx, chatModel, intentservice.Config{
		ConfidenceThreshold: cfg.Pipeline.IntentThreshold,
	})
	if err != nil {
		log.Fatalf("failed to initialize intent classifier: %v", err)
	}

	emotionSvc, err := emotionservice.NewService(ctx, chatModel, emotionservice.Config{
		Threshold: cfg.Pipeline.EmotionThreshold,
	})
	if err != nil {
		log.Fatalf("failed to initialize emotion detector: %v", err)
	}

	verseSvc := verseservice.NewService(versemodel.Seed(), embedder)

	reflectionSvc, err := reflection.NewService(ctx, chatModel)
	if err != nil {
		log.Fatalf("failed to initialize reflection service: %v", err)
	}

	store, pool := newStore(ctx, cfg.Store)
	if pool != nil {
		defer pool.Close()
	}

	chatSvc := chatservice.NewService(intentSvc, emotionSvc, verseSvc, reflectionSvc, store, chatservice.Config{
		VerseTopK:    cfg.Pipeline.VerseTopK,
		StageTimeout: cfg.Pipeline.StageTimeout,
	})

	router := handler.NewRouter(chatSvc, store)

	startServer(ctx, cfg.Server, router)
}

// newStore picks the session store: Postgres when a DSN is configured,
// in-memory otherwise. Postgres trouble degrades to memory instead of
// refusing to start.
func newStore(ctx context.Context, cfg config.StoreConfig) (chatservice.Store, *pgxpool.Pool) {
	if cfg.PostgresDSN == "" {
		log.Println("no database configured, using in-memory session store")
		return chatservice.NewMemoryStore(), nil
	}

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Printf("warning: failed to open database pool: %v", err)
		log.Println("falling back to in-memory session store")
		return chatservice.NewMemoryStore(), nil
	}

	store := chatservice.NewPostgresStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Printf("warning: failed to ensure database schema: %v", err)
		log.Println("falling back to in-memory session store")
		pool.Close()
		return chatservice.NewMemoryStore(), nil
	}

	log.Println("postgres session store initialized")
	return store, pool
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Saarthi backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
