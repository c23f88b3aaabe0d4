package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"VP-RPT/internal"
	"VP-RPT/internal/ai"
	"VP-RPT/internal/config"
	"VP-RPT/internal/docstore"
	"VP-RPT/internal/geocode"
	"VP-RPT/internal/handlers"
	"VP-RPT/internal/render"
	"VP-RPT/internal/resolve"
	"VP-RPT/internal/services"
	"VP-RPT/internal/storage"
	"VP-RPT/internal/templates"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("role", "server").Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()

	store, err := storage.NewGCSStore(ctx, cfg.GCS.BucketName, cfg.GCS.CredentialsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create object store")
	}
	defer store.Close()

	db, err := internal.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer internal.CloseDB(db)

	geminiClient, err := ai.NewClient(ctx, cfg.Gemini.APIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Gemini client")
	}

	places := geocode.NewClient(cfg.Geocoding.BaseURL, cfg.Geocoding.APIKey, log)

	draftStore := docstore.NewDraftStore(store, places, log)
	historyStore := docstore.NewHistoryStore(store, log)
	imageOptionStore := docstore.NewImageOptionStore(store)
	aiConfigStore := docstore.NewAIConfigStore(store)
	commentaryOptions := docstore.NewOptionCardStore(store, docstore.CommentaryOptionsPath)
	multiOptions := docstore.NewOptionCardStore(store, docstore.MultiOptionsPath)
	commentaryCards := docstore.NewOptionCardStore(store, docstore.CommentaryCardsPath)

	templateRepo := templates.NewRepository(store, log)
	renderer := render.NewRenderer(log)
	reportService := services.NewReportService(
		store, templateRepo, renderer, historyStore, imageOptionStore, resolve.DefaultSchema(), log)

	pdfService, err := services.NewPDFService(cfg.Gotenberg.URL, cfg.Gotenberg.Timeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create PDF service")
	}

	assistant := ai.NewAssistant(geminiClient, aiConfigStore, log)
	activityLog := services.NewActivityLogService(db, log)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))
	r.Use(activityLog.Middleware())

	draftsHandler := handlers.NewDraftsHandler(draftStore)
	historyHandler := handlers.NewHistoryHandler(historyStore)
	templatesHandler := handlers.NewTemplatesHandler(templateRepo)
	reportsHandler := handlers.NewReportsHandler(draftStore, reportService, pdfService)
	aiHandler := handlers.NewAIHandler(assistant)
	aiConfigHandler := handlers.NewAIConfigHandler(aiConfigStore)
	imageOptionsHandler := handlers.NewImageOptionsHandler(imageOptionStore)
	logsHandler := handlers.NewLogsHandler(activityLog)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/drafts", draftsHandler.List)
		v1.GET("/drafts/:draftId", draftsHandler.Get)
		v1.POST("/drafts", draftsHandler.Save)
		v1.DELETE("/drafts/:draftId", draftsHandler.Delete)

		v1.GET("/history", historyHandler.List)
		v1.DELETE("/history/:draftId", historyHandler.Delete)

		v1.GET("/templates", templatesHandler.List)
		v1.POST("/templates", templatesHandler.Upload)
		v1.DELETE("/templates/:name", templatesHandler.Delete)

		v1.POST("/images", templatesHandler.UploadImage)
		v1.DELETE("/images/:name", templatesHandler.DeleteImage)

		v1.POST("/reports", reportsHandler.Generate)
		v1.GET("/reports/:name/download", reportsHandler.Download)
		v1.GET("/reports/:name/pdf", reportsHandler.DownloadPDF)

		mountOptionCards(v1.Group("/commentary-options"), handlers.NewOptionCardsHandler(commentaryOptions))
		mountOptionCards(v1.Group("/multi-options"), handlers.NewOptionCardsHandler(multiOptions))
		mountOptionCards(v1.Group("/commentary-cards"), handlers.NewOptionCardsHandler(commentaryCards))

		v1.GET("/image-options", imageOptionsHandler.List)
		v1.POST("/image-options", imageOptionsHandler.Add)
		v1.PUT("/image-options/:id", imageOptionsHandler.Update)
		v1.DELETE("/image-options/:id", imageOptionsHandler.Delete)

		v1.GET("/ai-config", aiConfigHandler.Get)
		v1.PUT("/ai-config", aiConfigHandler.Put)
		v1.POST("/ai/draft", aiHandler.DraftCommentary)
		v1.POST("/ai/rewrite", aiHandler.Rewrite)

		v1.GET("/logs", logsHandler.List)
	}

	// Graceful shutdown handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("shutting down server")
		internal.CloseDB(db)
		store.Close()
		os.Exit(0)
	}()

	log.Info().Str("port", cfg.Server.Port).Msg("starting server")
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func mountOptionCards(g *gin.RouterGroup, h *handlers.OptionCardsHandler) {
	g.GET("", h.List)
	g.POST("", h.Add)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
