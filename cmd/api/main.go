package main

import (
	"context"
	"net/http"

	_ "seismic-api/docs"
	"seismic-api/internal/config"
	"seismic-api/internal/handler"
	"seismic-api/internal/interpolation"
	"seismic-api/internal/logger"
	"seismic-api/internal/metrics"
	"seismic-api/internal/reference"
	"seismic-api/internal/repository"
	"seismic-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Seismic Design Coefficient API
//	@version		1.0
//	@description	Point queries for SDS and SD1 interpolated from reference stations.
//	@BasePath		/
func main() {
	_ = godotenv.Load()

	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logger.Setup(config.LogLevel, config.LogFormat)
	log.Info().Str("reference_source", config.ReferenceSource).Msg("config loaded")

	ctx := context.Background()

	sources, closeSources, err := referenceSources(ctx, config)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open reference sources")
	}

	table, err := reference.Load(ctx, sources...)
	closeSources()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load reference table")
	}
	metrics.ReferencePoints.Set(float64(table.Len()))
	log.Info().Int("points", table.Len()).Strs("columns", table.Columns()).Msg("reference table loaded")

	// Initialize layers
	engine := interpolation.NewEngine(table)

	seismicService := service.NewSeismicService(engine)
	siteClassService := service.NewSiteClassService(table.Lookup())

	seismicHandler := handler.NewSeismicHandler(seismicService)
	siteClassHandler := handler.NewSiteClassHandler(siteClassService)

	gin.SetMode(config.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":           "ok",
			"reference_points": table.Len(),
		})
	})

	r.GET("/search_csv", seismicHandler.Search)
	r.GET("/site-classes", siteClassHandler.SiteClasses)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:         config.ServerAddress,
		Handler:      r,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	log.Info().Str("addr", config.ServerAddress).Msg("server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// referenceSources builds the configured sources. The returned func releases any database connection.
func referenceSources(ctx context.Context, cfg config.Config) ([]reference.Source, func(), error) {
	if cfg.ReferenceSource == config.SourcePostgres {
		conn, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewRepository(conn)

		sources := make([]reference.Source, 0, len(cfg.ReferenceTables))
		for _, t := range cfg.ReferenceTables {
			sources = append(sources, repo.Source(t))
		}
		return sources, conn.Close, nil
	}

	sources := make([]reference.Source, 0, len(cfg.ReferenceFiles))
	for _, f := range cfg.ReferenceFiles {
		src, err := reference.FileSource(f)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	return sources, func() {}, nil
}
