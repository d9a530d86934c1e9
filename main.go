package main

import (
	"os"

	"classical-cipher-backend/analysis"
	"classical-cipher-backend/config"
	"classical-cipher-backend/demo"
	"classical-cipher-backend/handlers"
	"classical-cipher-backend/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	cfg        *config.Config
	logger     zerolog.Logger
	analyzer   *analysis.Analyzer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "cipher",
		Short:        "Classical ciphers and Vigenère cryptanalysis",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a TOML configuration file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve()
		},
	}

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Print sample runs of every cipher and the Kasiski test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return demo.Run(cmd.Context(), cmd.OutOrStdout(), a.analyzer)
		},
	}

	root.AddCommand(serve, demoCmd)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		return err
	}
	analyzer, err := analysis.NewAnalyzer(cfg.AnalysisConfig(), logger.With().Str("component", "analysis").Logger())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.analyzer = analyzer
	return nil
}

func (a *app) serve() error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = a.cfg.Server.AllowOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", handlers.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{handlers.RequestIDHeader}
	router.Use(
		gin.Recovery(),
		handlers.RequestID(),
		logging.AccessLog(a.logger),
		cors.New(corsConfig),
		handlers.BodyLimit(a.cfg.Server.MaxBodyBytes),
	)

	cipherHandler := handlers.NewCipherHandler(a.analyzer, a.logger)

	// API Routes
	handlers.Register(router.Group("/api/v1"), cipherHandler)

	a.logger.Info().Str("port", a.cfg.Server.Port).Msg("server starting")
	a.logger.Info().Msg("API endpoints:")
	for _, route := range router.Routes() {
		a.logger.Info().Str("method", route.Method).Str("path", route.Path).Msg("route")
	}

	if err := router.Run(":" + a.cfg.Server.Port); err != nil {
		a.logger.Error().Err(err).Msg("failed to start server")
		return err
	}
	return nil
}
