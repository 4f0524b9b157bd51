package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"lyricscope/analysis"
	appConfig "lyricscope/config"
	"lyricscope/controller"
	"lyricscope/handlers"
	"lyricscope/logging"
	"lyricscope/lyrics"
	"lyricscope/sentry"
	"lyricscope/wordcloud"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	appConfig.NewConfig()
	if err := logging.Setup(appConfig.Config.Options.LogLevel); err != nil {
		log.Warnf("Invalid LOG_LEVEL, using info: %v", err)
	}
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg := appConfig.Config
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := sentry.Init(cfg.Sentry); err != nil {
		return err
	}
	defer sentry.Flush()

	pipeline, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	router := gin.Default()
	router.Use(sentry.GetSentryGin())
	handlers.NewManager(cfg.Genius.TargetArtist, pipeline).Register(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Options.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on :%s", cfg.Options.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		sentry.ReportError(err)
		return err
	case <-ctx.Done():
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func newPipeline(cfg *appConfig.ConfigStruct) (*controller.Controller, error) {
	queryOrder, err := lyrics.ParseQueryOrder(cfg.Genius.QueryOrder)
	if err != nil {
		return nil, err
	}
	matchPolicy, err := lyrics.ParseMatchPolicy(cfg.Genius.MatchPolicy)
	if err != nil {
		return nil, err
	}

	cloud := wordcloud.DefaultOptions()
	cloud.Width = cfg.WordCloud.Width
	cloud.Height = cfg.WordCloud.Height
	cloud.Background = cfg.WordCloud.Background
	cloud.Palette = cfg.WordCloud.Palette
	cloud.MaxWords = cfg.WordCloud.MaxWords
	cloud.RelativeScaling = cfg.WordCloud.RelativeScaling
	cloud.Seed = cfg.WordCloud.Seed
	if err := cloud.Validate(); err != nil {
		return nil, err
	}

	client := lyrics.New(lyrics.Options{
		BaseURL:     cfg.Genius.BaseURL,
		AccessToken: cfg.Genius.AccessToken,
		Timeout:     cfg.Genius.Timeout,
		MaxRetries:  cfg.Genius.MaxRetries,
		QueryOrder:  queryOrder,
		MatchPolicy: matchPolicy,
	})

	log.WithFields(log.Fields{
		"artist":       cfg.Genius.TargetArtist,
		"query_order":  queryOrder,
		"match_policy": matchPolicy,
		"timeout":      cfg.Genius.Timeout,
	}).Info("pipeline configured")

	return controller.NewController(client, client, controller.Options{
		TargetArtist: cfg.Genius.TargetArtist,
		Stopwords:    analysis.NewStopwordFilter(cfg.Analysis.ExtraStopwords...),
		WordCloud:    cloud,
		TopN:         cfg.Analysis.TopN,
	}), nil
}
