package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"puzzletrack/internal/app"
	"puzzletrack/internal/config"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.Info("starting puzzletrack...")

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logrus.SetLevel(level)

	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logrus.Fatalf("failed to initialize application: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		logrus.Fatalf("application error: %v", err)
	}
}
