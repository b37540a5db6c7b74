package main

import (
	"log"
	"os"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"

	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/adobe"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/config"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/destination"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/server"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}

	client := adobe.NewLogClient(logger)
	dest := destination.New(client, client, logger)

	if settings, err := loadSettings(cfg.SettingsFile); err != nil {
		logger.WithError(err).Warn("no destination settings loaded, waiting for POST /v1/settings")
	} else if err := dest.UpdateSettingsMap(settings); err != nil {
		log.Fatalf("Failed to apply destination settings: %v", err)
	}

	srv := server.New(&server.Config{Port: cfg.Server.Port}, dest, logger)
	if err := srv.Run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadSettings(path string) (map[string]interface{}, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]interface{}
	if err := sonic.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
