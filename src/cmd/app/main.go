package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/config"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/log"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/storage"
)

func main() {

	viperConfig := config.NewViper()
	viperConfig.SetDefault("log.level", "DEBUG")
	viperConfig.SetDefault("app.name", "DASHBOARD_STORAGE")
	viperConfig.SetDefault("metrics.port", 9190)
	log.InitLogger(viperConfig)
	logger := log.GetLogger()

	validate := config.NewValidator(viperConfig)
	store := config.NewStorage(viperConfig, logger)
	config.Bootstrap(&config.BootstrapConfig{
		Storage:  store,
		Log:      logger,
		Validate: validate,
		Config:   viperConfig,
	})

	// Warm the index cache and report per-kind entry counts.
	kinds := []storage.KindSpec{
		storage.KindUser,
		storage.KindFreelancer,
		storage.KindOrganization,
		storage.KindProject,
		storage.KindTask,
	}
	for _, kind := range kinds {
		idx, err := storage.NewIndexManager(store, kind).Load()
		if err != nil {
			logger.Error("main", fmt.Sprintf("index load failed: %v", err), kind.Name, "")
			continue
		}
		logger.Info("main", fmt.Sprintf("index loaded, %d entries", len(idx)), kind.Name, "")
	}

	metricsPort := viperConfig.GetInt("metrics.port")
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		addr := fmt.Sprintf(":%d", metricsPort)
		logger.Info("main", "metrics listener started", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("main", fmt.Sprintf("metrics listener stopped: %v", err), "main", "")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("main", fmt.Sprintf("Server %s stopped", viperConfig.GetString("app.name")), "gracefull", "")
}
