package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"ontwatch/internal/collector"
	"ontwatch/internal/config"
	"ontwatch/internal/events"
	"ontwatch/internal/infrastructure/storage/jsonfile"
	"ontwatch/internal/logger"
	"ontwatch/internal/poller"
	"ontwatch/internal/probe"
	"ontwatch/internal/routes"
	"ontwatch/internal/usecase/analytics"
	"ontwatch/internal/usecase/notification"
	"ontwatch/internal/usecase/occupancy"
	"ontwatch/internal/usecase/ont"
	"ontwatch/internal/usecase/outage"
	pkgmqtt "ontwatch/pkg/mqtt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
		zap.String("data_dir", cfg.Storage.DataDir),
	)

	dataDir := cfg.Storage.DataDir
	backupDir := cfg.Storage.BackupDir
	if !filepath.IsAbs(backupDir) {
		backupDir = filepath.Join(dataDir, backupDir)
	}

	ontStore := jsonfile.NewStore(filepath.Join(dataDir, cfg.Storage.DevicesFile))
	notificationStore := jsonfile.NewStore(filepath.Join(dataDir, cfg.Storage.NotificationsFile))
	outageStore := jsonfile.NewStore(filepath.Join(dataDir, cfg.Storage.OutagesFile))
	historyStore := jsonfile.NewStore(filepath.Join(dataDir, cfg.Storage.HistoryFile))
	occupancyLogStore := jsonfile.NewStore(filepath.Join(dataDir, cfg.Storage.OccupancyLogFile))

	ontRepo := jsonfile.NewONTRepository(ontStore)
	notificationRepo := jsonfile.NewNotificationRepository(notificationStore, backupDir)
	outageRepo := jsonfile.NewOutageRepository(outageStore)
	historyRepo := jsonfile.NewHistoryRepository(historyStore)
	occupancyLogRepo := jsonfile.NewOccupancyLogRepository(occupancyLogStore)

	notificationService := notification.NewService(notificationRepo)
	ontService := ont.NewService(ontRepo, notificationService)
	outageService := outage.NewService(outageRepo)
	occupancyService := occupancy.NewService(occupancyLogRepo, historyRepo)
	analyticsService := analytics.NewService(occupancyLogRepo)

	var coll collector.Collector = collector.Noop{}
	if !cfg.Mikrotik.Mock && cfg.Mikrotik.Host != "" {
		coll = collector.NewRouterOS(cfg.Mikrotik)
	} else {
		logger.Info("Using noop session collector",
			zap.Bool("mock", cfg.Mikrotik.Mock),
		)
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.MQTT.Enabled && cfg.MQTT.Broker != "" {
		mqttClient := pkgmqtt.NewClient(&pkgmqtt.Config{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
		})
		if err := mqttClient.Connect(); err != nil {
			logger.Error("Failed to connect to MQTT broker, status events disabled", zap.Error(err))
		} else {
			defer mqttClient.Disconnect()
			publisher = events.NewMQTTPublisher(mqttClient, cfg.MQTT.Topic)
		}
	}

	pollerCtx, pollerCancel := context.WithCancel(context.Background())
	defer pollerCancel()

	if cfg.Poller.Enabled {
		prober := probe.NewICMPProber(cfg.Poller.ProbeTimeout, cfg.Poller.ProbeAttempts)
		p := poller.New(
			ontRepo,
			outageService,
			notificationService,
			occupancyService,
			coll,
			prober,
			publisher,
			cfg.Poller,
		)
		go p.Run(pollerCtx)
	} else {
		logger.Info("Background poller disabled")
	}

	router := routes.SetupRoutes(cfg, &routes.Services{
		ONTs:          ontService,
		Notifications: notificationService,
		Outages:       outageService,
		Occupancy:     occupancyService,
		Analytics:     analyticsService,
		Collector:     coll,
	})

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	pollerCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Failed to shutdown server", zap.Error(err))
	}

	log.Println("Server exited properly")
}
