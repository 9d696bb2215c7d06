package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/angas/elexon-forecast/config"
	"github.com/angas/elexon-forecast/database"
	"github.com/angas/elexon-forecast/elexon"
	"github.com/angas/elexon-forecast/forecast"
	"github.com/angas/elexon-forecast/halfhour"
	"github.com/angas/elexon-forecast/logging"
	"github.com/angas/elexon-forecast/metrics"
	"github.com/angas/elexon-forecast/mqtt"
	"github.com/angas/elexon-forecast/task"
	"github.com/angas/elexon-forecast/www"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		panic(fmt.Sprintf("failed to load .env: %v", err))
	}

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := halfhour.SetGuiTimezone(cnfg.Gui.Timezone); err != nil {
		panic(fmt.Sprintf("failed to set GUI timezone: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("elexon forecast is starting...", slog.String("version", Version))

	db, err := database.New(ctx, cnfg.Database.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to connect to database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)

	// Now we can use the logger to log database operations into the database itself
	db.SetLogger(logger.With("module", "database"))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(reg)

	palette, err := forecast.PaletteFromConfig(cnfg.Gui.Colors)
	if err != nil {
		panic(fmt.Sprintf("invalid colors: %v", err))
	}

	src := elexon.New(logger.With("module", "elexon"), cnfg.Elexon.BaseURL, cnfg.Elexon.ApiKey, cnfg.Elexon.Timeout)
	svc := forecast.NewService(logger.With("module", "forecast"), src, forecast.Options{
		Location: halfhour.GuiLocation(),
		Timeout:  cnfg.Elexon.Timeout,
		Workers:  cnfg.Elexon.Workers,
		Palette:  palette,
	}, recorder)

	server, err := www.StartServer(cnfg, db, svc, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), Version)
	if err != nil {
		panic(fmt.Sprintf("failed to start server: %v", err))
	}

	var publisher task.ForecastPublisher
	if cnfg.Mqtt.Enabled() {
		mqttLogger := logger.With("module", "mqtt")
		broker := mqtt.NewPahoBroker(mqttLogger, cnfg.Mqtt.Host, cnfg.Mqtt.Port, cnfg.Mqtt.Username, cnfg.Mqtt.Password)
		if isDevMode() {
			logger.Info("dev mode, skipping mqtt connection")
		} else {
			if err := broker.Connect(); err != nil {
				panic(fmt.Sprintf("mqtt connection error: %v", err))
			}
			defer broker.Disconnect()
			publisher = mqtt.NewPublisher(mqttLogger, broker, cnfg.Mqtt.Topic, recorder)
		}
	}

	tasks := task.NewTasks(db, server, svc, publisher, cnfg)
	if isDevMode() {
		logger.Info("dev mode, skipping task scheduling")
	} else {
		if err := tasks.Run(); err != nil {
			panic(fmt.Sprintf("failed to schedule tasks: %v", err))
		}
		defer tasks.Stop()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
			logger.Info("main context done")
		case sig := <-sigCh:
			logger.Info("received signal", slog.Any("signal", sig))
			cancel()
		}
	}()

	server.Run(ctx)
}

func isDevMode() bool {
	return strings.EqualFold(os.Getenv("APP_ENV"), "development")
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}

	time.Sleep(2 * time.Second)
	os.Exit(1)
}
