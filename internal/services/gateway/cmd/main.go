package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/cropsaarthi/backend/internal/services/advisor"
	"github.com/cropsaarthi/backend/internal/services/diagnosis"
	"github.com/cropsaarthi/backend/internal/services/gateway/app"
	"github.com/cropsaarthi/backend/internal/services/history"
	"github.com/cropsaarthi/backend/internal/services/irrigation"
	"github.com/cropsaarthi/backend/internal/services/scheme"
	"github.com/cropsaarthi/backend/internal/services/session"
	"github.com/cropsaarthi/backend/internal/services/weather"
	"github.com/cropsaarthi/backend/pkg/connectivity"
	"github.com/cropsaarthi/backend/pkg/kvstore"
	"github.com/cropsaarthi/backend/pkg/mqtt"
)

func main() {
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	kv, err := kvstore.New(db)
	if err != nil {
		log.Fatalf("kvstore: %v", err)
	}

	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond

	crops := irrigation.NewTable()
	forecasts := weather.NewService(weather.NewOWMClient(cfg.OWMAPIKey, timeout), weather.NewCache(), timeout)
	sess := session.NewHolder(kv)

	schemes, err := scheme.NewService(db, kv)
	if err != nil {
		log.Fatalf("scheme service: %v", err)
	}

	diagnoses, err := diagnosis.NewStore(db, diagnosis.StubIdentifier{})
	if err != nil {
		log.Fatalf("diagnosis store: %v", err)
	}

	chat := advisor.New(cfg.AdvisorEndpoint, cfg.AdvisorAPIKey, timeout)

	// History sink is optional: without an Influx token advice is simply not
	// recorded.
	var recorder *history.Recorder
	if cfg.InfluxToken != "" {
		recorder, err = history.NewRecorder(history.InfluxConfig{
			URL:    cfg.InfluxURL,
			Token:  cfg.InfluxToken,
			Org:    cfg.InfluxOrg,
			Bucket: cfg.InfluxBucket,
		})
		if err != nil {
			log.Printf("history disabled: %v", err)
		}
	}

	// The broker is optional: without it there are no scheme notifications
	// and drained diagnoses are only flagged locally.
	if cfg.MQTTHost != "" {
		client, err := mqtt.Connect(ctx, mqtt.Config{
			Host:     cfg.MQTTHost,
			Port:     cfg.MQTTPort,
			User:     cfg.MQTTUser,
			Password: cfg.MQTTPass,
			ClientID: "cropsaarthi-gateway",
		})
		if err != nil {
			log.Printf("broker features disabled: %v", err)
		} else {
			go scheme.NewNotifier(schemes, client).Start(ctx)
			diagnoses.SetUploader(diagnosis.NewMQTTUploader(mqtt.NewPublisher(client)))
		}
	}

	// Connectivity monitor drives the offline badge and drains unsynced
	// diagnoses when the network returns.
	monitor := connectivity.NewMonitor(cfg.ProbeURL)
	unsubscribe := monitor.Subscribe(func(online bool) {
		if !online {
			return
		}
		if n, err := diagnoses.SyncAll(); err != nil {
			log.Printf("diagnosis sync on reconnect: %v", err)
		} else if n > 0 {
			log.Printf("synced %d diagnoses after reconnect", n)
		}
	})
	defer unsubscribe()
	go monitor.Run(ctx)

	a := &app.App{
		Crops:     crops,
		Weather:   forecasts,
		Session:   sess,
		Schemes:   schemes,
		Diagnoses: diagnoses,
		Advisor:   chat,
		History:   recorder,
		Network:   monitor,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	a.Routes(e)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("gateway listening on :%s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Printf("server stopped: %v", err)
	}
}
