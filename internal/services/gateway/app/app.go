// Package app is the HTTP surface the UI layer talks to. It wires the core
// services behind an echo router; every planner endpoint degrades instead of
// failing, so the farmer always gets an answer.
package app

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cropsaarthi/backend/internal/services/advisor"
	"github.com/cropsaarthi/backend/internal/services/diagnosis"
	"github.com/cropsaarthi/backend/internal/services/history"
	"github.com/cropsaarthi/backend/internal/services/irrigation"
	"github.com/cropsaarthi/backend/internal/services/scheme"
	"github.com/cropsaarthi/backend/internal/services/session"
	"github.com/cropsaarthi/backend/internal/services/weather"
	"github.com/cropsaarthi/backend/pkg/connectivity"
)

type App struct {
	Crops     *irrigation.Table
	Weather   *weather.Service
	Session   *session.Holder
	Schemes   *scheme.Service
	Diagnoses *diagnosis.Store
	Advisor   *advisor.Advisor
	History   *history.Recorder     // optional; nil disables recording
	Network   *connectivity.Monitor // optional; nil reports always online
}

// Routes registers every endpoint on e.
func (a *App) Routes(e *echo.Echo) {
	e.GET("/healthz", a.Health)
	e.GET("/status", a.Status)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/crops", a.ListCrops)
	e.GET("/crops/:crop", a.GetCrop)
	e.GET("/forecast", a.Forecast)
	e.POST("/recommend", a.Recommend)

	e.GET("/session", a.GetSession)
	e.PUT("/session", a.PutSession)

	e.GET("/schemes", a.ListSchemes)
	e.GET("/schemes/bookmarks", a.ListBookmarks)
	e.PUT("/schemes/:id/bookmark", a.SetBookmark)
	e.POST("/schemes/notifications", a.SubscribeNotifications)

	e.POST("/diagnoses", a.CreateDiagnosis)
	e.GET("/diagnoses", a.ListDiagnoses)
	e.POST("/diagnoses/:id/synced", a.MarkDiagnosisSynced)

	e.POST("/chat", a.Chat)
}
