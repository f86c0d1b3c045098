package app

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cropsaarthi/backend/internal/model"
)

func (a *App) Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Status reports the observed connectivity so the UI can flag offline mode.
func (a *App) Status(c echo.Context) error {
	online := true
	if a.Network != nil {
		online = a.Network.Online()
	}
	return c.JSON(http.StatusOK, map[string]bool{"online": online})
}

// ---------- crops & planner ----------

func (a *App) ListCrops(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"crops": a.Crops.ListCrops()})
}

func (a *App) GetCrop(c echo.Context) error {
	crop := c.Param("crop")
	profile, ok := a.Crops.GetProfile(crop)
	if !ok {
		// Unknown crop is an expected outcome, not a server fault.
		return c.JSON(http.StatusNotFound, errorResponse{Error: "unknown crop: " + crop})
	}
	return c.JSON(http.StatusOK, profile)
}

func (a *App) Forecast(c echo.Context) error {
	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if latErr != nil || lonErr != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "lat and lon query parameters are required"})
	}

	forecasts, status := a.Weather.FetchDailyForecast(c.Request().Context(), lat, lon)
	return c.JSON(http.StatusOK, forecastResponse{
		Forecasts: forecasts,
		Status:    status,
		Message:   degradedMessage(status),
	})
}

// Recommend runs the full pipeline: forecast (cached or degraded), the
// recommendation engine, session update, history record. It never fails the
// farmer: every fallback still yields a recommendation.
func (a *App) Recommend(c echo.Context) error {
	var req recommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	state := a.Session.State()
	if req.Crop == "" {
		req.Crop = state.SelectedCrop
	}
	if !req.SoilClass.Valid() {
		req.SoilClass = state.SoilMoistureClass
	}

	forecasts, status := a.Weather.FetchDailyForecast(c.Request().Context(), req.Lat, req.Lon)
	rec := a.Crops.Recommend(req.Crop, req.SoilClass, forecasts)

	if err := a.Session.SetCrop(req.Crop); err == nil {
		_ = a.Session.SetSoil(req.SoilClass)
		_ = a.Session.SetForecasts(forecasts)
	}

	if a.History != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := a.History.Record(ctx, req.Crop, req.SoilClass, rec, forecasts); err != nil {
			log.Printf("gateway: history record failed: %v", err)
		}
	}

	return c.JSON(http.StatusOK, recommendResponse{
		Recommendation: rec,
		Forecasts:      forecasts,
		ForecastStatus: status,
	})
}

// ---------- session ----------

func (a *App) GetSession(c echo.Context) error {
	return c.JSON(http.StatusOK, a.Session.State())
}

func (a *App) PutSession(c echo.Context) error {
	var req sessionUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if req.SelectedCrop != "" {
		if err := a.Session.SetCrop(req.SelectedCrop); err != nil {
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "persist failed"})
		}
	}
	if req.SoilMoistureClass != "" {
		if !req.SoilMoistureClass.Valid() {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "soil_moisture_class must be Dry, Moist or Wet"})
		}
		if err := a.Session.SetSoil(req.SoilMoistureClass); err != nil {
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "persist failed"})
		}
	}
	return c.JSON(http.StatusOK, a.Session.State())
}

// ---------- schemes ----------

func (a *App) ListSchemes(c echo.Context) error {
	var (
		schemes []model.Scheme
		err     error
	)
	switch {
	case c.QueryParam("state") != "":
		schemes, err = a.Schemes.ByState(c.QueryParam("state"))
	case c.QueryParam("category") != "":
		schemes, err = a.Schemes.ByFarmerCategory(c.QueryParam("category"))
	default:
		schemes, err = a.Schemes.All()
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "scheme lookup failed"})
	}
	return c.JSON(http.StatusOK, map[string][]model.Scheme{"schemes": schemes})
}

func (a *App) ListBookmarks(c echo.Context) error {
	ids := a.Schemes.Bookmarks()
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, map[string][]string{"bookmarks": ids})
}

func (a *App) SetBookmark(c echo.Context) error {
	var req bookmarkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	ids, err := a.Schemes.SetBookmark(c.Param("id"), req.Bookmarked)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "bookmark update failed"})
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, map[string][]string{"bookmarks": ids})
}

func (a *App) SubscribeNotifications(c echo.Context) error {
	var req notificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if err := a.Schemes.SubscribeTopics(req.Topics); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "subscription failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ---------- diagnoses ----------

func (a *App) CreateDiagnosis(c echo.Context) error {
	var req diagnosisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil || len(image) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "image_base64 must be non-empty base64"})
	}
	d, err := a.Diagnoses.Diagnose(image, req.Location)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "diagnosis failed"})
	}
	return c.JSON(http.StatusCreated, d)
}

func (a *App) ListDiagnoses(c echo.Context) error {
	var (
		out []model.Diagnosis
		err error
	)
	if c.QueryParam("unsynced") == "true" {
		out, err = a.Diagnoses.Unsynced()
	} else {
		out, err = a.Diagnoses.All()
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "diagnosis lookup failed"})
	}
	return c.JSON(http.StatusOK, map[string][]model.Diagnosis{"diagnoses": out})
}

func (a *App) MarkDiagnosisSynced(c echo.Context) error {
	if _, ok, err := a.Diagnoses.Get(c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "diagnosis lookup failed"})
	} else if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "unknown diagnosis"})
	}
	if err := a.Diagnoses.MarkSynced(c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "sync update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ---------- chat ----------

func (a *App) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil || req.Question == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "question is required"})
	}
	answer, degraded := a.Advisor.Ask(c.Request().Context(), req.Question)
	return c.JSON(http.StatusOK, chatResponse{Answer: answer, Degraded: degraded})
}
