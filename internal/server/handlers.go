package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/earshot/internal/export"
	"github.com/fyrsmithlabs/earshot/internal/feedback"
	"github.com/fyrsmithlabs/earshot/internal/report"
	"github.com/fyrsmithlabs/earshot/internal/store"
)

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleCreateSession(c echo.Context) error {
	var req SessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	created, err := s.service.CreateSession(c.Request().Context(), feedback.Session{
		Nickname:    req.Nickname,
		DeviceModel: req.DeviceModel,
		OSVersion:   req.OSVersion,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) handleListSessions(c echo.Context) error {
	sessions, err := s.service.ListSessions(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	if sessions == nil {
		sessions = []feedback.Session{}
	}
	return c.JSON(http.StatusOK, sessions)
}

func (s *Server) handleUpdateSession(c echo.Context) error {
	var req SessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	err := s.service.UpdateSession(c.Request().Context(), feedback.Session{
		ID:          c.Param("id"),
		Nickname:    req.Nickname,
		DeviceModel: req.DeviceModel,
		OSVersion:   req.OSVersion,
	})
	if err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteSession(c echo.Context) error {
	if err := s.service.DeleteSession(c.Request().Context(), c.Param("id")); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleCreateObservation(c echo.Context) error {
	var req ObservationRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid observation request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.SessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session_id is required")
	}

	obs, reason, err := s.service.CreateObservation(c.Request().Context(), req.SessionID, req.Draft())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, ObservationResponse{Observation: *obs, Reason: reason})
}

func (s *Server) handleListObservations(c echo.Context) error {
	obs, err := s.service.ListObservations(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	if obs == nil {
		obs = []feedback.Observation{}
	}
	return c.JSON(http.StatusOK, obs)
}

func (s *Server) handleReport(c echo.Context) error {
	windowParam := c.QueryParam("window")
	if windowParam == "" {
		windowParam = string(report.Window7d)
	}
	w, err := report.ParseWindow(windowParam)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "window must be 7d, 30d, or all")
	}

	r, err := s.service.Report(c.Request().Context(), w)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, r)
}

func (s *Server) handleExport(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="observations.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	return s.service.Export(c.Request().Context(), f, c.Response())
}

// filterFromQuery parses export filter query parameters. Date bounds accept
// YYYY-MM-DD; "to" extends to the end of its day.
func filterFromQuery(c echo.Context) (export.Filter, error) {
	f := export.Filter{
		Category: feedback.Category(c.QueryParam("category")),
		Course:   c.QueryParam("course"),
		Reporter: c.QueryParam("reporter"),
		Tag:      c.QueryParam("tag"),
		Keyword:  c.QueryParam("keyword"),
	}

	if f.Category != "" && f.Category != feedback.CategoryText && f.Category != feedback.CategoryTTS {
		return export.Filter{}, errors.New("category must be text or tts")
	}

	if from := c.QueryParam("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return export.Filter{}, errors.New("from must be YYYY-MM-DD")
		}
		f.From = t
	}
	if to := c.QueryParam("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return export.Filter{}, errors.New("to must be YYYY-MM-DD")
		}
		f.To = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return f, nil
}

// mapError converts service errors to HTTP errors. Validation failures read
// as 400, missing records as 404, everything else as 500.
func mapError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, feedback.ErrEmptyCourseName),
		errors.Is(err, feedback.ErrEmptyDescription),
		errors.Is(err, feedback.ErrEmptyTags),
		errors.Is(err, feedback.ErrEmptyFeelings),
		errors.Is(err, feedback.ErrFeelingOtherRequired),
		errors.Is(err, feedback.ErrFeelingOtherUnexpected),
		errors.Is(err, feedback.ErrEmptyNickname):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
