package api

import (
	"errors"
	"net/http"

	"SpacWatch/internal/domain/models"
	"SpacWatch/internal/usecase"
	xhttp "SpacWatch/pkg/http"
	xlogger "SpacWatch/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler exposes the dashboard state machine over HTTP.
type DashboardHandler struct {
	logger   *xlogger.Logger
	orch     *usecase.Orchestrator
	exporter *usecase.Exporter
}

func NewDashboardHandler(logger *xlogger.Logger, orch *usecase.Orchestrator, exporter *usecase.Exporter) *DashboardHandler {
	return &DashboardHandler{logger: logger, orch: orch, exporter: exporter}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/tickers", h.Tickers)
	g.POST("/select", h.Select)
	g.POST("/refresh", h.Refresh)
	g.GET("/panels", h.Panels)
	g.GET("/panels/:kind", h.Panel)
	g.GET("/history", h.History)
	g.GET("/alerts", h.Alerts)
	g.POST("/alerts/refresh", h.RefreshAlerts)
	g.GET("/alerts/export.csv", h.ExportCSV)
	g.GET("/alerts/export.md", h.ExportMarkdown)
	g.POST("/alerts/publish", h.PublishAlerts)
	g.GET("/faults", h.Faults)
}

func (h *DashboardHandler) Tickers(c echo.Context) error {
	tickers, ok := h.orch.Tickers(c.Request().Context())
	if !ok {
		tickers = []string{}
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"tickers":   tickers,
		"available": ok,
	})
}

func (h *DashboardHandler) Select(c echo.Context) error {
	req := &models.SelectRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	gen := h.orch.Select(req.Ticker)
	h.logger.Info("ticker selected",
		xlogger.String("ticker", req.Ticker),
		xlogger.Uint64("generation", gen))
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"ticker":     req.Ticker,
		"generation": gen,
	})
}

func (h *DashboardHandler) Refresh(c echo.Context) error {
	gen, ok := h.orch.Refresh()
	if !ok {
		return xhttp.BadRequestResponse(c, xhttp.BadRequestError("no ticker selected"))
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"ticker":     h.orch.Selection().Ticker,
		"generation": gen,
	})
}

func (h *DashboardHandler) Panels(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.orch.Snapshot())
}

func (h *DashboardHandler) Panel(c echo.Context) error {
	kind := models.PanelKind(c.Param("kind"))
	u, ok := h.orch.Panel(kind)
	if !ok {
		return xhttp.NotFoundResponse(c, xhttp.NotFoundErrorf("unknown panel kind %q", string(kind)))
	}
	return xhttp.SuccessResponse(c, u)
}

func (h *DashboardHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	snap, ok := h.orch.History(c.Request().Context(), req.Ticker, req.Period, req.Interval)
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"available": ok,
		"history":   snap,
	})
}

func (h *DashboardHandler) Alerts(c echo.Context) error {
	u, _ := h.orch.Panel(models.PanelAlerts)
	return xhttp.SuccessResponse(c, u)
}

func (h *DashboardHandler) RefreshAlerts(c echo.Context) error {
	req := &models.AlertsRangeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	dr := models.DateRange{Start: req.StartDate, End: req.EndDate}
	gen := h.orch.RefreshAlerts(dr)
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"range":      dr,
		"generation": gen,
	})
}

func (h *DashboardHandler) ExportCSV(c echo.Context) error {
	name, body := h.exporter.CSV()
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(body))
}

func (h *DashboardHandler) ExportMarkdown(c echo.Context) error {
	name, body := h.exporter.Markdown()
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, "text/markdown", []byte(body))
}

func (h *DashboardHandler) PublishAlerts(c echo.Context) error {
	if err := h.exporter.Publish(c.Request().Context()); err != nil {
		if errors.Is(err, usecase.ErrNoSink) {
			return xhttp.BadRequestResponse(c, xhttp.BadRequestError("alert sink disabled"))
		}
		h.logger.Error("publish alerts failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"published": len(h.orch.AlertRecords()),
	})
}

func (h *DashboardHandler) Faults(c echo.Context) error {
	faults := h.logger.FaultLog()
	if faults == nil {
		return xhttp.SuccessResponse(c, []interface{}{})
	}
	return xhttp.SuccessResponse(c, faults.Recent())
}
