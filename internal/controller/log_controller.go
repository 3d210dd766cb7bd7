package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"logcollector/config"
	"logcollector/internal/dto"
	"logcollector/internal/queue"
	"logcollector/internal/service"
	"logcollector/internal/util"
)

const programHeader = "X-Program"

type LogController struct {
	ingestService   service.LogIngestService
	logQueryService service.LogQueryService
	monitor         service.PipelineMonitor
	defaultLines    int
}

func NewLogController(
	cfg *config.Config,
	ingestService service.LogIngestService,
	logQueryService service.LogQueryService,
	monitor service.PipelineMonitor,
) *LogController {
	return &LogController{
		ingestService:   ingestService,
		logQueryService: logQueryService,
		monitor:         monitor,
		defaultLines:    cfg.Tail.DefaultLines,
	}
}

func RegisterLogRoutes(router *gin.Engine, controller *LogController) {
	router.POST("/log", controller.ReceiveLog)
	router.GET("/tail", controller.TailLogs)
	router.GET("/search", controller.SearchLogs)
	router.GET("/logs", controller.ListLogs)
	router.GET("/healthz", controller.Health)
}

// ReceiveLog godoc
// @Summary      Submit a log line
// @Description  Queues the raw request body as one log entry for today's file. Returns as soon as the entry is queued.
// @Tags         logs
// @Accept       plain
// @Produce      json
// @Param        X-Program  header    string  false  "Name of the submitting program (default: unknown)"
// @Param        body       body      string  true   "Raw log text"
// @Success      200        {object}  dto.StatusResponse "Entry queued"
// @Failure      500        {object}  dto.ErrorResponse "Body could not be read or decoded"
// @Failure      503        {object}  dto.ErrorResponse "Queue full or shutting down"
// @Router       /log [post]
func (c *LogController) ReceiveLog(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read log submission body")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if _, err := c.ingestService.Submit(ctx.GetHeader(programHeader), body); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, queue.ErrFull) || errors.Is(err, queue.ErrClosed) {
			status = http.StatusServiceUnavailable
		}
		ctx.JSON(status, dto.ErrorResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, dto.StatusResponse{Status: "queued"})
}

// TailLogs godoc
// @Summary      Tail a daily log file
// @Description  Returns the last N lines of today's file (or of the given day), oldest first. Missing files yield an empty list.
// @Tags         logs
// @Produce      json
// @Param        lines  query     int     false  "Number of lines (default: 50)" minimum(0)
// @Param        date   query     string  false  "Day to read: YYYY-MM-DD, ISO 8601 or epoch milliseconds (default: today)"
// @Success      200    {array}   string
// @Failure      400    {object}  dto.ErrorResponse "Invalid query parameters"
// @Failure      500    {object}  dto.ErrorResponse "Read failure"
// @Router       /tail [get]
func (c *LogController) TailLogs(ctx *gin.Context) {
	n := c.defaultLines
	if raw, ok := ctx.GetQuery("lines"); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "lines must be a non-negative integer"})
			return
		}
		n = parsed
	}
	day, ok := parseDay(ctx)
	if !ok {
		return
	}

	lines, err := c.logQueryService.Tail(ctx.Request.Context(), day, n)
	if err != nil {
		log.Error().Err(err).Msg("Error tailing logs")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, lines)
}

// SearchLogs godoc
// @Summary      Search a daily log file
// @Description  Returns every line of today's file (or of the given day) containing q, ignoring case.
// @Tags         logs
// @Produce      json
// @Param        q     query     string  true   "Substring to look for"
// @Param        date  query     string  false  "Day to read: YYYY-MM-DD, ISO 8601 or epoch milliseconds (default: today)"
// @Success      200   {array}   string
// @Failure      400   {object}  dto.ErrorResponse "Invalid query parameters"
// @Failure      500   {object}  dto.ErrorResponse "Read failure"
// @Router       /search [get]
func (c *LogController) SearchLogs(ctx *gin.Context) {
	query, ok := ctx.GetQuery("q")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "q is required"})
		return
	}
	day, ok := parseDay(ctx)
	if !ok {
		return
	}

	lines, err := c.logQueryService.Search(ctx.Request.Context(), day, query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Error searching logs")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, lines)
}

// ListLogs godoc
// @Summary      List daily log files
// @Description  Returns the stored daily file names in chronological order.
// @Tags         logs
// @Produce      json
// @Success      200  {array}   string
// @Failure      500  {object}  dto.ErrorResponse "Log directory unreadable"
// @Router       /logs [get]
func (c *LogController) ListLogs(ctx *gin.Context) {
	names, err := c.logQueryService.ListLogs(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Error listing log files")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, names)
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /healthz [get]
func (c *LogController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Pipeline: c.monitor.Snapshot()})
}

// parseDay reads the optional date parameter. It writes a 400 response and
// returns false when the value cannot be parsed.
func parseDay(ctx *gin.Context) (time.Time, bool) {
	raw := ctx.Query("date")
	if raw == "" {
		return time.Time{}, true
	}
	day, err := util.ParseTimeFlexible(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return time.Time{}, false
	}
	return day, true
}
