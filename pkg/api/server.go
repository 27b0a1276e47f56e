// Package api provides the REST API server for smfview
package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/james-see/smfview/pkg/config"
	"github.com/james-see/smfview/pkg/loader"
	"github.com/james-see/smfview/pkg/viewer"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title smfview API
// @version 1.0
// @description API for turning MIDI and SysEx data into display records
// @host localhost:8080
// @BasePath /api/v1

// maxUpload bounds the size of uploaded files
var maxUpload int64 = 16 << 20

// multipartOverhead allows for form boundaries and part headers around the file
const multipartOverhead = 1 << 20

// EventsResponse is the body returned by POST /api/v1/events
type EventsResponse struct {
	File            string                 `json:"file"`
	Size            string                 `json:"size"`
	Format          loader.Format          `json:"format"`
	Tracks          int                    `json:"tracks"`
	TicksPerQuarter uint16                 `json:"ticksPerQuarter"`
	Count           int                    `json:"count"`
	Events          []viewer.DisplayRecord `json:"events"`
}

// FormatRequest is the body accepted by POST /api/v1/format
type FormatRequest struct {
	Drums       []int             `json:"drums"`
	ChannelBase *int              `json:"channelBase"` // config value when omitted
	Events      []viewer.RawEvent `json:"events" binding:"required"`
}

type server struct {
	cfg *config.Config
}

// NewRouter builds the gin engine with all routes registered
func NewRouter(cfg *config.Config) *gin.Engine {
	s := &server{cfg: cfg}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), corsMiddleware())

	r.GET("/health", healthCheck)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/formats", listFormats)
		v1.POST("/events", s.handleEvents)
		v1.POST("/format", s.handleFormat)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// StartServer starts the API server on the specified port
func StartServer(port int, cfg *config.Config) error {
	return NewRouter(cfg).Run(fmt.Sprintf(":%d", port))
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		}).Info("request")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "smfview",
	})
}

// listFormats godoc
// @Summary List supported formats
// @Description Returns the input formats and file extensions the loader accepts
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/formats [get]
func listFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"formats":    loader.GetSupportedFormats(),
		"extensions": loader.Extensions,
	})
}

// handleEvents godoc
// @Summary Format the events of a file
// @Description Upload a MIDI or SysEx file and receive one display record per event
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "MIDI or SysEx file"
// @Param drums query string false "Comma separated drum channels, 0-15 (default from config)"
// @Param channel_base query int false "0 or 1 (default from config)"
// @Param track query int false "Only this track; all tracks merged by time when omitted"
// @Success 200 {object} EventsResponse
// @Failure 400 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/events [post]
func (s *server) handleEvents(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUpload+multipartOverhead)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			uploadTooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxUpload+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	if int64(len(data)) > maxUpload {
		uploadTooLarge(c)
		return
	}

	drums := s.cfg.Drums()
	if q, ok := c.GetQuery("drums"); ok {
		if drums, err = viewer.ParseChannelSet(q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	formatter, err := s.formatter(c.DefaultQuery("channel_base", strconv.Itoa(s.cfg.ChannelBase)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := loader.Parse(header.Filename, data)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	var records []viewer.DisplayRecord
	if q, ok := c.GetQuery("track"); ok {
		track, err := strconv.Atoi(q)
		if err != nil || track < 0 || track >= f.TrackCount {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("track must be 0-%d", f.TrackCount-1)})
			return
		}
		records = formatter.FormatAll(f.Track(track), drums)
	} else {
		records = formatter.FormatAll(f.Events, drums)
		viewer.SortByTime(records)
	}

	c.JSON(http.StatusOK, EventsResponse{
		File:            f.Name,
		Size:            humanize.Bytes(uint64(f.Size)),
		Format:          f.Format,
		Tracks:          f.TrackCount,
		TicksPerQuarter: f.TicksPerQuarter,
		Count:           len(records),
		Events:          records,
	})
}

// handleFormat godoc
// @Summary Format raw events
// @Description Format events that were already parsed by the caller
// @Tags events
// @Accept json
// @Produce json
// @Param request body FormatRequest true "Events and drum channels"
// @Success 200 {object} []viewer.DisplayRecord
// @Failure 400 {object} map[string]string
// @Router /api/v1/format [post]
func (s *server) handleFormat(c *gin.Context) {
	var req FormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var drums viewer.ChannelSet
	for _, ch := range req.Drums {
		if ch < 0 || ch > 15 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("drum channel %d out of range 0-15", ch)})
			return
		}
		drums |= viewer.NewChannelSet(uint8(ch))
	}

	base := s.cfg.ChannelBase
	if req.ChannelBase != nil {
		base = *req.ChannelBase
	}
	formatter, err := s.formatter(strconv.Itoa(base))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, formatter.FormatAll(req.Events, drums))
}

func uploadTooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{
		"error": fmt.Sprintf("file larger than %s", humanize.IBytes(uint64(maxUpload))),
	})
}

func (s *server) formatter(base string) (*viewer.Formatter, error) {
	n, err := strconv.Atoi(base)
	if err != nil || (n != 0 && n != 1) {
		return nil, fmt.Errorf("channel_base must be 0 or 1, got %q", base)
	}
	opts := append(s.cfg.FormatterOptions(), viewer.WithChannelBase(n))
	return viewer.NewFormatter(opts...), nil
}
