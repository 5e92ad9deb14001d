// Package api exposes the generation pipeline over HTTP. Generation is
// asynchronous: the generate endpoint answers immediately with a video ID and
// callers poll the job endpoint for progress.
package api

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"slidecast/jobs"
	"slidecast/pipeline"
	"slidecast/publish"
	"slidecast/slides"
	"slidecast/storage"
	"slidecast/types"
)

// Server wires the pipeline and its optional collaborators behind HTTP
// handlers.
type Server struct {
	Generator *pipeline.Generator

	// Jobs tracks request status. Nil degrades to fire-and-forget: generation
	// still runs but status polling returns 404.
	Jobs *jobs.Store

	// Uploader mirrors finished videos to S3 when configured.
	Uploader *storage.Uploader

	// Publisher pushes finished videos to YouTube when configured.
	Publisher *publish.Publisher

	// UploadDir receives PDFs and slide images sent ahead of generation.
	UploadDir string

	mu      sync.Mutex
	uploads map[string]*uploadedAssets
}

// uploadedAssets tracks what a caller staged under one video ID before
// requesting generation.
type uploadedAssets struct {
	PDFPath  string
	SlideDir string

	// Slides is the upload-order registry backing SlideDir. Stored names
	// carry a sequence prefix, so reading the directory back at generation
	// reproduces upload order exactly.
	Slides *slides.Index
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.handleHealth)
	r.POST("/api/generate-video", s.handleGenerateVideo)
	r.POST("/api/upload-pdf", s.handleUploadPDF)
	r.POST("/api/upload-slide", s.handleUploadSlide)
	r.POST("/api/parse-script", s.handleParseScript)
	r.GET("/api/jobs/:id", s.handleJobStatus)
	r.GET("/output/:file", s.handleDownload)
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleJobStatus(c *gin.Context) {
	if s.Jobs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job tracking is not configured"})
		return
	}
	rec, err := s.Jobs.Get(c.Request.Context(), c.Param("id"))
	if err == jobs.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// handleDownload serves a finished video by its public name <video-id>.mp4.
func (s *Server) handleDownload(c *gin.Context) {
	name := c.Param("file")
	videoID := strings.TrimSuffix(name, ".mp4")
	if videoID == name || videoID == "" || strings.ContainsAny(videoID, "/\\.") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid video name"})
		return
	}
	c.File(filepath.Join(s.Generator.OutputDir, videoID, "video", "final_video.mp4"))
}

// setJob updates the job record, tolerating a missing store.
func (s *Server) setJob(ctx context.Context, rec jobs.Record) {
	if s.Jobs == nil {
		return
	}
	if err := s.Jobs.Set(ctx, rec); err != nil {
		log.Printf("Failed to update job %s: %v", rec.VideoID, err)
	}
}

// runGeneration executes one request in the background, keeping the job
// record current and mirroring the result to the optional sinks.
func (s *Server) runGeneration(req types.GenerateRequest) {
	ctx := context.Background()
	s.setJob(ctx, jobs.Record{VideoID: req.VideoID, Status: jobs.StatusRunning})

	result, err := s.Generator.Generate(ctx, req)
	if err != nil {
		log.Printf("[%s] Generation failed: %v", req.VideoID, err)
		s.setJob(ctx, jobs.Record{VideoID: req.VideoID, Status: jobs.StatusFailed, Error: err.Error()})
		return
	}

	if s.Uploader != nil {
		if _, err := s.Uploader.UploadVideo(ctx, result.VideoID, result.VideoPath); err != nil {
			log.Printf("[%s] S3 upload failed: %v", result.VideoID, err)
		}
	}
	if s.Publisher != nil {
		if _, err := s.Publisher.Publish(result, "Slide presentation "+result.VideoID); err != nil {
			log.Printf("[%s] YouTube publish failed: %v", result.VideoID, err)
		}
	}

	s.setJob(ctx, jobs.Record{
		VideoID:      result.VideoID,
		Status:       jobs.StatusDone,
		VideoPath:    result.VideoPath,
		VideoURL:     result.VideoURL,
		TotalSeconds: result.TotalSeconds,
	})
}
