package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"slidecast/frame"
	"slidecast/jobs"
	"slidecast/script"
	"slidecast/slides"
	"slidecast/types"
)

// handleGenerateVideo accepts a multipart request carrying the script and
// slide source, queues generation, and answers with the video ID immediately.
//
// The script comes from either a "script" file part or a "script_text" form
// field. Slides come from a "pdf" file part or from assets previously staged
// via the upload endpoints under the given "video_id".
func (s *Server) handleGenerateVideo(c *gin.Context) {
	scriptText, err := s.readScript(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if scriptText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a script file or script_text field is required"})
		return
	}

	videoID := c.PostForm("video_id")
	if videoID == "" {
		videoID = uuid.NewString()
	}

	req := types.GenerateRequest{
		VideoID:          videoID,
		ScriptText:       scriptText,
		IncludeSubtitles: c.PostForm("include_subtitles") == "true",
		Quality:          types.QualityProfile(c.PostForm("quality")),
		Subtitle:         subtitleFromForm(c),
	}
	if _, _, err := req.Quality.Dimensions(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if pdf, err := c.FormFile("pdf"); err == nil {
		path, err := s.savePDF(pdf, videoID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		req.PDFPath = path
	} else if staged := s.stagedAssets(videoID); staged != nil {
		req.PDFPath = staged.PDFPath
		req.SlideDir = staged.SlideDir
	}
	if req.PDFPath == "" && req.SlideDir == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no slides: attach a pdf or upload assets for this video_id first"})
		return
	}

	s.setJob(c.Request.Context(), jobs.Record{VideoID: videoID, Status: jobs.StatusPending})
	go s.runGeneration(req)

	log.Printf("Queued generation %s", videoID)
	c.JSON(http.StatusAccepted, gin.H{
		"video_id": videoID,
		"status":   jobs.StatusPending,
	})
}

// handleParseScript validates a script without generating anything, returning
// the segment breakdown a generation run would use.
func (s *Server) handleParseScript(c *gin.Context) {
	scriptText, err := s.readScript(c)
	if err != nil || scriptText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a script file or script_text field is required"})
		return
	}

	segments, err := script.Parse(scriptText)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, len(segments))
	for i, seg := range segments {
		entry := gin.H{
			"index":     seg.Index,
			"narration": seg.NarrationText,
		}
		if seg.HasRequested {
			entry["requested_seconds"] = seg.RequestedSeconds
		}
		if seg.SlideRef != "" {
			entry["slide_ref"] = seg.SlideRef
		}
		out[i] = entry
	}
	c.JSON(http.StatusOK, gin.H{"segments": out, "count": len(out)})
}

// readScript pulls the script from the "script" file part or the
// "script_text" form field.
func (s *Server) readScript(c *gin.Context) (string, error) {
	if file, err := c.FormFile("script"); err == nil {
		f, err := file.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return c.PostForm("script_text"), nil
}

// subtitleFromForm builds an override config from form fields, or nil when
// none are present so defaults apply.
func subtitleFromForm(c *gin.Context) *types.SubtitleConfig {
	position := c.PostForm("subtitle_position")
	fontSize := c.PostForm("subtitle_font_size")
	color := c.PostForm("subtitle_color")
	background := c.PostForm("subtitle_background")
	opacity := c.PostForm("subtitle_background_opacity")
	if position == "" && fontSize == "" && color == "" && background == "" && opacity == "" {
		return nil
	}

	cfg := types.DefaultSubtitleConfig()
	if position != "" {
		cfg.Position = position
	}
	if n, err := strconv.Atoi(fontSize); err == nil && n > 0 {
		cfg.FontSize = n
	}
	if color != "" {
		cfg.TextColor = color
	}
	if background != "" {
		cfg.BackgroundEnabled = background == "true"
	}
	if f, err := strconv.ParseFloat(opacity, 64); err == nil && f >= 0 && f <= 1 {
		cfg.BackgroundOpacity = f
	}
	return &cfg
}

func (s *Server) stagedAssets(videoID string) *uploadedAssets {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploads[videoID]
}

// statusFor maps pipeline errors to HTTP statuses: script and slide problems
// are the caller's input, everything else is ours.
func statusFor(err error) int {
	var malformed *script.MalformedScriptError
	var empty *script.EmptySegmentError
	var unknown *slides.UnknownSlideReferenceError
	var short *slides.InsufficientSlidesError
	var blank *frame.BlankImageError
	switch {
	case errors.As(err, &malformed), errors.As(err, &empty),
		errors.As(err, &unknown), errors.As(err, &short),
		errors.As(err, &blank):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
