package api

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"slidecast/slides"
)

// handleUploadPDF stages a slide deck ahead of generation. The response
// carries the video ID to pass to the generate endpoint.
func (s *Server) handleUploadPDF(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a file part is required"})
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF files are accepted"})
		return
	}

	videoID := c.PostForm("video_id")
	if videoID == "" {
		videoID = uuid.NewString()
	}

	path, err := s.savePDF(file, videoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	if s.uploads == nil {
		s.uploads = make(map[string]*uploadedAssets)
	}
	if s.uploads[videoID] == nil {
		s.uploads[videoID] = &uploadedAssets{}
	}
	s.uploads[videoID].PDFPath = path
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"video_id": videoID,
		"filename": file.Filename,
	})
}

// handleUploadSlide stages a single slide image. Repeated calls with the same
// video_id accumulate an ordered set; the registry prefixes stored names with
// an upload sequence number, so the order slides arrive in is the order the
// resolver sees at generation.
func (s *Server) handleUploadSlide(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a file part is required"})
		return
	}
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".png", ".jpg", ".jpeg":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PNG and JPEG images are accepted"})
		return
	}

	videoID := c.PostForm("video_id")
	if videoID == "" {
		videoID = uuid.NewString()
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	dir := filepath.Join(s.UploadDir, videoID, "slides")

	s.mu.Lock()
	if s.uploads == nil {
		s.uploads = make(map[string]*uploadedAssets)
	}
	staged := s.uploads[videoID]
	if staged == nil {
		staged = &uploadedAssets{Slides: slides.NewIndex(nil)}
		s.uploads[videoID] = staged
	}
	if staged.Slides == nil {
		staged.Slides = slides.NewIndex(nil)
	}
	asset, err := staged.Slides.Register(src, file.Filename, dir)
	if err == nil {
		staged.SlideDir = dir
	}
	count := staged.Slides.Len()
	s.mu.Unlock()

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"video_id":    videoID,
		"filename":    asset.Identifier,
		"slide_count": count,
	})
}

// savePDF writes an uploaded PDF under the upload directory keyed by video ID.
func (s *Server) savePDF(file *multipart.FileHeader, videoID string) (string, error) {
	dir := filepath.Join(s.UploadDir, videoID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	dest := filepath.Join(dir, "deck.pdf")
	if err := saveMultipart(file, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func saveMultipart(file *multipart.FileHeader, dest string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(src); err != nil {
		return fmt.Errorf("failed to store upload: %w", err)
	}
	return nil
}
