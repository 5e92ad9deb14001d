package slides

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"slidecast/types"
)

// Rasterizer converts a PDF into one image per page, in page order. The heavy
// lifting is delegated to poppler's pdftoppm; this adapter only shapes its
// output into an asset index.
type Rasterizer struct {
	// DPI controls render density. 75 keeps rasterization fast while staying
	// readable at 720p.
	DPI int
}

// Rasterize renders every page of the PDF at path into destDir as
// slide_001.png, slide_002.png, ... and returns the resulting index.
func (r *Rasterizer) Rasterize(ctx context.Context, pdfPath, destDir string) (*Index, error) {
	dpi := r.DPI
	if dpi <= 0 {
		dpi = 75
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create slide directory: %w", err)
	}

	prefix := filepath.Join(destDir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-r", fmt.Sprint(dpi),
		pdfPath,
		prefix,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdf rasterization failed: %v: %s", err, stderr.String())
	}

	pages, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdf produced no pages: %s", pdfPath)
	}
	// pdftoppm zero-pads page numbers, so lexical order is page order.
	sort.Strings(pages)

	idx := &Index{byID: make(map[string]int, len(pages))}
	for i, page := range pages {
		name := fmt.Sprintf("slide_%03d.png", i+1)
		dest := filepath.Join(destDir, name)
		if err := os.Rename(page, dest); err != nil {
			return nil, fmt.Errorf("failed to place page %d: %w", i+1, err)
		}
		asset := types.SlideAsset{Identifier: name, Path: dest}
		if w, h, err := imageSize(dest); err == nil {
			asset.Width, asset.Height = w, h
		}
		idx.add(asset)
	}
	return idx, nil
}
