// Package slides owns the per-request slide asset index and the resolution of
// script slide references to concrete image files.
package slides

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"slidecast/types"
)

// Index is the ordered slide set for one generation request.
//
// Order is a hard contract: positional resolution maps segment i to the i-th
// asset, so the index preserves insertion order exactly as uploaded (or as
// rasterized page order) and never re-sorts.
type Index struct {
	assets []types.SlideAsset
	byID   map[string]int
}

// NewIndex builds an index from an already-ordered asset list.
func NewIndex(assets []types.SlideAsset) *Index {
	idx := &Index{byID: make(map[string]int, len(assets))}
	for _, a := range assets {
		idx.add(a)
	}
	return idx
}

func (idx *Index) add(a types.SlideAsset) {
	idx.byID[a.Identifier] = len(idx.assets)
	idx.assets = append(idx.assets, a)
}

// Register stores an uploaded image at the end of the index and returns the
// stored asset. The identifier is the original filename; the stored file gets
// a sequence-number prefix so lexical order on disk matches upload order, the
// contract positional resolution depends on.
func (idx *Index) Register(r io.Reader, originalName, destDir string) (types.SlideAsset, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return types.SlideAsset{}, fmt.Errorf("failed to create slide directory: %w", err)
	}

	name := fmt.Sprintf("%03d_%s", idx.Len()+1, filepath.Base(originalName))
	dest := filepath.Join(destDir, name)
	out, err := os.Create(dest)
	if err != nil {
		return types.SlideAsset{}, fmt.Errorf("failed to store slide %s: %w", originalName, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return types.SlideAsset{}, fmt.Errorf("failed to store slide %s: %w", originalName, err)
	}
	if err := out.Close(); err != nil {
		return types.SlideAsset{}, err
	}

	asset := types.SlideAsset{Identifier: filepath.Base(originalName), Path: dest}
	if w, h, err := imageSize(dest); err == nil {
		asset.Width, asset.Height = w, h
	}
	idx.add(asset)
	return asset, nil
}

// Assets returns the assets in upload order.
func (idx *Index) Assets() []types.SlideAsset { return idx.assets }

// Len returns the number of slides.
func (idx *Index) Len() int { return len(idx.assets) }

// Lookup finds an asset by identifier.
func (idx *Index) Lookup(identifier string) (types.SlideAsset, bool) {
	i, ok := idx.byID[identifier]
	if !ok {
		return types.SlideAsset{}, false
	}
	return idx.assets[i], true
}

// At returns the i-th asset in upload order.
func (idx *Index) At(i int) types.SlideAsset { return idx.assets[i] }

// FromDir builds an index from the image files in a directory. Files are
// taken in lexical name order, which is the documented ordering contract for
// directory-based slide sets.
func FromDir(dir string) (*Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read slide directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no slide images found in %s", dir)
	}
	sort.Strings(names)

	idx := &Index{byID: make(map[string]int, len(names))}
	for _, name := range names {
		asset := types.SlideAsset{Identifier: name, Path: filepath.Join(dir, name)}
		if w, h, err := imageSize(asset.Path); err == nil {
			asset.Width, asset.Height = w, h
		}
		idx.add(asset)
	}
	return idx, nil
}

func imageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
