package frame

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slidecast/types"
)

// writeTestImage writes a PNG with a light gradient so it never reads as blank.
func writeTestImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return path
}

func writeBlankImage(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return path
}

func decodeSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestConditionExactTargetResolution(t *testing.T) {
	dir := t.TempDir()
	c := &Conditioner{Width: 1280, Height: 720}

	cases := []struct {
		name string
		w, h int
	}{
		{"wide source", 1600, 400},
		{"tall source", 400, 1600},
		{"exact aspect", 1920, 1080},
		{"tiny source", 100, 80},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := writeTestImage(t, dir, strings.ReplaceAll(tc.name, " ", "_")+".png", tc.w, tc.h)
			out, _, err := c.Condition(types.SlideAsset{Identifier: tc.name, Path: src}, dir)
			if err != nil {
				t.Fatalf("Condition returned error: %v", err)
			}
			w, h := decodeSize(t, out.Path)
			if w != 1280 || h != 720 {
				t.Errorf("output is %dx%d, want 1280x720", w, h)
			}
		})
	}
}

func TestConditionUpscaleWarning(t *testing.T) {
	dir := t.TempDir()
	c := &Conditioner{Width: 1920, Height: 1080, UpscaleLimit: 2.0}

	src := writeTestImage(t, dir, "small.png", 320, 240)
	_, warnings, err := c.Condition(types.SlideAsset{Identifier: "small.png", Path: src}, dir)
	if err != nil {
		t.Fatalf("Condition returned error: %v", err)
	}

	found := false
	for _, w := range warnings {
		if strings.Contains(w.Message, "upscaled") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected upscale warning, got %v", warnings)
	}
}

func TestConditionLowResolutionWarning(t *testing.T) {
	dir := t.TempDir()
	c := &Conditioner{Width: 1280, Height: 720, UpscaleLimit: 10}

	src := writeTestImage(t, dir, "lowres.png", 640, 480)
	_, warnings, err := c.Condition(types.SlideAsset{Identifier: "lowres.png", Path: src}, dir)
	if err != nil {
		t.Fatalf("Condition returned error: %v", err)
	}
	found := false
	for _, w := range warnings {
		if strings.Contains(w.Message, "low source resolution") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected low resolution warning, got %v", warnings)
	}
}

func TestConditionBlankImage(t *testing.T) {
	dir := t.TempDir()
	c := &Conditioner{Width: 1280, Height: 720}

	src := writeBlankImage(t, dir, "blank.png")
	_, _, err := c.Condition(types.SlideAsset{Identifier: "blank.png", Path: src}, dir)

	var target *BlankImageError
	if !errors.As(err, &target) {
		t.Fatalf("got %v, want BlankImageError", err)
	}
	if target.Asset != "blank.png" {
		t.Errorf("error names %q, want blank.png", target.Asset)
	}
}

func TestConditionEnhanceOffIsPlainResize(t *testing.T) {
	dir := t.TempDir()
	src := writeTestImage(t, dir, "src.png", 1000, 700)
	asset := types.SlideAsset{Identifier: "src.png", Path: src}

	plain := &Conditioner{Width: 1280, Height: 720}
	outA, _, err := plain.Condition(asset, filepath.Join(dir, "a"))
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	outB, _, err := plain.Condition(asset, filepath.Join(dir, "b"))
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}

	a, _ := os.ReadFile(outA.Path)
	b, _ := os.ReadFile(outB.Path)
	if string(a) != string(b) {
		t.Errorf("plain conditioning is not reproducible byte-for-byte")
	}
}

func TestFitScale(t *testing.T) {
	cases := []struct {
		sw, sh, tw, th int
		want           float64
	}{
		{1280, 720, 1280, 720, 1.0},
		{2560, 1440, 1280, 720, 0.5},
		{640, 720, 1280, 720, 1.0},
		{1280, 360, 1280, 720, 1.0},
	}
	for _, c := range cases {
		if got := fitScale(c.sw, c.sh, c.tw, c.th); got != c.want {
			t.Errorf("fitScale(%d,%d,%d,%d) = %v, want %v", c.sw, c.sh, c.tw, c.th, got, c.want)
		}
	}
}
