package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"slidecast/types"
)

// DefaultBatchWorkers bounds concurrent generations in batch mode. Each
// generation already fans out internally, so this stays small.
const DefaultBatchWorkers = 2

// ProcessFromDirectory reads every *.json request file in inputDir and
// generates each video with bounded concurrency. Files are processed in name
// order; one failed request does not stop the rest.
func (g *Generator) ProcessFromDirectory(ctx context.Context, inputDir string, workers int) error {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			files = append(files, filepath.Join(inputDir, e.Name()))
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		log.Printf("No request files found in %s", inputDir)
		return nil
	}
	log.Printf("Processing %d request(s) from %s with %d worker(s)", len(files), inputDir, workers)

	var (
		wg     sync.WaitGroup
		sem    = make(chan struct{}, workers)
		mu     sync.Mutex
		failed int
	)
	for _, path := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := g.processFile(ctx, path); err != nil {
				log.Printf("Request %s failed: %v", filepath.Base(path), err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(path)
	}
	wg.Wait()

	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, len(files))
	}
	log.Printf("All %d requests completed", len(files))
	return nil
}

func (g *Generator) processFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var req types.GenerateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("invalid request file: %w", err)
	}
	if req.ScriptText == "" {
		// A request may point at a script file instead of inlining the text.
		if scriptPath := strings.TrimSuffix(path, ".json") + ".txt"; fileExists(scriptPath) {
			text, err := os.ReadFile(scriptPath)
			if err != nil {
				return err
			}
			req.ScriptText = string(text)
		}
	}

	result, err := g.Generate(ctx, req)
	if err != nil {
		return err
	}
	log.Printf("Request %s produced %s", filepath.Base(path), result.VideoPath)
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
