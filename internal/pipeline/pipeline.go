// Package pipeline wires the full diagnostic flow: PDF text extraction,
// metadata recovery, Claude analysis, report finalization, validation, and
// persistence. Reports that fail analysis or validation are never persisted.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/clm6/transformer-diagnostic-ai/internal/config"
	"github.com/clm6/transformer-diagnostic-ai/internal/extract"
	"github.com/clm6/transformer-diagnostic-ai/internal/model"
	"github.com/clm6/transformer-diagnostic-ai/internal/ocr"
	"github.com/clm6/transformer-diagnostic-ai/internal/report"
	"github.com/clm6/transformer-diagnostic-ai/internal/store"
)

// ErrInput marks a rejected input (wrong file type, empty text) before any
// analysis work happens.
var ErrInput = eris.New("pipeline: invalid input")

// ReportGenerator produces a structured report from document text.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, text, equipmentName, documentDate string) (*model.AnalysisReport, error)
}

// Pipeline runs one document end to end and fans out over directories.
type Pipeline struct {
	ocr       ocr.Extractor
	extractor *extract.Extractor
	analyzer  ReportGenerator
	assembler *report.Assembler
	store     store.ReportStore

	concurrency int
	ratePerSec  float64
}

// New assembles a Pipeline. Batch settings bound directory analysis; a zero
// concurrency falls back to serial processing.
func New(o ocr.Extractor, ex *extract.Extractor, an ReportGenerator, as *report.Assembler, st store.ReportStore, batch config.BatchConfig) *Pipeline {
	return &Pipeline{
		ocr:         o,
		extractor:   ex,
		analyzer:    an,
		assembler:   as,
		store:       st,
		concurrency: batch.Concurrency,
		ratePerSec:  batch.RatePerSec,
	}
}

// AnalyzeText runs the analysis flow over already-extracted text and persists
// the finalized report. originalFilename and inputType feed the provenance
// block; pass fileSize 0 for pasted text.
func (p *Pipeline) AnalyzeText(ctx context.Context, text, originalFilename, inputType string, fileSize int64) (*model.AnalysisReport, error) {
	return p.analyze(ctx, text, "", originalFilename, inputType, fileSize)
}

// AnalyzeNamedText is AnalyzeText with a caller-supplied equipment name that
// overrides pattern-based derivation. Used for direct text submissions where
// the caller already knows the unit.
func (p *Pipeline) AnalyzeNamedText(ctx context.Context, text, equipmentName string) (*model.AnalysisReport, error) {
	if strings.TrimSpace(equipmentName) == "" {
		return nil, eris.Wrap(ErrInput, "equipment_name is required")
	}
	return p.analyze(ctx, text, equipmentName, "", "text", 0)
}

func (p *Pipeline) analyze(ctx context.Context, text, nameOverride, originalFilename, inputType string, fileSize int64) (*model.AnalysisReport, error) {
	if strings.TrimSpace(text) == "" {
		return nil, eris.Wrap(ErrInput, "document text is empty")
	}

	equipmentName := nameOverride
	if equipmentName == "" {
		equipmentName = p.extractor.EquipmentName(text)
	}
	documentDate := p.extractor.DocumentDate(text)
	ids := p.extractor.Identifiers(text)

	start := time.Now()
	r, err := p.analyzer.GenerateReport(ctx, text, equipmentName, documentDate)
	if err != nil {
		return nil, err
	}

	p.assembler.Finalize(r, equipmentName, documentDate, ids)
	p.assembler.AttachFileInfo(r, originalFilename, inputType, fileSize, len(text))

	if err := report.Validate(r); err != nil {
		return nil, err
	}

	if err := p.store.Save(ctx, r); err != nil {
		return nil, eris.Wrapf(err, "pipeline: persist report for %s", r.EquipmentName)
	}

	zap.L().Info("analysis complete",
		zap.String("equipment", r.EquipmentName),
		zap.String("risk_level", string(r.RiskAssessment.RiskLevel)),
		zap.Float64("health_index", r.AssetHealth.HealthIndexIEEE),
		zap.Duration("elapsed", time.Since(start)),
	)
	return r, nil
}

// AnalyzeFile extracts text from one PDF and analyzes it. originalName names
// the document in provenance when the on-disk path is a spool file; pass ""
// to use the path's basename.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path, originalName string) (*model.AnalysisReport, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, eris.Wrapf(ErrInput, "%s is not a PDF", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, eris.Wrapf(ErrInput, "stat %s: %v", path, err)
	}

	text, err := p.ocr.ExtractText(ctx, path)
	if err != nil {
		return nil, err
	}

	if originalName == "" {
		originalName = filepath.Base(path)
	}
	return p.AnalyzeText(ctx, text, originalName, "pdf", info.Size())
}

// FileResult records the outcome for one file of a batch.
type FileResult struct {
	Path          string `json:"path"`
	EquipmentName string `json:"equipment_name,omitempty"`
	Err           string `json:"error,omitempty"`
}

// BatchResult summarizes a directory run.
type BatchResult struct {
	Succeeded []FileResult `json:"succeeded"`
	Failed    []FileResult `json:"failed"`
}

// AnalyzeDir analyzes every PDF in a directory. Files are processed
// concurrently under the configured limit and rate; one failing file never
// aborts the rest. Returns an error only when the directory itself is
// unreadable or contains no PDFs.
func (p *Pipeline) AnalyzeDir(ctx context.Context, dir string) (*BatchResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(ErrInput, "read dir %s: %v", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, eris.Wrapf(ErrInput, "no PDF files in %s", dir)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if p.ratePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(p.ratePerSec), 1)
	}

	g, ctx := errgroup.WithContext(ctx)
	if p.concurrency > 0 {
		g.SetLimit(p.concurrency)
	} else {
		g.SetLimit(1)
	}

	var mu sync.Mutex
	result := &BatchResult{
		Succeeded: []FileResult{},
		Failed:    []FileResult{},
	}

	for _, path := range paths {
		g.Go(func() error {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}

			r, err := p.AnalyzeFile(ctx, path, "")

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				zap.L().Warn("batch: file failed", zap.String("path", path), zap.Error(err))
				result.Failed = append(result.Failed, FileResult{Path: path, Err: err.Error()})
				return nil
			}
			result.Succeeded = append(result.Succeeded, FileResult{Path: path, EquipmentName: r.EquipmentName})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, eris.Wrap(err, "pipeline: batch interrupted")
	}

	sort.Slice(result.Succeeded, func(i, j int) bool { return result.Succeeded[i].Path < result.Succeeded[j].Path })
	sort.Slice(result.Failed, func(i, j int) bool { return result.Failed[i].Path < result.Failed[j].Path })

	zap.L().Info("batch complete",
		zap.String("dir", dir),
		zap.Int("succeeded", len(result.Succeeded)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}
