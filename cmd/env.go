package main

import (
	"github.com/rotisserie/eris"

	"github.com/clm6/transformer-diagnostic-ai/internal/analyzer"
	"github.com/clm6/transformer-diagnostic-ai/internal/export"
	"github.com/clm6/transformer-diagnostic-ai/internal/extract"
	"github.com/clm6/transformer-diagnostic-ai/internal/ocr"
	"github.com/clm6/transformer-diagnostic-ai/internal/pipeline"
	"github.com/clm6/transformer-diagnostic-ai/internal/report"
	"github.com/clm6/transformer-diagnostic-ai/internal/store"
	"github.com/clm6/transformer-diagnostic-ai/pkg/anthropic"
)

// env bundles the wired components a command needs.
type env struct {
	Store    store.ReportStore
	Exporter *export.Exporter
	Pipeline *pipeline.Pipeline
}

func (e *env) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initStoreEnv wires the store and exporter only; enough for reports, export
// and summary commands.
func initStoreEnv() (*env, error) {
	st, err := store.New(cfg.Store)
	if err != nil {
		return nil, err
	}

	ex, err := export.NewExporter(cfg.Export)
	if err != nil {
		st.Close()
		return nil, err
	}

	return &env{Store: st, Exporter: ex}, nil
}

// initEnv wires the full analysis pipeline. Requires an API key.
func initEnv() (*env, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("anthropic API key not configured (set TRANSFORMIQ_ANTHROPIC_KEY or anthropic.key in config.yaml)")
	}

	e, err := initStoreEnv()
	if err != nil {
		return nil, err
	}

	ocrExtractor, err := ocr.NewExtractor(cfg.OCR)
	if err != nil {
		e.Close()
		return nil, err
	}

	client := anthropic.NewClient(cfg.Anthropic.Key)
	e.Pipeline = pipeline.New(
		ocrExtractor,
		extract.New(),
		analyzer.New(client, cfg.Anthropic),
		report.NewAssembler(),
		e.Store,
		cfg.Batch,
	)
	return e, nil
}
