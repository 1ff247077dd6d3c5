package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/clm6/transformer-diagnostic-ai/internal/model"
	"github.com/clm6/transformer-diagnostic-ai/internal/report"
)

const reportSuffix = "_analysis.json"

// FSStore keeps one pretty-printed JSON file per equipment under a single
// directory. Writes go through a temp file and rename so a crash mid-write
// never leaves a truncated report behind.
type FSStore struct {
	dir string
}

// NewFS creates the reports directory if needed and returns an FSStore.
func NewFS(dir string) (*FSStore, error) {
	if dir == "" {
		dir = "results"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "store: create reports dir %s", dir)
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) path(equipmentName string) string {
	return filepath.Join(s.dir, report.SanitizeName(equipmentName)+reportSuffix)
}

func (s *FSStore) Save(_ context.Context, r *model.AnalysisReport) error {
	if r.EquipmentName == "" {
		return eris.New("store: report has no equipment name")
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return eris.Wrap(err, "store: marshal report")
	}

	tmp, err := os.CreateTemp(s.dir, ".report-*.tmp")
	if err != nil {
		return eris.Wrap(err, "store: create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return eris.Wrap(err, "store: write report")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return eris.Wrap(err, "store: close temp file")
	}

	if err := os.Rename(tmpName, s.path(r.EquipmentName)); err != nil {
		os.Remove(tmpName)
		return eris.Wrapf(err, "store: rename report for %s", r.EquipmentName)
	}
	return nil
}

func (s *FSStore) Get(_ context.Context, equipmentName string) (*model.AnalysisReport, error) {
	data, err := os.ReadFile(s.path(equipmentName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, eris.Wrapf(ErrNotFound, "equipment %s", equipmentName)
		}
		return nil, eris.Wrapf(err, "store: read report for %s", equipmentName)
	}

	var r model.AnalysisReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, eris.Wrapf(err, "store: parse report for %s", equipmentName)
	}
	return &r, nil
}

func (s *FSStore) List(_ context.Context) ([]model.ReportListing, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, eris.Wrapf(err, "store: read reports dir %s", s.dir)
	}

	listings := make([]model.ReportListing, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), reportSuffix) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			zap.L().Warn("store: skipping unreadable report", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}

		var r model.AnalysisReport
		if err := json.Unmarshal(data, &r); err != nil {
			zap.L().Warn("store: skipping corrupt report", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}

		listings = append(listings, model.ReportListing{
			Filename:      entry.Name(),
			EquipmentName: r.EquipmentName,
			AnalysisDate:  r.AnalysisDate,
			HealthScore:   r.AssetHealth.OverallScore,
			RiskLevel:     r.RiskAssessment.RiskLevel,
		})
	}

	sort.Slice(listings, func(i, j int) bool {
		return listings[i].EquipmentName < listings[j].EquipmentName
	})
	return listings, nil
}

func (s *FSStore) Delete(_ context.Context, equipmentName string) (int, error) {
	err := os.Remove(s.path(equipmentName))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, eris.Wrapf(err, "store: delete report for %s", equipmentName)
	}
	return 1, nil
}

func (s *FSStore) DeleteAll(_ context.Context) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, eris.Wrapf(err, "store: read reports dir %s", s.dir)
	}

	var removed int
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), reportSuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return removed, eris.Wrapf(err, "store: delete %s", entry.Name())
		}
		removed++
	}
	return removed, nil
}

func (s *FSStore) Close() error { return nil }
