// Package export renders a planned itinerary into shareable artifacts:
// a markdown document, a GeoJSON route map, and an XLSX workbook, with
// optional publication to Notion and an FTP drop.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wayfarer-labs/planner-cli/internal/model"
)

// Stats summarizes the funnel counts shown in the document header.
type Stats struct {
	TotalScraped  int `json:"total_scraped"`
	TotalVerified int `json:"total_verified"`
	TotalIncluded int `json:"total_included"`
}

// Itinerary is the fully planned trip handed to the exporters.
type Itinerary struct {
	SessionID   string          `json:"session_id"`
	Destination string          `json:"destination"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Personas    []model.Persona `json:"personas"`
	Profile     string          `json:"profile,omitempty"`
	Stats       Stats           `json:"stats"`
	Days        []model.DayPlan `json:"days"`
}

// Artifacts lists the files produced by a successful export.
type Artifacts struct {
	DocumentPath string `json:"document_path"`
	MapPath      string `json:"map_path"`
	WorkbookPath string `json:"workbook_path"`
}

// Exporter writes itinerary artifacts under a single outputs directory.
type Exporter struct {
	outputsDir string
}

// New creates an Exporter rooted at dir, creating it if needed.
func New(dir string) (*Exporter, error) {
	if dir == "" {
		dir = "outputs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrap(err, "export: create outputs dir")
	}
	return &Exporter{outputsDir: dir}, nil
}

// ExportAll renders the document, map, and workbook concurrently. The three
// artifacts are independent, so one failure does not leave partial state in
// the others.
func (e *Exporter) ExportAll(ctx context.Context, it *Itinerary) (*Artifacts, error) {
	art := &Artifacts{
		DocumentPath: e.path(it, "itinerary", "md"),
		MapPath:      e.path(it, "map", "geojson"),
		WorkbookPath: e.path(it, "itinerary", "xlsx"),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.WriteDocument(ctx, it, art.DocumentPath)
	})
	g.Go(func() error {
		return e.WriteMap(ctx, it, art.MapPath)
	})
	g.Go(func() error {
		return e.WriteWorkbook(ctx, it, art.WorkbookPath)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("export: artifacts written",
		zap.String("session_id", it.SessionID),
		zap.String("document", art.DocumentPath),
		zap.String("map", art.MapPath),
		zap.String("workbook", art.WorkbookPath),
	)
	return art, nil
}

// path builds outputs/<kind>_<short session id>.<ext>.
func (e *Exporter) path(it *Itinerary, kind, ext string) string {
	sid := it.SessionID
	if sid == "" {
		sid = "unknown"
	}
	if len(sid) > 8 {
		sid = sid[:8]
	}
	return filepath.Join(e.outputsDir, fmt.Sprintf("%s_%s.%s", kind, sid, ext))
}
