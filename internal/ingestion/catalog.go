package ingestion

import (
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/yungbote/lsbmorph-backend/internal/data/repos"
	types "github.com/yungbote/lsbmorph-backend/internal/domain"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/platform/errs"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
	"github.com/yungbote/lsbmorph-backend/internal/services"
)

// CatalogColumns is the catalog CSV layout. Only ID, ra and dec are required.
var CatalogColumns = []string{"ID", "ra", "dec", "X", "Y", "RedshiftX", "RedshiftY", "r_r", "q", "PA", "Nucleus"}

type CatalogResult struct {
	Rows     int
	Inserted int
	Existing int
}

type CatalogImporter struct {
	db       *gorm.DB
	log      *logger.Logger
	galaxies repos.GalaxyRepo
	progress services.ProgressService
}

func NewCatalogImporter(db *gorm.DB, log *logger.Logger, galaxies repos.GalaxyRepo, progress services.ProgressService) *CatalogImporter {
	return &CatalogImporter{
		db:       db,
		log:      log.With("service", "CatalogImporter"),
		galaxies: galaxies,
		progress: progress,
	}
}

// Import reads a catalog CSV whose row order defines the browse chain: each
// row links to the rows before and after it. Galaxies already stored are
// left untouched. Everything is written in one transaction.
func (ci *CatalogImporter) Import(dbc dbctx.Context, r io.Reader) (CatalogResult, error) {
	t, err := readTable(r, "ID", "ra", "dec")
	if err != nil {
		return CatalogResult{}, err
	}

	parsed := make([]*types.Galaxy, 0, len(t.rows))
	seen := make(map[string]int, len(t.rows))
	for i, row := range t.rows {
		g, err := parseGalaxy(t, row, i+1)
		if err != nil {
			return CatalogResult{}, err
		}
		if prev, dup := seen[g.ID]; dup {
			return CatalogResult{}, fmt.Errorf("%w: row %d repeats ID %s from row %d", errs.ErrInvalidArgument, i+1, g.ID, prev)
		}
		seen[g.ID] = i + 1
		parsed = append(parsed, g)
	}
	for i, g := range parsed {
		if i > 0 {
			prev := parsed[i-1].ID
			g.PreviousID = &prev
		}
		if i < len(parsed)-1 {
			next := parsed[i+1].ID
			g.NextID = &next
		}
	}

	res := CatalogResult{Rows: len(parsed)}
	err = services.WithTx(dbc, ci.db, func(dbc dbctx.Context) error {
		ids := make([]string, 0, len(parsed))
		for _, g := range parsed {
			ids = append(ids, g.ID)
		}
		existing := map[string]bool{}
		for _, chunk := range chunks(ids, 500) {
			found, err := ci.galaxies.GetByIDs(dbc, chunk)
			if err != nil {
				return fmt.Errorf("load existing galaxies: %w", err)
			}
			for _, g := range found {
				existing[g.ID] = true
			}
		}
		fresh := make([]*types.Galaxy, 0, len(parsed))
		for _, g := range parsed {
			if existing[g.ID] {
				res.Existing++
				continue
			}
			fresh = append(fresh, g)
		}
		if err := ci.galaxies.Create(dbc, fresh); err != nil {
			return fmt.Errorf("insert galaxies: %w", err)
		}
		res.Inserted = len(fresh)
		return nil
	})
	if err != nil {
		return CatalogResult{}, err
	}

	if ci.progress != nil {
		if err := ci.progress.InvalidateTotal(dbc); err != nil {
			ci.log.Warn("count cache invalidation failed", "error", err)
		}
	}
	ci.log.Info("catalog imported", "rows", res.Rows, "inserted", res.Inserted, "existing", res.Existing)
	return res, nil
}

func parseGalaxy(t *table, row []string, line int) (*types.Galaxy, error) {
	g := &types.Galaxy{ID: t.get(row, "ID")}
	if g.ID == "" {
		return nil, rowError(line, "ID", fmt.Errorf("empty"))
	}
	var err error
	if g.RA, err = parseFloat(t.get(row, "ra")); err != nil {
		return nil, rowError(line, "ra", err)
	}
	if g.Dec, err = parseFloat(t.get(row, "dec")); err != nil {
		return nil, rowError(line, "dec", err)
	}
	floats := []struct {
		col string
		dst **float64
	}{
		{"X", &g.X},
		{"Y", &g.Y},
		{"RedshiftX", &g.RedshiftX},
		{"RedshiftY", &g.RedshiftY},
		{"r_r", &g.RadiusR},
		{"q", &g.AxisRatio},
		{"PA", &g.PositionAngle},
	}
	for _, f := range floats {
		if *f.dst, err = optionalFloat(t.get(row, f.col)); err != nil {
			return nil, rowError(line, f.col, err)
		}
	}
	if g.Nucleus, err = optionalBool(t.get(row, "Nucleus")); err != nil {
		return nil, rowError(line, "Nucleus", err)
	}
	return g, nil
}

func chunks(ids []string, size int) [][]string {
	var out [][]string
	for len(ids) > size {
		out = append(out, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}
