package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/lsbmorph-backend/internal/data/repos"
	types "github.com/yungbote/lsbmorph-backend/internal/domain"
	"github.com/yungbote/lsbmorph-backend/internal/domain/labels"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/platform/errs"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
	"github.com/yungbote/lsbmorph-backend/internal/services"
)

// ClassificationColumns is the exchange layout for classification results.
var ClassificationColumns = []string{
	"ID", "Class", "Morphology", "Comments", "Sky_Bkg",
	"Date_of_classification", "AwesomeFlag", "ValidRedshift",
}

// DateLayout is the Date_of_classification format (minute precision).
const DateLayout = "2006/01/02-15:04"

type ClassificationResult struct {
	UserID   uint
	Inserted int
	Updated  int
	Skipped  int
}

type ClassificationExchange struct {
	db              *gorm.DB
	log             *logger.Logger
	users           repos.UserRepo
	classifications repos.ClassificationRepo
	now             func() time.Time
}

func NewClassificationExchange(db *gorm.DB, log *logger.Logger, users repos.UserRepo, classifications repos.ClassificationRepo) *ClassificationExchange {
	return &ClassificationExchange{
		db:              db,
		log:             log.With("service", "ClassificationExchange"),
		users:           users,
		classifications: classifications,
		now:             time.Now,
	}
}

// resolveUser returns userID when set, else the earliest user.
func (ce *ClassificationExchange) resolveUser(dbc dbctx.Context, userID uint) (uint, error) {
	if userID != 0 {
		u, err := ce.users.GetByID(dbc, userID)
		if err != nil {
			return 0, fmt.Errorf("load user: %w", err)
		}
		if u == nil {
			return 0, fmt.Errorf("%w: user %d", errs.ErrNotFound, userID)
		}
		return u.ID, nil
	}
	u, err := ce.users.First(dbc)
	if err != nil {
		return 0, fmt.Errorf("load first user: %w", err)
	}
	if u == nil {
		return 0, fmt.Errorf("%w: no users; log in once or pass a user id", errs.ErrNotFound)
	}
	return u.ID, nil
}

// Export writes the user's classifications ordered by galaxy ID.
func (ce *ClassificationExchange) Export(dbc dbctx.Context, userID uint, w io.Writer) (int, error) {
	uid, err := ce.resolveUser(dbc, userID)
	if err != nil {
		return 0, err
	}
	rows, err := ce.classifications.ListByUser(dbc, uid)
	if err != nil {
		return 0, fmt.Errorf("list classifications: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ClassificationColumns); err != nil {
		return 0, err
	}
	for _, c := range rows {
		sky := c.SkyBkg
		if sky == "" {
			sky = labels.SkyBkgMasked
		}
		date := ""
		if !c.DateClassified.IsZero() {
			date = c.DateClassified.UTC().Format(DateLayout)
		}
		record := []string{
			c.GalaxyID,
			strconv.Itoa(c.LSBClass),
			strconv.Itoa(c.Morphology),
			c.Comments,
			sky,
			date,
			boolCell(c.AwesomeFlag),
			boolCell(c.ValidRedshift),
		}
		if err := cw.Write(record); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}
	ce.log.Info("classifications exported", "user_id", uid, "rows", len(rows))
	return len(rows), nil
}

// Import upserts rows for one user. Existing (user, galaxy) rows are left
// alone unless overwrite is set.
func (ce *ClassificationExchange) Import(dbc dbctx.Context, r io.Reader, userID uint, overwrite bool) (ClassificationResult, error) {
	t, err := readTable(r, "ID", "Class", "Morphology")
	if err != nil {
		return ClassificationResult{}, err
	}

	var res ClassificationResult
	err = services.WithTx(dbc, ce.db, func(dbc dbctx.Context) error {
		uid, err := ce.resolveUser(dbc, userID)
		if err != nil {
			return err
		}
		res.UserID = uid
		for i, row := range t.rows {
			line := i + 1
			galaxyID := t.get(row, "ID")
			if galaxyID == "" {
				return rowError(line, "ID", fmt.Errorf("empty"))
			}
			existing, err := ce.classifications.GetByUserAndGalaxy(dbc, uid, galaxyID)
			if err != nil {
				return fmt.Errorf("load classification: %w", err)
			}
			if existing != nil && !overwrite {
				ce.log.Debug("classification exists, skipping", "galaxy_id", galaxyID)
				res.Skipped++
				continue
			}
			target := existing
			if target == nil {
				target = &types.Classification{UserID: uid, GalaxyID: galaxyID}
			}
			if err := ce.fill(t, row, line, target); err != nil {
				return err
			}
			if existing == nil {
				if err := ce.classifications.Create(dbc, target); err != nil {
					return fmt.Errorf("create classification: %w", err)
				}
				res.Inserted++
			} else {
				if err := ce.classifications.Save(dbc, target); err != nil {
					return fmt.Errorf("update classification: %w", err)
				}
				res.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return ClassificationResult{}, err
	}
	ce.log.Info("classifications imported",
		"user_id", res.UserID, "inserted", res.Inserted, "updated", res.Updated, "skipped", res.Skipped)
	return res, nil
}

func (ce *ClassificationExchange) fill(t *table, row []string, line int, c *types.Classification) error {
	lsb, err := strconv.Atoi(t.get(row, "Class"))
	if err != nil {
		return rowError(line, "Class", err)
	}
	if !labels.LSBClass(lsb).Valid() {
		return rowError(line, "Class", fmt.Errorf("unknown class %d", lsb))
	}
	morph, err := strconv.Atoi(t.get(row, "Morphology"))
	if err != nil {
		return rowError(line, "Morphology", err)
	}
	if !labels.Morphology(morph).Valid() {
		return rowError(line, "Morphology", fmt.Errorf("unknown morphology %d", morph))
	}
	c.LSBClass = lsb
	c.Morphology = morph
	c.Comments = t.get(row, "Comments")
	c.SkyBkg = t.get(row, "Sky_Bkg")

	c.DateClassified = ce.now().UTC()
	if raw := t.get(row, "Date_of_classification"); raw != "" {
		d, err := time.Parse(DateLayout, raw)
		if err != nil {
			return rowError(line, "Date_of_classification", err)
		}
		c.DateClassified = d
	}
	if c.AwesomeFlag, err = parseBool(t.get(row, "AwesomeFlag")); err != nil {
		return rowError(line, "AwesomeFlag", err)
	}
	if c.ValidRedshift, err = parseBool(t.get(row, "ValidRedshift")); err != nil {
		return rowError(line, "ValidRedshift", err)
	}
	return nil
}
