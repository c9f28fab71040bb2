package ingestion

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/lsbmorph-backend/internal/data/repos"
	"github.com/yungbote/lsbmorph-backend/internal/data/repos/testutil"
	types "github.com/yungbote/lsbmorph-backend/internal/domain"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/platform/errs"
)

const catalogCSV = `ID,ra,dec,X,Y,RedshiftX,RedshiftY,r_r,q,PA,Nucleus
G1,10.5,-3.25,100,120,,,4.2,0.8,35,0
G2,11.0,-3.00,101,121,55.5,60.1,3.9,0.7,12,1
G3,11.5,-2.75,102,122,nan,nan,5.0,0.9,80,
`

func TestCatalogImportLinksRowOrder(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	set := repos.NewSet(db, log)
	imp := NewCatalogImporter(db, log, set.Galaxies, nil)
	dbc := dbctx.Background()

	res, err := imp.Import(dbc, strings.NewReader(catalogCSV))
	require.NoError(t, err)
	require.Equal(t, CatalogResult{Rows: 3, Inserted: 3}, res)

	gs, err := set.Galaxies.GetByIDs(dbc, []string{"G1", "G2", "G3"})
	require.NoError(t, err)
	require.Len(t, gs, 3)

	g1, g2, g3 := gs[0], gs[1], gs[2]
	require.Nil(t, g1.PreviousID)
	require.Equal(t, "G2", *g1.NextID)
	require.Equal(t, "G1", *g2.PreviousID)
	require.Equal(t, "G3", *g2.NextID)
	require.Equal(t, "G2", *g3.PreviousID)
	require.Nil(t, g3.NextID)

	require.False(t, g1.HasRedshift())
	require.True(t, g2.HasRedshift())
	require.False(t, g3.HasRedshift(), "NaN markers are missing")
	require.Equal(t, 10.5, g1.RA)
	require.NotNil(t, g2.Nucleus)
	require.True(t, *g2.Nucleus)
	require.Nil(t, g3.Nucleus)

	// Re-importing leaves existing rows alone.
	res, err = imp.Import(dbc, strings.NewReader(catalogCSV))
	require.NoError(t, err)
	require.Equal(t, CatalogResult{Rows: 3, Existing: 3}, res)
}

func TestCatalogImportRejectsBadInput(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	set := repos.NewSet(db, log)
	imp := NewCatalogImporter(db, log, set.Galaxies, nil)

	cases := map[string]string{
		"missing column": "ID,ra\nG1,1\n",
		"bad ra":         "ID,ra,dec\nG1,east,1\n",
		"duplicate id":   "ID,ra,dec\nG1,1,1\nG1,2,2\n",
		"empty":          "",
	}
	for name, in := range cases {
		_, err := imp.Import(dbctx.Background(), strings.NewReader(in))
		if !errors.Is(err, errs.ErrInvalidArgument) {
			t.Fatalf("%s: want=ErrInvalidArgument got=%v", name, err)
		}
	}
	n, err := set.Galaxies.Count(dbctx.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func newExchange(t *testing.T) (*ClassificationExchange, repos.Set, *types.User) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	set := repos.NewSet(db, log)
	u := testutil.SeedUser(t, context.Background(), db, "alice")
	testutil.SeedUser(t, context.Background(), db, "bob")
	ce := NewClassificationExchange(db, log, set.Users, set.Classifications)
	ce.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return ce, set, u
}

func TestClassificationImportDefaultsToFirstUser(t *testing.T) {
	ce, set, alice := newExchange(t)
	dbc := dbctx.Background()

	in := "ID,Class,Morphology,Comments,Sky_Bkg,Date_of_classification,AwesomeFlag,ValidRedshift\n" +
		"G1,1,2,bright core,masked,2024/03/02-14:05,1,0\n" +
		"G2,-1,0,,,,0,1\n"
	res, err := ce.Import(dbc, strings.NewReader(in), 0, false)
	require.NoError(t, err)
	require.Equal(t, ClassificationResult{UserID: alice.ID, Inserted: 2}, res)

	c, err := set.Classifications.GetByUserAndGalaxy(dbc, alice.ID, "G1")
	require.NoError(t, err)
	require.Equal(t, 1, c.LSBClass)
	require.Equal(t, 2, c.Morphology)
	require.Equal(t, "bright core", c.Comments)
	require.True(t, c.AwesomeFlag)
	require.False(t, c.ValidRedshift)
	require.True(t, time.Date(2024, 3, 2, 14, 5, 0, 0, time.UTC).Equal(c.DateClassified))

	c2, err := set.Classifications.GetByUserAndGalaxy(dbc, alice.ID, "G2")
	require.NoError(t, err)
	require.True(t, c2.ValidRedshift)
	require.True(t, ce.now().Equal(c2.DateClassified), "blank date falls back to now")
}

func TestClassificationImportOverwrite(t *testing.T) {
	ce, set, alice := newExchange(t)
	dbc := dbctx.Background()
	first := "ID,Class,Morphology\nG1,0,0\n"
	second := "ID,Class,Morphology\nG1,1,1\n"

	_, err := ce.Import(dbc, strings.NewReader(first), alice.ID, false)
	require.NoError(t, err)

	res, err := ce.Import(dbc, strings.NewReader(second), alice.ID, false)
	require.NoError(t, err)
	require.Equal(t, 1, res.Skipped)
	c, _ := set.Classifications.GetByUserAndGalaxy(dbc, alice.ID, "G1")
	require.Equal(t, 0, c.LSBClass)

	res, err = ce.Import(dbc, strings.NewReader(second), alice.ID, true)
	require.NoError(t, err)
	require.Equal(t, 1, res.Updated)
	c, _ = set.Classifications.GetByUserAndGalaxy(dbc, alice.ID, "G1")
	require.Equal(t, 1, c.LSBClass)

	n, err := set.Classifications.CountByUser(dbc, alice.ID, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestClassificationImportRejectsUnknownLabels(t *testing.T) {
	ce, set, alice := newExchange(t)
	dbc := dbctx.Background()
	in := "ID,Class,Morphology\nG1,1,1\nG2,5,1\n"
	_, err := ce.Import(dbc, strings.NewReader(in), alice.ID, false)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	n, err := set.Classifications.CountByUser(dbc, alice.ID, nil)
	require.NoError(t, err)
	require.Zero(t, n, "a bad row rolls back the whole file")

	_, err = ce.Import(dbc, strings.NewReader("ID,Class,Morphology\nG1,1,1\n"), 999, false)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestClassificationExportRoundTrip(t *testing.T) {
	ce, _, alice := newExchange(t)
	dbc := dbctx.Background()
	in := "ID,Class,Morphology,Comments,Sky_Bkg,Date_of_classification,AwesomeFlag,ValidRedshift\n" +
		"G2,0,-1,\"tidal, faint\",masked,2024/03/02-14:05,0,1\n" +
		"G1,1,2,,,2024/03/01-09:30,1,0\n"
	_, err := ce.Import(dbc, strings.NewReader(in), alice.ID, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := ce.Export(dbc, 0, &buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	want := "ID,Class,Morphology,Comments,Sky_Bkg,Date_of_classification,AwesomeFlag,ValidRedshift\n" +
		"G1,1,2,,masked,2024/03/01-09:30,1,0\n" +
		"G2,0,-1,\"tidal, faint\",masked,2024/03/02-14:05,0,1\n"
	require.Equal(t, want, buf.String())
}

func TestClassificationExportNeedsAUser(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	set := repos.NewSet(db, log)
	ce := NewClassificationExchange(db, log, set.Users, set.Classifications)
	_, err := ce.Export(dbctx.Background(), 0, &bytes.Buffer{})
	require.ErrorIs(t, err, errs.ErrNotFound)
}
