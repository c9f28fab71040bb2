package catalog

import (
	"context"
	"testing"

	"github.com/yungbote/lsbmorph-backend/internal/data/repos/testutil"
	types "github.com/yungbote/lsbmorph-backend/internal/domain"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
)

func TestGalaxyRepo_CRUD(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewGalaxyRepo(db, testutil.Logger(t))

	if err := repo.Create(dbc, []*types.Galaxy{
		{ID: "G1", RA: 1, Dec: 2, NextID: testutil.S("G2")},
		{ID: "G2", RA: 3, Dec: 4, PreviousID: testutil.S("G1")},
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := repo.Count(dbc)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Fatalf("Count: want=2 got=%d", n)
	}

	g, err := repo.GetByID(dbc, "G2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if g == nil || g.PreviousID == nil || *g.PreviousID != "G1" {
		t.Fatalf("GetByID: unexpected result: %+v", g)
	}

	g, err = repo.GetByID(dbc, "nope")
	if err != nil {
		t.Fatalf("GetByID(missing): %v", err)
	}
	if g != nil {
		t.Fatalf("GetByID(missing): want=nil got=%+v", g)
	}

	list, err := repo.GetByIDs(dbc, []string{"G2", "G1", "G9"})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(list) != 2 || list[0].ID != "G1" || list[1].ID != "G2" {
		t.Fatalf("GetByIDs: unexpected result: %+v", list)
	}
}

func TestGalaxyRepo_FirstMatching(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewGalaxyRepo(db, testutil.Logger(t))

	// A is a head, B and C are linked behind it, D is a second head.
	testutil.SeedGalaxyChain(t, ctx, tx, "A", "B", "C")
	testutil.SeedGalaxy(t, ctx, tx, &types.Galaxy{ID: "D", RedshiftX: testutil.F(1), RedshiftY: testutil.F(2)})

	u := testutil.SeedUser(t, ctx, tx, "alice")
	other := testutil.SeedUser(t, ctx, tx, "bob")

	testutil.SeedClassification(t, ctx, tx, u.ID, "A", 1, 2)
	testutil.SeedClassification(t, ctx, tx, u.ID, "D", 0, 1)
	testutil.SeedClassification(t, ctx, tx, other.ID, "B", 1, 2)
	testutil.SeedSkip(t, ctx, tx, u.ID, "B")

	cases := []struct {
		name string
		q    Query
		want string
	}{
		{name: "no filter prefers heads", q: Query{UserID: u.ID}, want: "A"},
		{name: "unclassified", q: Query{UserID: u.ID, Classified: MemberNotIn}, want: "B"},
		{name: "unclassified unskipped", q: Query{UserID: u.ID, Classified: MemberNotIn, Skipped: MemberNotIn}, want: "C"},
		{name: "skipped only", q: Query{UserID: u.ID, Skipped: MemberIn}, want: "B"},
		{name: "lsb class", q: Query{UserID: u.ID, LSBClass: testutil.I(0)}, want: "D"},
		{name: "morphology", q: Query{UserID: u.ID, Morphology: testutil.I(2)}, want: "A"},
		{name: "with redshift", q: Query{UserID: u.ID, WithRedshift: testutil.B(true)}, want: "D"},
		{name: "without redshift", q: Query{UserID: u.ID, WithRedshift: testutil.B(false), Classified: MemberNotIn}, want: "B"},
		{name: "other user's labels are invisible", q: Query{UserID: other.ID, Classified: MemberNotIn}, want: "A"},
		{name: "nothing matches", q: Query{UserID: u.ID, LSBClass: testutil.I(-1)}, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.FirstMatching(dbc, tc.q)
			if err != nil {
				t.Fatalf("FirstMatching: %v", err)
			}
			gotID := ""
			if got != nil {
				gotID = got.ID
			}
			if gotID != tc.want {
				t.Fatalf("FirstMatching: want=%q got=%q", tc.want, gotID)
			}
		})
	}
}

func TestGalaxyRepo_FirstMatchingPartialMarker(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewGalaxyRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, ctx, tx, "alice")
	testutil.SeedGalaxy(t, ctx, tx, &types.Galaxy{ID: "H", RedshiftX: testutil.F(1)})

	got, err := repo.FirstMatching(dbc, Query{UserID: u.ID, WithRedshift: testutil.B(false)})
	if err != nil {
		t.Fatalf("FirstMatching: %v", err)
	}
	if got == nil || got.ID != "H" {
		t.Fatalf("without redshift: want=H got=%v", got)
	}

	got, err = repo.FirstMatching(dbc, Query{UserID: u.ID, WithRedshift: testutil.B(true)})
	if err != nil {
		t.Fatalf("FirstMatching: %v", err)
	}
	if got != nil {
		t.Fatalf("with redshift: want=nil got=%s", got.ID)
	}
}

func TestGalaxyRepo_FirstMatchingValidRedshift(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewGalaxyRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, ctx, tx, "alice")

	testutil.SeedGalaxy(t, ctx, tx, &types.Galaxy{ID: "R1", RedshiftX: testutil.F(1), RedshiftY: testutil.F(1)})
	testutil.SeedGalaxy(t, ctx, tx, &types.Galaxy{ID: "R2", RedshiftX: testutil.F(1), RedshiftY: testutil.F(1)})
	c := testutil.SeedClassification(t, ctx, tx, u.ID, "R2", 1, 0)
	c.ValidRedshift = true
	if err := tx.Save(c).Error; err != nil {
		t.Fatalf("save classification: %v", err)
	}
	testutil.SeedClassification(t, ctx, tx, u.ID, "R1", 1, 0)

	got, err := repo.FirstMatching(dbc, Query{UserID: u.ID, ValidRedshift: testutil.B(true)})
	if err != nil {
		t.Fatalf("FirstMatching: %v", err)
	}
	if got == nil || got.ID != "R2" {
		t.Fatalf("FirstMatching(valid): want=R2 got=%+v", got)
	}

	got, err = repo.FirstMatching(dbc, Query{UserID: u.ID, ValidRedshift: testutil.B(false)})
	if err != nil {
		t.Fatalf("FirstMatching: %v", err)
	}
	if got == nil || got.ID != "R1" {
		t.Fatalf("FirstMatching(invalid): want=R1 got=%+v", got)
	}
}
