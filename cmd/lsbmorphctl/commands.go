package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/yungbote/lsbmorph-backend/internal/app"
	"github.com/yungbote/lsbmorph-backend/internal/data/db"
	"github.com/yungbote/lsbmorph-backend/internal/data/repos"
	"github.com/yungbote/lsbmorph-backend/internal/ingestion"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
	"github.com/yungbote/lsbmorph-backend/internal/services"
)

// env is the database and config shared by every subcommand.
type env struct {
	log   *logger.Logger
	cfg   app.Config
	dbSvc *db.DatabaseService
	db    *gorm.DB
	repos repos.Set
}

func openEnv(cmd *cobra.Command, migrate bool) (*env, error) {
	log, err := app.NewLogger()
	if err != nil {
		return nil, err
	}
	cfg, err := app.LoadConfig(log)
	if err != nil {
		return nil, err
	}
	if dsn, _ := cmd.Flags().GetString("database-url"); dsn != "" {
		cfg.DatabaseURL = dsn
	}
	if driver, _ := cmd.Flags().GetString("db-driver"); driver != "" {
		cfg.DBDriver = driver
	}
	dbSvc, err := app.OpenDB(log, cfg, migrate)
	if err != nil {
		return nil, err
	}
	return &env{
		log:   log,
		cfg:   cfg,
		dbSvc: dbSvc,
		db:    dbSvc.DB(),
		repos: repos.NewSet(dbSvc.DB(), log),
	}, nil
}

func (e *env) Close() {
	_ = e.dbSvc.Close()
	e.log.Sync()
}

// countCache mirrors the server's cache so imports invalidate the total it
// serves. Without REDIS_ADDR there is nothing to invalidate.
func (e *env) countCache() services.CountCache {
	if e.cfg.RedisAddr == "" {
		return services.NewNoopCountCache()
	}
	cache, err := services.NewRedisCountCache(e.log, e.cfg.RedisAddr, e.cfg.CountCacheTTL)
	if err != nil {
		e.log.Warn("redis unavailable, count cache not invalidated", "error", err)
		return services.NewNoopCountCache()
	}
	return cache
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lsbmorphctl",
		Short:         "Administer the LSB/morphology labeling database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("database-url", "", "override DATABASE_URL")
	root.PersistentFlags().String("db-driver", "", "override DB_DRIVER (postgres|sqlite)")

	root.AddCommand(
		newMigrateCmd(),
		newImportCatalogCmd(),
		newExportClassificationsCmd(),
		newImportClassificationsCmd(),
	)
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "tables migrated")
			return nil
		},
	}
}

func newImportCatalogCmd() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "import-catalog",
		Short: "Load galaxies from a catalog CSV; row order defines next/previous",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(in)
			if err != nil {
				return err
			}
			defer f.Close()

			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.Close()

			progress := services.NewProgressService(e.log, e.repos.Galaxies, e.repos.Classifications, e.repos.Skips, e.countCache())
			imp := ingestion.NewCatalogImporter(e.db, e.log, e.repos.Galaxies, progress)
			res, err := imp.Import(dbctx.Context{Ctx: cmd.Context()}, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rows=%d inserted=%d existing=%d\n", res.Rows, res.Inserted, res.Existing)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "catalog CSV path")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newExportClassificationsCmd() *cobra.Command {
	var (
		out       string
		userID    uint
		overwrite bool
	)
	cmd := &cobra.Command{
		Use:   "export-classifications",
		Short: "Write one user's classifications to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.Close()

			flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
			if overwrite {
				flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
			}
			f, err := os.OpenFile(out, flags, 0o644)
			if err != nil {
				if os.IsExist(err) {
					return fmt.Errorf("%s exists; pass --overwrite to replace it", out)
				}
				return err
			}
			defer f.Close()

			ex := ingestion.NewClassificationExchange(e.db, e.log, e.repos.Users, e.repos.Classifications)
			n, err := ex.Export(dbctx.Context{Ctx: cmd.Context()}, userID, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", n, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "classifications.csv", "output CSV path")
	cmd.Flags().UintVar(&userID, "user-id", 0, "user to export (default: first user)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing output file")
	return cmd
}

func newImportClassificationsCmd() *cobra.Command {
	var (
		in        string
		userID    uint
		overwrite bool
	)
	cmd := &cobra.Command{
		Use:   "import-classifications",
		Short: "Load classifications from CSV for one user",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(in)
			if err != nil {
				return err
			}
			defer f.Close()

			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.Close()

			ex := ingestion.NewClassificationExchange(e.db, e.log, e.repos.Users, e.repos.Classifications)
			res, err := ex.Import(dbctx.Context{Ctx: cmd.Context()}, f, userID, overwrite)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user=%d inserted=%d updated=%d skipped=%d\n",
				res.UserID, res.Inserted, res.Updated, res.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "classification CSV path")
	cmd.Flags().UintVar(&userID, "user-id", 0, "owner of the imported rows (default: first user)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "update rows that already exist")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
