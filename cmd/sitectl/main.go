// Command sitectl is the operator CLI for the site API: schema migrations, sample data
// and admin tokens for scripting.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	postgres "github.com/need-mission/site-api/internal/adapters/postgres"
	"github.com/need-mission/site-api/internal/adapters/postgres/migrate"
	pgsubmissionrepo "github.com/need-mission/site-api/internal/adapters/postgres/submissionrepo"
	"github.com/need-mission/site-api/internal/app/adminauth"
	"github.com/need-mission/site-api/internal/app/intake"
	"github.com/need-mission/site-api/internal/platform/auth/admintoken"
	platformclock "github.com/need-mission/site-api/internal/platform/clock"
	"github.com/need-mission/site-api/internal/platform/config"
	"github.com/need-mission/site-api/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type cliState struct {
	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	st := &cliState{}

	cmd := &cobra.Command{
		Use:   "sitectl",
		Short: "Operator tooling for the site API",
		Long: `sitectl manages the site API's store and credentials.
Configuration is read from the same environment variables (and optional .env file)
as the API server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			st.cfg = cfg
			st.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if st.log != nil {
				_ = st.log.Sync()
			}
		},
	}

	cmd.AddCommand(newMigrateCmd(st))
	cmd.AddCommand(newSeedCmd(st))
	cmd.AddCommand(newTokenCmd(st))
	return cmd
}

func newMigrateCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back the schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{migrate.DirectionUp, migrate.DirectionDown},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePostgres(st.cfg); err != nil {
				return err
			}
			if err := migrate.Run(st.cfg.DatabaseURL, args[0]); err != nil {
				return fmt.Errorf("migrate %s: %w", args[0], err)
			}
			st.log.Info("migrations applied", zap.String("direction", args[0]))
			return nil
		},
	}
}

func newSeedCmd(st *cliState) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the sample membership and contact submissions",
		Long: `Deletes submissions previously written by this command and inserts the sample set
again. Submissions from real visitors are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePostgres(st.cfg); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			pool, err := postgres.NewPool(ctx, st.cfg.DatabaseURL, postgres.PoolOptions{
				MaxConns:        st.cfg.DBMaxConns,
				MinConns:        st.cfg.DBMinConns,
				MaxConnLifetime: st.cfg.DBMaxConnLifetime,
				ConnectTimeout:  st.cfg.DBConnectTimeout,
			})
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := intake.NewService(pgsubmissionrepo.NewRepo(pool), platformclock.NewSystemClock())
			res, err := svc.ReseedSamples(ctx)
			if err != nil {
				return err
			}
			st.log.Info("seeded sample submissions",
				zap.Int64("removed_memberships", res.RemovedMemberships),
				zap.Int64("removed_contacts", res.RemovedContacts),
				zap.Int("memberships", res.Memberships),
				zap.Int("contacts", res.Contacts),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d memberships and %d contact messages.\n", res.Memberships, res.Contacts)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall time limit")
	return cmd
}

func newTokenCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print an admin token signed with JWT_SECRET",
		Long:  `Mints the same credential POST /api/auth/login returns, valid for two hours.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			codec := admintoken.New(st.cfg.JWTSecret, adminauth.TokenTTL)
			tok, exp, err := codec.Issue(admintoken.RoleAdmin)
			if err != nil {
				return err
			}
			st.log.Debug("issued admin token", zap.Time("expires_at", exp))
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
}

func requirePostgres(cfg *config.Config) error {
	if cfg.StorageBackend != config.StoragePostgres {
		return errors.New("this command needs STORAGE_BACKEND=postgres and DATABASE_URL")
	}
	return nil
}
