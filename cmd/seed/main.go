package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"notas/internal/audit"
	"notas/internal/auth"
	"notas/internal/config"
	"notas/internal/repository"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type SeedFlags struct {
	DatabaseURL  string
	InitDatabase bool
	JWTSecret    string
	TokenTTL     time.Duration
	Seed         SeedOptions
}

func NewSeedFlags(cfg config.Config) *SeedFlags {
	return &SeedFlags{
		DatabaseURL: cfg.DatabaseURL,
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    24 * time.Hour,
		Seed: SeedOptions{
			TenantName: "Demo Company",
			TenantSlug: "demo",
			AdminName:  "Demo Admin",
			AdminEmail: "admin@demo.test",
			Clients:    2,
			Projects:   3,
		},
	}
}

func (f *SeedFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.DatabaseURL, "database-url", f.DatabaseURL, "Database to seed (postgres://... or sqlite://...)")
	fs.BoolVar(&f.InitDatabase, "init-database", false, "Migrate the DB before seeding data")
	fs.StringVar(&f.JWTSecret, "jwt-secret", f.JWTSecret, "Secret used to sign the development token (defaults to JWT_SECRET)")
	fs.DurationVar(&f.TokenTTL, "token-ttl", f.TokenTTL, "Lifetime of the printed development token")
	fs.StringVar(&f.Seed.TenantName, "tenant", f.Seed.TenantName, "Name of the tenant to create")
	fs.StringVar(&f.Seed.TenantSlug, "slug", f.Seed.TenantSlug, "Unique slug of the tenant to create")
	fs.StringVar(&f.Seed.AdminName, "admin-name", f.Seed.AdminName, "Display name of the tenant admin")
	fs.StringVar(&f.Seed.AdminEmail, "admin-email", f.Seed.AdminEmail, "Email of the tenant admin")
	fs.IntVar(&f.Seed.Clients, "clients", f.Seed.Clients, "Number of clients to create")
	fs.IntVar(&f.Seed.Projects, "projects", f.Seed.Projects, "Number of projects to create")
}

func NewSeedCommand(cfg config.Config, logger *slog.Logger) *cobra.Command {
	f := NewSeedFlags(cfg)

	cmd := &cobra.Command{
		Use:   "notas-seed",
		Short: "Populate a demo tenant in the database",
		Long: `Populate a demo tenant for local development.

Creates a tenant, an admin user, clients and projects through the same
unit of work the API uses, so every row gets its audit record. The seed
runs without a request identity: its audit records carry no actor and take
their tenant from the seeded entities. If the data belonging to the tenant
cannot be written, the new tenant is deleted again and the seed can be
re-run once the cause is fixed.

When a JWT secret is available, a bearer token for the admin is printed.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := repository.InitDB(config.Config{DatabaseURL: f.DatabaseURL})
			if err != nil {
				return errors.WithMessage(err, "could not connect to database")
			}

			if f.InitDatabase {
				logger.Info("Initializing database schema...")
				if strings.HasPrefix(f.DatabaseURL, "postgres") {
					err = repository.RunMigrations(f.DatabaseURL, "")
				} else {
					err = repository.AutoMigrate(db)
				}
				if err != nil {
					return errors.WithMessage(err, "could not migrate database")
				}
			}

			store := repository.NewStore(db)
			if err := audit.Install(store, audit.NewInterceptor(logger)); err != nil {
				return errors.WithMessage(err, "could not install audit interceptor")
			}
			store.Seal()

			result, err := Seed(cmd.Context(), store, f.Seed)
			if err != nil {
				return err
			}
			logger.Info("Seeded demo data",
				"tenant_id", result.Tenant.ID,
				"admin_id", result.Admin.ID,
				"clients", len(result.Clients),
				"projects", len(result.Projects),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "admin email:    %s\n", result.Admin.Email)
			fmt.Fprintf(out, "admin password: %s\n", result.Password)
			if f.JWTSecret == "" {
				logger.Warn("No JWT secret configured, skipping development token")
				return nil
			}
			token, err := auth.SignToken(f.JWTSecret, result.Admin.ID, result.Tenant.ID, result.Admin.Email, f.TokenTTL)
			if err != nil {
				return errors.WithMessage(err, "could not sign development token")
			}
			fmt.Fprintf(out, "bearer token:   %s\n", token)
			return nil
		},
	}

	f.BindFlags(cmd.Flags())

	return cmd
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := NewSeedCommand(cfg, logger).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
