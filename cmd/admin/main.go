package main

import (
	"complaintbox/backend/internal/auth"
	"complaintbox/backend/internal/complaint"
	"complaintbox/backend/internal/config"
	"complaintbox/backend/internal/models"
	"complaintbox/backend/internal/policy"
	"complaintbox/backend/internal/storage"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// app holds the services the commands run against. No redis needed for admin CLI.
type app struct {
	store      *storage.Service
	auth       *auth.Service
	complaints *complaint.Service
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "Complaint Box operator CLI",
	Long: `admin manages accounts and triages complaints directly against the database.
It reads the same environment (.env, DATABASE_URL, SECRET_KEY) as the API server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		db, err := storage.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		s := storage.NewStorageService(db, nil)
		if err := s.Migrate(); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		tokens := auth.NewTokenIssuer(cfg.SecretKey, cfg.TokenTTL, config.TokenIssuer)
		current = &app{
			store:      s,
			auth:       auth.NewService(s, nil, tokens, auth.Options{}),
			complaints: complaint.NewService(s, policy.MustNew()),
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current == nil {
			return nil
		}
		return current.store.Close()
	},
}

// actorByEmail loads the account that a command acts as.
func (a *app) actorByEmail(ctx context.Context, email string) (models.Identity, error) {
	user, err := a.store.GetUserByEmail(ctx, auth.NormalizeEmail(email))
	if err != nil {
		return models.Identity{}, fmt.Errorf("lookup %s: %w", email, err)
	}
	return user.Identity(), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(complaintsCmd)
}
