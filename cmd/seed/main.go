// Command seed creates an admin principal. Admins cannot self-register through the API.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"nutrilens/config"
	"nutrilens/internal/domain/constants"
	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/lifecycle"
	"nutrilens/internal/domain/repository"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/errors"
	"nutrilens/internal/infra/auth"
	logs "nutrilens/internal/infra/log"
	"nutrilens/internal/infra/persistence"

	"go.uber.org/fx"
)

type adminOptions struct {
	Username string
	Email    string
	FullName string
	Password string
}

type seedParams struct {
	fx.In

	Options    adminOptions
	Config     *config.Config
	Principals repository.PrincipalRepository
	Hasher     service.PasswordHasher
	Logger     *slog.Logger
}

func main() {
	var opts adminOptions
	flag.StringVar(&opts.Username, "username", "admin", "admin username")
	flag.StringVar(&opts.Email, "email", "", "admin email")
	flag.StringVar(&opts.FullName, "fullname", "Administrator", "admin full name")
	flag.StringVar(&opts.Password, "password", "", "admin password")
	flag.Parse()

	app := fx.New(
		fx.NopLogger,
		fx.Supply(opts),
		fx.Provide(
			config.New,
			logs.New,
			persistence.New,
			auth.NewBcryptHasher,
		),
		fx.Invoke(seedAdmin),
	)

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		slog.Error("Failed to seed admin", slog.Any("error", err))
		os.Exit(1)
	}
	if err := app.Stop(ctx); err != nil {
		slog.Error("Failed to stop seeder", slog.Any("error", err))
	}
}

func seedAdmin(params seedParams) error {
	opts := params.Options
	if opts.Email == "" || opts.Password == "" {
		return errors.New("-email and -password are required")
	}
	if params.Config.Storage.Driver == constants.StorageDriverMemory {
		params.Logger.Warn("Seeding the in-memory store has no lasting effect")
	}
	if err := params.Hasher.ValidatePasswordStrength(opts.Password); err != nil {
		return err
	}

	hash, err := params.Hasher.Hash(opts.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	admin := entity.NewPrincipal(opts.Username, opts.Email, opts.FullName, entity.RoleAdmin)
	admin.AccountStatus = entity.AccountStatusApproved
	admin.PasswordHash = hash

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	if err := params.Principals.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicatePrincipal) {
			return errors.Errorf("a principal named %s or %s already exists", admin.Username, admin.Email)
		}

		return errors.Wrap(err, "failed to create admin")
	}

	params.Logger.Info("Admin created", slog.String("principal_id", admin.ID.String()), slog.String("username", admin.Username))

	return nil
}
