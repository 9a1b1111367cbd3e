// Command seed creates or updates console operators from a YAML file.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/auth"
	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	file := flag.String("admins", "admins.yaml", "path to the admin seed file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	admins, err := cmd.LoadAdminSeed(*file)
	if err != nil {
		log.Fatal(err)
	}

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err = postgres_adapter.Migrate(gormDB); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	uowFactory := postgres_adapter.NewGormUnitOfWorkFactory(gormDB)
	handler := commands.NewUpsertAdminCommandHandler(
		cmd.FuncAdminUoWFactory(func() commands.AdminUoW { return uowFactory.Create() }),
		auth.NewBcryptHasher(bcrypt.DefaultCost),
	)

	ctx := context.Background()
	for _, a := range admins {
		command, err := commands.NewUpsertAdminCommand(a.Email, a.Name, a.Password)
		if err != nil {
			log.Fatalf("admin %s: %v", a.Email, err)
		}
		if err = handler.Handle(ctx, command); err != nil {
			log.Fatalf("admin %s: %v", a.Email, err)
		}
		logger.Info("admin seeded", "email", command.Email())
	}
}
