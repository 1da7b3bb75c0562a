package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/RehanWaris/voiceworx-vapp/app/config"
	"github.com/RehanWaris/voiceworx-vapp/app/database"
	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/RehanWaris/voiceworx-vapp/app/services"
	"github.com/spf13/pflag"
)

func main() {
	envFile := pflag.String("env-file", "", "env file to load before reading the environment")
	name := pflag.String("name", "", "display name")
	email := pflag.String("email", "", "login email (required)")
	password := pflag.String("password", "", "initial password (required)")
	role := pflag.String("role", string(models.RoleEmployee), "employee or admin")
	promote := pflag.Bool("promote", false, "set --role on an existing user instead of creating one")
	pflag.Parse()

	if *email == "" || (*password == "" && !*promote) {
		pflag.Usage()
		os.Exit(2)
	}

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		fail(err)
	}
	logger := cfg.NewLogger()

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		fail(err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.RunMigrations(ctx, db, logger); err != nil {
		fail(err)
	}

	if *promote {
		if err := setRole(ctx, db, *email, models.Role(*role)); err != nil {
			fail(err)
		}
		fmt.Printf("Role of %s set to %s\n", database.NormalizeEmail(*email), *role)
		return
	}

	creds := services.NewCredentials(cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	hash, err := creds.HashPassword(*password)
	if err != nil {
		fail(err)
	}
	user := &models.User{
		Name:         *name,
		Email:        *email,
		PasswordHash: hash,
		Role:         models.Role(*role),
	}
	if err := database.CreateUser(ctx, db, user); err != nil {
		if errors.Is(err, database.ErrEmailTaken) {
			fail(fmt.Errorf("%s is already registered", database.NormalizeEmail(*email)))
		}
		fail(err)
	}

	fmt.Printf("User created: %s <%s> role=%s id=%s\n", user.Name, user.Email, user.Role, user.ID)
}

func setRole(ctx context.Context, db *database.DB, email string, role models.Role) error {
	user, err := database.GetUserByEmail(ctx, db, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("no user registered as %s", database.NormalizeEmail(email))
		}
		return err
	}
	return database.SetUserRole(ctx, db, user.ID, role)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "adduser:", err)
	os.Exit(1)
}
