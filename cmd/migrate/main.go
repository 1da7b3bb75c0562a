package main

import (
	"context"
	"fmt"
	"os"

	"github.com/RehanWaris/voiceworx-vapp/app/config"
	"github.com/RehanWaris/voiceworx-vapp/app/database"
	"github.com/spf13/pflag"
)

func main() {
	envFile := pflag.String("env-file", "", "env file to load before reading the environment")
	pflag.Parse()

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

	if err := database.RunMigrations(context.Background(), db, logger); err != nil {
		fail(err)
	}
	logger.Info("migrations complete", "driver", cfg.DBDriver)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "migrate:", err)
	os.Exit(1)
}
