package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/coach-platform/internal/cli"
	"github.com/BruksfildServices01/coach-platform/internal/config"
	dbpkg "github.com/BruksfildServices01/coach-platform/internal/db"
	"github.com/BruksfildServices01/coach-platform/internal/logger"
)

var CLI struct {
	Migrate        cli.MigrateCmd        `cmd:"" help:"Apply pending database migrations."`
	MigrateVersion cli.MigrateVersionCmd `cmd:"" name:"migrate-version" help:"Print the current migration version."`
	FeedToken      cli.FeedTokenCmd      `cmd:"" name:"feed-token" help:"Issue a calendar feed token for a user."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("coachctl"),
		kong.Description("Coach platform administration"),
		kong.UsageOnError(),
	)

	cfg := config.Load()
	log := logger.New(cfg)
	defer log.Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", zap.Error(err))
		os.Exit(1)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Error("database", zap.Error(err))
		os.Exit(1)
	}

	err = kctx.Run(&cli.Context{
		Ctx: context.Background(),
		DB:  db,
		Log: log,
		Out: os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
