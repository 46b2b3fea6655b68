package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/config"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/repository"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/seed"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var actorID int64

	flag.IntVar(&op, "op", 0, "operation (1: insert random workers, 2: seed demo positions/patterns/annual plan, 3: seed assignments)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Int64Var(&actorID, "actor-id", 1, "user id recorded as the actor of the seeded annual plan import")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not dial, so verify the DSN actually works.
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to reach the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("invalid number of workers")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("unable to generate a random worker", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				slog.Error("unable to insert the worker", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("workers inserted", slog.Int("count", n-cnt))
	case 2:
		seed.SeedDemoData(repo, cfg.Rotation.CycleLength, actorID)
	case 3:
		seed.SeedAssignments(repo, cfg.Rotation.CycleLength)
	default:
		slog.Error("unknown operation")
	}
}
