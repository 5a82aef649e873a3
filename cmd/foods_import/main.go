package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/dietplan/internal/config"
	"github.com/2beens/dietplan/internal/db"
	"github.com/2beens/dietplan/internal/logging"
	"github.com/2beens/dietplan/internal/nutrition/foods"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	csvPath := flag.String("csv", "", "base catalog CSV file (NAME;CATEGORY;SERVING_SIZE;SERVING_UNIT;CALORIES;PROTEIN;CARBS;FAT)")
	dryRun := flag.Bool("dry-run", false, "only parse and validate the CSV")
	flag.Parse()

	if *csvPath == "" {
		log.Fatalln("catalog csv not specified")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cfg, err := config.Load(ctx, *env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	closeLogging, err := logging.Setup(logging.LoggerSetupParams{
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})
	if err != nil {
		log.Fatalf("setup logging: %s", err)
	}
	defer closeLogging()

	if err := run(ctx, cfg, *csvPath, *dryRun); err != nil {
		log.Fatalf("foods import: %s", err)
	}
}

func run(ctx context.Context, cfg *config.Config, csvPath string, dryRun bool) error {
	csvFile, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("open catalog csv: %w", err)
	}
	defer func() {
		if err := csvFile.Close(); err != nil {
			log.Warnf("close catalog csv file: %s", err)
		}
	}()

	catalog, err := foods.ReadCatalogCSV(csvFile)
	if err != nil {
		return fmt.Errorf("read catalog csv: %w", err)
	}
	log.Infof("%d foods read from [%s]", len(catalog), csvPath)
	if dryRun {
		return nil
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: cfg.Secrets.PostgresPassword,
	})
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := db.Migrate(ctx, dbPool); err != nil {
		return err
	}

	repo := foods.NewRepo(dbPool)
	now := time.Now()
	for i, food := range catalog {
		food.CreatedAt = now
		if _, err := repo.Add(ctx, food); err != nil {
			return fmt.Errorf("add food %q (%d/%d): %w", food.Name, i+1, len(catalog), err)
		}
	}

	log.Infof("imported %d foods", len(catalog))
	return nil
}
