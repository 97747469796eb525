// cmd/tools/catalog-tool/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"rto-workers/internal/catalog"
	"rto-workers/internal/common/config"
	"rto-workers/internal/common/database"
	"rto-workers/internal/common/logger"
	"rto-workers/internal/matcher"
	"rto-workers/internal/models"
	"rto-workers/pkg/registry"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validatePath := validateCmd.String("path", "configs/providers.json", "Catalog file to validate")

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOut := exportCmd.String("out", "-", "Output file, - for stdout")
	exportFrom := exportCmd.String("from", "seed", "Source to export: seed or config")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importPath := importCmd.String("path", "configs/providers.json", "Catalog file to load into postgres")
	importConfig := importCmd.String("config", "", "Config file (defaults to configs/config.yaml)")

	invalidateCmd := flag.NewFlagSet("invalidate-cache", flag.ExitOnError)
	invalidateConfig := invalidateCmd.String("config", "", "Config file (defaults to configs/config.yaml)")

	matchCmd := flag.NewFlagSet("match", flag.ExitOnError)
	matchPath := matchCmd.String("path", "", "Catalog file (defaults to the seed catalog)")
	matchMode := matchCmd.String("delivery", "online", "Delivery preference")
	matchRegion := matchCmd.String("region", "NSW", "Region code")

	workersCmd := flag.NewFlagSet("workers", flag.ExitOnError)
	workersPath := workersCmd.String("path", "", "Activity registry file (defaults to the built-in registry)")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		err = validateFile(ctx, *validatePath)
	case "export":
		exportCmd.Parse(os.Args[2:])
		err = export(ctx, *exportFrom, *exportOut)
	case "import":
		importCmd.Parse(os.Args[2:])
		err = importFile(ctx, *importConfig, *importPath)
	case "invalidate-cache":
		invalidateCmd.Parse(os.Args[2:])
		err = invalidateCache(ctx, *invalidateConfig)
	case "match":
		matchCmd.Parse(os.Args[2:])
		err = match(ctx, *matchPath, *matchMode, *matchRegion)
	case "workers":
		workersCmd.Parse(os.Args[2:])
		err = listWorkers(*workersPath)
	case "help":
		help()
	default:
		help()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func validateFile(ctx context.Context, path string) error {
	cat, err := catalog.Load(ctx, catalog.NewFileSource(path))
	if err != nil {
		return err
	}
	fmt.Printf("Catalog valid: %d providers, regions covered: %v\n", cat.Len(), cat.CoveredRegions())
	return nil
}

func export(ctx context.Context, from, out string) error {
	var src catalog.Source
	switch from {
	case "seed":
		src = catalog.SeedSource{}
	case "config":
		cfg, deps, closeFn, err := connect(ctx, "")
		if err != nil {
			return err
		}
		defer closeFn()
		src, err = catalog.NewSource(cfg.Catalog, deps, logger.NewNoOpLogger())
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export source %q", from)
	}

	cat, err := catalog.Load(ctx, src)
	if err != nil {
		return err
	}
	data, err := catalog.Encode(cat.Providers())
	if err != nil {
		return err
	}

	if out == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(os.Stderr, "Exported %d providers to %s\n", cat.Len(), out)
	return nil
}

func importFile(ctx context.Context, configPath, path string) error {
	cat, err := catalog.Load(ctx, catalog.NewFileSource(path))
	if err != nil {
		return err
	}

	cfg, deps, closeFn, err := connect(ctx, configPath)
	if err != nil {
		return err
	}
	defer closeFn()
	if deps.Postgres == nil {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		defer pg.Close()
		deps.Postgres = pg.DB
	}

	pgSrc, err := catalog.NewPostgresSource(deps.Postgres, cfg.Catalog.Table)
	if err != nil {
		return err
	}
	if err := pgSrc.Replace(ctx, cat.Providers()); err != nil {
		return err
	}
	fmt.Printf("Imported %d providers into %s\n", cat.Len(), cfg.Catalog.Table)

	if deps.Redis != nil {
		cached := catalog.NewCachedSource(pgSrc, deps.Redis, cfg.Catalog.CacheKey, cfg.Catalog.CacheDuration(), logger.NewNoOpLogger())
		if err := cached.Invalidate(ctx); err != nil {
			return fmt.Errorf("imported, but cache invalidation failed: %w", err)
		}
		fmt.Println("Catalog cache invalidated")
	}
	return nil
}

func invalidateCache(ctx context.Context, configPath string) error {
	cfg, deps, closeFn, err := connect(ctx, configPath)
	if err != nil {
		return err
	}
	defer closeFn()
	if deps.Redis == nil {
		return fmt.Errorf("catalog.cache_ttl is not set; there is no cache to invalidate")
	}

	cached := catalog.NewCachedSource(catalog.SeedSource{}, deps.Redis, cfg.Catalog.CacheKey, cfg.Catalog.CacheDuration(), logger.NewNoOpLogger())
	if err := cached.Invalidate(ctx); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", cfg.Catalog.CacheKey)
	return nil
}

func match(ctx context.Context, path, mode, region string) error {
	var src catalog.Source = catalog.SeedSource{}
	if path != "" {
		src = catalog.NewFileSource(path)
	}
	cat, err := catalog.Load(ctx, src)
	if err != nil {
		return err
	}

	ranking := matcher.Match(cat.Providers(), models.Query{DeliveryPreference: mode, Region: region})
	printRanking(os.Stdout, ranking)
	return nil
}

func listWorkers(path string) error {
	reg := registry.Default()
	if path != "" {
		var err error
		if reg, err = registry.LoadRegistry(path); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printRanking(w io.Writer, ranking models.Ranking) {
	if len(ranking) == 0 {
		fmt.Fprintln(w, "No providers match.")
		return
	}
	for i, p := range ranking {
		price := "-"
		if p.Price != nil {
			price = fmt.Sprintf("$%.0f", *p.Price)
		}
		marker := ""
		if p.IsSponsored() {
			marker = " [sponsored]"
		}
		fmt.Fprintf(w, "%2d. %-40s %4.1f %8s%s\n", i+1, p.Name, p.Rating, price, marker)
	}
}

// connect opens the connections the configured catalog needs.
func connect(ctx context.Context, configPath string) (*config.Config, catalog.Deps, func(), error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, catalog.Deps{}, nil, err
	}

	var deps catalog.Deps
	var closers []func()
	closeFn := func() {
		for _, c := range closers {
			c()
		}
	}

	if cfg.Catalog.Source == config.CatalogSourcePostgres {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, deps, nil, err
		}
		closers = append(closers, func() { _ = pg.Close() })
		if err := pg.Ping(ctx); err != nil {
			closeFn()
			return nil, deps, nil, err
		}
		deps.Postgres = pg.DB
	}
	if cfg.Catalog.CacheTTL > 0 {
		rdb := database.NewRedis(cfg.Database.Redis)
		closers = append(closers, func() { _ = rdb.Close() })
		deps.Redis = rdb.Client
	}

	return cfg, deps, closeFn, nil
}

func help() {
	fmt.Println(`catalog-tool manages the training provider catalog.

Usage:
  catalog-tool validate [-path configs/providers.json]
  catalog-tool export [-from seed|config] [-out file]
  catalog-tool import [-path configs/providers.json] [-config configs/config.yaml]
  catalog-tool invalidate-cache [-config configs/config.yaml]
  catalog-tool match [-path file] [-delivery online] [-region NSW]
  catalog-tool workers [-path registry.json]`)
}
