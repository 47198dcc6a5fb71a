package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lexgrep/lexgrep-cli/internal/adapters/driven/config/file"
	"github.com/lexgrep/lexgrep-cli/internal/adapters/driven/extract/pdf"
	"github.com/lexgrep/lexgrep-cli/internal/adapters/driven/extract/plaintext"
	"github.com/lexgrep/lexgrep-cli/internal/adapters/driven/storage/sqlite"
	"github.com/lexgrep/lexgrep-cli/internal/core/domain"
	"github.com/lexgrep/lexgrep-cli/internal/core/ports/driven"
	"github.com/lexgrep/lexgrep-cli/internal/core/ports/driving"
	"github.com/lexgrep/lexgrep-cli/internal/core/services"
	"github.com/lexgrep/lexgrep-cli/internal/index"
)

// Construction hooks for the commands. Production wiring is the
// default; tests replace these with fakes.
var (
	newBuildService     = defaultBuildService
	newRetrievalService = defaultRetrievalService
	newCatalogService   = defaultCatalogService
)

// closerFunc adapts a func to io.Closer-style cleanup.
type closerFunc func() error

func (f closerFunc) Close() error {
	if f == nil {
		return nil
	}
	return f()
}

// openConfig loads the TOML config store.
func openConfig() (driven.ConfigStore, error) {
	return file.NewConfigStore(os.Getenv("LEXGREP_CONFIG_DIR"))
}

// resolveDataDir picks the data directory: flag, then config, then
// ~/.lexgrep/data.
func resolveDataDir(cfg driven.ConfigStore) (string, error) {
	if dataDirFlag != "" {
		return dataDirFlag, nil
	}
	if cfg != nil {
		if dir := cfg.GetString(file.KeyDataDir); dir != "" {
			return dir, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving data directory: %w", err)
	}
	return filepath.Join(home, ".lexgrep", "data"), nil
}

// bundleDir returns the published bundle location under the data dir.
func bundleDir(dataDir string) string {
	return filepath.Join(dataDir, services.BundleDir)
}

// defaultBuildService wires the full build pipeline. maxDF <= 0 falls
// back to the configured value, then the builder default.
func defaultBuildService(maxDF float64) (driving.BuildService, closerFunc, error) {
	cfg, err := openConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	dataDir, err := resolveDataDir(cfg)
	if err != nil {
		return nil, nil, err
	}

	if maxDF <= 0 {
		maxDF = cfg.GetFloat(file.KeyIndexMaxDF)
	}
	var opts []index.Option
	if maxDF > 0 {
		opts = append(opts, index.WithMaxDF(maxDF))
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening catalog: %w", err)
	}

	svc := services.NewBuildService(
		dataDir,
		index.NewBuilder(opts...),
		map[string]driven.Extractor{".pdf": pdf.New()},
		plaintext.New(),
		store.Catalog(),
	)
	return svc, store.Close, nil
}

// defaultRetrievalService loads the published bundle.
func defaultRetrievalService() (driving.RetrievalService, error) {
	cfg, err := openConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	dataDir, err := resolveDataDir(cfg)
	if err != nil {
		return nil, err
	}
	return services.NewRetrievalService(bundleDir(dataDir))
}

// defaultCatalogService opens the catalog with the built-in category map.
func defaultCatalogService() (driving.CatalogService, closerFunc, error) {
	cfg, err := openConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	dataDir, err := resolveDataDir(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening catalog: %w", err)
	}
	svc := services.NewCatalogService(store.Catalog(), domain.DefaultArticleCategories())
	return svc, store.Close, nil
}

// searchDefaults returns top-k/min-score defaults from config, falling
// back to the domain defaults.
func searchDefaults() (int, float64) {
	topK := domain.DefaultTopK
	minScore := domain.DefaultMinScore

	cfg, err := openConfig()
	if err != nil {
		return topK, minScore
	}
	if v := cfg.GetInt(file.KeySearchTopK); v > 0 {
		topK = v
	}
	if v := cfg.GetFloat(file.KeySearchMinScore); v > 0 {
		minScore = v
	}
	return topK, minScore
}
