package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cperrin88/geofetch/internal/logger"
	"github.com/cperrin88/geofetch/pkg/cache"
	"github.com/cperrin88/geofetch/pkg/catalog"
	"github.com/cperrin88/geofetch/pkg/config"
	"github.com/cperrin88/geofetch/pkg/download"
	"github.com/cperrin88/geofetch/pkg/hooks"
	"github.com/cperrin88/geofetch/pkg/http"
	"github.com/cperrin88/geofetch/pkg/metadata"
	"github.com/cperrin88/geofetch/pkg/orchestrator"
	"github.com/cperrin88/geofetch/pkg/runner"
	"github.com/spf13/afero"
)

// EnvConfigFile passes the configuration file to the completion callback.
const EnvConfigFile = "GEOFETCH_CONFIG"

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
	NoColor    *bool
)

// loadConfig loads the configuration and initializes logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	initLogging(cfg)
	return cfg, nil
}

// initLogging applies the log settings of cfg and the global flags.
func initLogging(cfg *config.Config) {
	opts := logger.Options{Level: cfg.Settings.LogLevel, File: cfg.Settings.LogFile}
	if Verbose != nil && *Verbose {
		opts.Level = "debug"
	}
	if NoColor != nil && *NoColor {
		opts.Format = logger.FormatText
	}
	logger.Init(opts)
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		// An empty path produces a more descriptive error once the file is read
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

func loadHTTPClient(cfg *config.Config) *http.HTTPClient {
	return http.NewHTTPClient(cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent)
}

func loadCacheManager(cfg *config.Config) *cache.Manager {
	return cache.NewManager(afero.NewOsFs(), cfg.GetCacheDir())
}

func loadDownloadManager(cfg *config.Config) *download.ManagerImpl {
	return download.NewManager(cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent)
}

// loadCatalogResolver creates the resolver of the named catalog service.
func loadCatalogResolver(cfg *config.Config, service string) (*catalog.Resolver, error) {
	svc, err := catalog.NewService(service, cfg.CatalogURL(service), loadHTTPClient(cfg))
	if err != nil {
		return nil, err
	}
	return catalog.NewResolver(svc, loadCacheManager(cfg)), nil
}

// loadScripts registers the hook scripts of the hooks directory and the
// configured post-download script.
func loadScripts(cfg *config.Config) (hooks.HookManager, error) {
	scripts := hooks.NewHookManager()
	if cfg.Settings.HooksDir != "" {
		if err := hooks.LoadHooksFromDir(scripts, cfg.Settings.HooksDir); err != nil {
			return nil, err
		}
	}
	if cfg.Settings.PostDownloadScript != "" {
		if err := hooks.LoadHookFile(scripts, hooks.PostDownload, cfg.Settings.PostDownloadScript); err != nil {
			return nil, err
		}
	}
	return scripts, nil
}

func loadExtractor(cfg *config.Config) *metadata.Extractor {
	return metadata.NewExtractor(runner.NewExecRunner(), cfg.Settings.StatsTool)
}

// loadOrchestrator wires the orchestrator from cfg. Progress events are
// printed to stdout.
func loadOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, error) {
	scripts, err := loadScripts(cfg)
	if err != nil {
		return nil, err
	}

	hks := orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
		switch {
		case e.Msg != "" && e.ID != "":
			fmt.Printf("%s: %s (%s)\n", e.Phase, e.Msg, e.ID)
		case e.ID != "":
			fmt.Printf("%s: %s\n", e.Phase, e.ID)
		default:
			fmt.Printf("%s\n", e.Phase)
		}
	}}

	orch := orchestrator.New(runner.NewExecRunner(), loadDownloadManager(cfg), loadExtractor(cfg), scripts, hks)
	orch.TransferTool = cfg.Settings.TransferTool
	orch.UserAgent = cfg.Settings.UserAgent
	orch.Self = selfPath()
	if ConfigPath != nil && *ConfigPath != "" {
		if abs, err := filepath.Abs(*ConfigPath); err == nil {
			orch.Env = []string{EnvConfigFile + "=" + abs}
		}
	}
	return orch, nil
}

// selfPath returns the absolute path of the running executable for the
// transfer tool's completion callback.
func selfPath() string {
	exe, err := os.Executable()
	if err != nil {
		logger.Warn("Failed to determine executable path", logger.Fields{"error": err})
		return os.Args[0]
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		return resolved
	}
	return exe
}
