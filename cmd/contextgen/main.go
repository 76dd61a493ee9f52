package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Harsha9198/openai-helper/internal/config"
	"github.com/Harsha9198/openai-helper/internal/fscontext"
	"github.com/Harsha9198/openai-helper/internal/tokenizer"
	"go.uber.org/zap"
)

var BUILD_VERSION = "dev"

var configPath = flag.String("config", "", "path to a YAML config file")
var directory = flag.String("dir", "", "root directory to scan")
var regexWhitelist = flag.String("whitelist", "", "regex for file names to include")
var regexBlacklist = flag.String("blacklist", "", "regex for file names to exclude")
var regexPathWhitelist = flag.String("path-whitelist", "", "regex for full paths to include")
var regexPathBlacklist = flag.String("path-blacklist", "", "regex for full paths to exclude")
var allowHidden = flag.Bool("hidden", false, "include dotfiles")
var model = flag.String("model", "", "model whose tokenizer encoding to use")
var chunkSize = flag.Int("chunk", 0, "bytes read per chunk")
var tokenLimit = flag.Int("limit", -1, "token budget for the generated context")
var tokensOnly = flag.Bool("tokens", false, "print the total token count instead of the context")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

const helpText = `contextgen - gather file contents as LLM context

USAGE:
  contextgen -dir <path> [options]

Scans a directory, filters files by name/path patterns, and prints a
token-budgeted concatenation of their contents suitable as model input.

OPTIONS:
`

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	logger, logLevel, err := initializeLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(logger, logLevel); err != nil {
		logger.Error("unhandled error", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(logger *zap.Logger, logLevel zap.AtomicLevel) error {
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	if cfg.LogLevel != "" {
		if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			logger.Warn("invalid log level in config", zap.String("log_level", cfg.LogLevel))
		}
	}

	if cfg.Directory == "" {
		return fmt.Errorf("no directory to scan; pass -dir or set directory in the config file")
	}

	counter := initializeCounter(cfg.Model, logger)
	defer counter.Close()

	provider, err := fscontext.New(cfg.ProviderOptions(), counter, logger)
	if err != nil {
		return err
	}

	if *tokensOnly {
		total := 0
		for record, err := range provider.Files(cfg.ReadOptions()) {
			if err != nil {
				return err
			}
			total += record.Tokens
		}
		fmt.Println(total)
		return nil
	}

	context, err := provider.ContextWith(cfg.ReadOptions())
	if err != nil {
		return err
	}
	fmt.Println(context)
	return nil
}

// loadConfig reads the config file (if any) and applies flag overrides.
func loadConfig(logger *zap.Logger) (*config.Config, error) {
	loader := config.NewLoader(logger)

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := loader.LoadFromFile(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Flags take precedence over file values, but only when set.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			cfg.Directory = *directory
		case "whitelist":
			cfg.RegexWhitelist = *regexWhitelist
		case "blacklist":
			cfg.RegexBlacklist = *regexBlacklist
		case "path-whitelist":
			cfg.RegexPathWhitelist = *regexPathWhitelist
		case "path-blacklist":
			cfg.RegexPathBlacklist = *regexPathBlacklist
		case "hidden":
			cfg.AllowHidden = *allowHidden
		case "model":
			cfg.Model = *model
		case "chunk":
			cfg.ChunkSize = *chunkSize
		case "limit":
			cfg.TokenLimit = *tokenLimit
		}
	})

	return cfg, nil
}

// initializeCounter builds the tokenizer, falling back to the chars/4
// heuristic when the model's encoding data is unavailable.
func initializeCounter(model string, logger *zap.Logger) tokenizer.Counter {
	counter, err := tokenizer.NewTiktoken(model)
	if err != nil {
		logger.Warn("tiktoken unavailable, falling back to heuristic token counting",
			zap.String("model", model),
			zap.Error(err),
		)
		return tokenizer.NewHeuristic()
	}
	return counter
}

func initializeLogger() (*zap.Logger, zap.AtomicLevel, error) {
	logLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{"stderr"}
	loggerConfig.ErrorOutputPaths = []string{"stderr"}

	logger, err := loggerConfig.Build()
	return logger, logLevel, err
}
