package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"github.com/tubby124/Deal-Analyzer/internal/analyzer"
	"github.com/tubby124/Deal-Analyzer/internal/config"
	"github.com/tubby124/Deal-Analyzer/internal/mliselect"
	"github.com/tubby124/Deal-Analyzer/internal/server"
	"github.com/tubby124/Deal-Analyzer/pkg/constants"
	"github.com/tubby124/Deal-Analyzer/pkg/output"
	"github.com/tubby124/Deal-Analyzer/pkg/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via -ldflags.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "start the HTTP server instead of a one-shot analysis")
	addr := flag.String("addr", "", "HTTP listen address override")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	switch outputFormat {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
	default:
		logger.Fatal(fmt.Sprintf("invalid output format: %s", outputFormat),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if *serve {
		runServer(logger, conf, *addr)
		return
	}

	if conf.Deal == nil && conf.MliSelect == nil {
		logger.Fatal("configuration has no deal or mliSelect section to analyze",
			zap.String("op", "main"),
		)
	}

	if conf.Deal != nil {
		renderDeal(logger, outputFormat, *conf.Deal)
	}
	if conf.MliSelect != nil {
		renderMliSelect(logger, outputFormat, *conf.MliSelect)
	}
}

func renderDeal(logger *zap.Logger, outputFormat string, inputs analyzer.DealInputs) {
	metrics := analyzer.AnalyzeScenarios(inputs)

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, metrics)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, metrics)
	case constants.OutputFormatJSON:
		writeJSON(logger, metrics)
	}
}

func renderMliSelect(logger *zap.Logger, outputFormat string, inputs mliselect.Inputs) {
	result := mliselect.Underwrite(inputs)

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyMliFormat(os.Stdout, result)
	case constants.OutputFormatCSV:
		output.CsvMliFormat(os.Stdout, result)
	case constants.OutputFormatJSON:
		writeJSON(logger, result)
	}
}

func writeJSON(logger *zap.Logger, payload interface{}) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		logger.Fatal("failed to encode results",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	fmt.Println(string(data))
}

func runServer(logger *zap.Logger, conf *config.Configuration, addrOverride string) {
	address := conf.Server.Address
	if addrOverride != "" {
		address = addrOverride
	}
	if address == "" {
		address = constants.DefaultServerAddress
	}

	maxUploadSize := conf.Server.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	var scenarios *store.Store
	if conf.Server.ScenarioDir != "" {
		var err error
		scenarios, err = store.New(afero.NewOsFs(), conf.Server.ScenarioDir)
		if err != nil {
			logger.Fatal("failed to prepare scenario storage",
				zap.String("op", "main"),
				zap.String("dir", conf.Server.ScenarioDir),
				zap.Error(err),
			)
		}
	}

	handler := server.NewHandler(logger, maxUploadSize, version, scenarios)

	logger.Info("starting HTTP server",
		zap.String("op", "main"),
		zap.String("address", address),
		zap.String("version", version),
	)
	if err := http.ListenAndServe(address, handler); err != nil {
		logger.Fatal("HTTP server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
