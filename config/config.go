package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"commentsweep/logger"
	"commentsweep/models"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tidwall/gjson"
)

type DefaultPaths struct {
	ConfigDir    string
	LogPathApp   string
	LogPathScan  string
	DBPath       string
	ProfilesPath string
	LogLevel     string
}

type Configuration struct {
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Server struct {
		Port    string `mapstructure:"port"`
		LogPath string `mapstructure:"log_path"`
	} `mapstructure:"server"`
	Scanner struct {
		Threshold            float64  `mapstructure:"threshold"`
		Categories           []string `mapstructure:"categories"`
		MaxFileSizeBytes     int64    `mapstructure:"max_file_size_bytes"`
		Workers              int      `mapstructure:"workers"`
		ProfilesPath         string   `mapstructure:"profiles_path"`
		LogPath              string   `mapstructure:"log_path"`
		WatchIntervalSeconds int      `mapstructure:"watch_interval_seconds"`
	} `mapstructure:"scanner"`
	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`
	Editor struct {
		Enabled      bool   `mapstructure:"enabled"`
		SettingsPath string `mapstructure:"settings_path"`
	} `mapstructure:"editor"`
}

var AppConfig Configuration

func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func GetDefaultConfigPaths() DefaultPaths {
	var paths DefaultPaths
	userConfigDirBase, err := os.UserConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not get user config dir: %v. Using current directory.\n", err)
		userConfigDirBase = "."
	}

	userConfigDir, err := expandTilde(userConfigDirBase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in user config dir '%s': %v. Using potentially literal path.\n", userConfigDirBase, err)
		userConfigDir = userConfigDirBase
	}

	paths.ConfigDir = filepath.Join(userConfigDir, "commentsweep")
	logDir := filepath.Join(paths.ConfigDir, "logs")

	paths.LogPathApp = filepath.Join(logDir, "app.log")
	paths.LogPathScan = filepath.Join(logDir, "scan.log")
	paths.DBPath = filepath.Join(paths.ConfigDir, "commentsweep.db")
	paths.ProfilesPath = filepath.Join(paths.ConfigDir, "profiles.yaml")
	paths.LogLevel = "INFO"
	return paths
}

func Init(cfgFile string, flagAppLogPath, flagScanLogPath, flagLogLevel string) error {
	v := viper.New()

	defaults := GetDefaultConfigPaths()
	v.SetDefault("database.path", defaults.DBPath)
	v.SetDefault("server.port", "8655")
	v.SetDefault("server.log_path", defaults.LogPathApp)
	v.SetDefault("scanner.threshold", models.DefaultConfidenceThreshold)
	v.SetDefault("scanner.categories", []string{})
	v.SetDefault("scanner.max_file_size_bytes", models.DefaultMaxFileSizeBytes)
	v.SetDefault("scanner.workers", 0) // 0 means one worker per CPU
	v.SetDefault("scanner.profiles_path", defaults.ProfilesPath)
	v.SetDefault("scanner.log_path", defaults.LogPathScan)
	v.SetDefault("scanner.watch_interval_seconds", 30)
	v.SetDefault("logging.level", defaults.LogLevel)
	v.SetDefault("editor.enabled", true)
	v.SetDefault("editor.settings_path", filepath.Join(".vscode", "settings.json"))

	if cfgFile != "" {
		expandedCfgFile, err := expandTilde(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in config file path '%s': %v. Trying original path.\n", cfgFile, err)
			expandedCfgFile = cfgFile
		}
		v.SetConfigFile(expandedCfgFile)
		v.SetConfigType("yaml")
	} else {
		v.AddConfigPath(defaults.ConfigDir)
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Could not load .env file: %v\n", err)
	}
	v.AutomaticEnv()
	v.SetEnvPrefix("SWEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	configUsedMsg := "Using default/environment configuration."
	readErr := v.ReadInConfig()
	if readErr == nil {
		configUsedMsg = fmt.Sprintf("Using config file: %s", v.ConfigFileUsed())
	} else {
		if _, ok := readErr.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				fmt.Fprintf(os.Stderr, "Warning: Config file specified by flag (%s) not found: %v\n", cfgFile, readErr)
			} else {
				fmt.Fprintln(os.Stderr, "No default config file found. Using defaults/environment variables.")
			}
		} else {
			fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", v.ConfigFileUsed(), readErr)
		}
	}

	if err := v.Unmarshal(&AppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Error unmarshalling configuration: %v\n", err)
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Apply flag overrides
	if flagAppLogPath != "" {
		expandedPath, err := expandTilde(flagAppLogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in --app-log path '%s': %v. Using original path.\n", flagAppLogPath, err)
			AppConfig.Server.LogPath = flagAppLogPath
		} else {
			AppConfig.Server.LogPath = expandedPath
		}
	}
	if flagScanLogPath != "" {
		expandedPath, err := expandTilde(flagScanLogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in --scan-log path '%s': %v. Using original path.\n", flagScanLogPath, err)
			AppConfig.Scanner.LogPath = flagScanLogPath
		} else {
			AppConfig.Scanner.LogPath = expandedPath
		}
	}
	if flagLogLevel != "" {
		AppConfig.Logging.Level = strings.ToUpper(flagLogLevel)
	}

	// Expand tilde for paths read from config that might contain it
	var err error
	AppConfig.Database.Path, err = expandTilde(AppConfig.Database.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in database.path '%s': %v.\n", AppConfig.Database.Path, err)
	}
	AppConfig.Scanner.ProfilesPath, err = expandTilde(AppConfig.Scanner.ProfilesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in scanner.profiles_path '%s': %v.\n", AppConfig.Scanner.ProfilesPath, err)
	}

	normalizeScannerSettings()

	// Ensure directories exist
	if err := os.MkdirAll(filepath.Dir(AppConfig.Server.LogPath), 0750); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not create final app log directory %s: %v\n", filepath.Dir(AppConfig.Server.LogPath), err)
	}
	if err := os.MkdirAll(filepath.Dir(AppConfig.Scanner.LogPath), 0750); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not create final scan log directory %s: %v\n", filepath.Dir(AppConfig.Scanner.LogPath), err)
	}
	if err := os.MkdirAll(defaults.ConfigDir, 0750); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not create main config directory %s: %v\n", defaults.ConfigDir, err)
	}

	// Initialize/Re-initialize loggers
	if err := logger.InitGlobalLoggers(AppConfig.Server.LogPath, AppConfig.Scanner.LogPath, AppConfig.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Failed to initialize global loggers with final config: %v\n", err)
		return fmt.Errorf("failed to initialize global loggers with final config: %w", err)
	}

	logger.Info(configUsedMsg)
	if readErr != nil && cfgFile != "" {
		logger.Error("Error occurred reading specified config file '%s': %v", cfgFile, readErr)
	}
	if flagAppLogPath != "" || flagScanLogPath != "" || flagLogLevel != "" {
		logger.Info("Log path/level flags may have overridden config file/defaults.")
	}

	if AppConfig.Editor.Enabled {
		applyEditorSettings(AppConfig.Editor.SettingsPath)
	} else {
		logger.Info("Editor settings overlay DISABLED.")
	}

	logger.Debug("Final AppConfig Initialized: %+v", AppConfig)
	return nil
}

// normalizeScannerSettings clamps out-of-range scanner values back to their
// defaults so a bad config file cannot poison every later analysis.
func normalizeScannerSettings() {
	if AppConfig.Scanner.Threshold < 0 || AppConfig.Scanner.Threshold > 1 {
		fmt.Fprintf(os.Stderr, "Warning: scanner.threshold %.2f out of range [0,1]. Using default %.2f.\n",
			AppConfig.Scanner.Threshold, models.DefaultConfidenceThreshold)
		AppConfig.Scanner.Threshold = models.DefaultConfidenceThreshold
	}
	if AppConfig.Scanner.Threshold == 0 {
		AppConfig.Scanner.Threshold = models.DefaultConfidenceThreshold
	}
	if AppConfig.Scanner.MaxFileSizeBytes < 0 {
		AppConfig.Scanner.MaxFileSizeBytes = models.DefaultMaxFileSizeBytes
	}
	if AppConfig.Scanner.Workers < 0 {
		AppConfig.Scanner.Workers = 0
	}
	if AppConfig.Scanner.WatchIntervalSeconds <= 0 {
		AppConfig.Scanner.WatchIntervalSeconds = 30
	}
}

// applyEditorSettings overlays workspace editor settings (VS Code style
// settings.json) onto the scanner configuration. Keys use the extension's
// namespace, e.g. "commentsweep.confidenceThreshold": 0.7. A missing file is
// normal; a malformed one is logged and ignored.
func applyEditorSettings(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("Could not read editor settings file '%s': %v", path, err)
		}
		return
	}
	if !gjson.ValidBytes(data) {
		logger.Error("Editor settings file '%s' is not valid JSON. Ignoring.", path)
		return
	}

	if r := gjson.GetBytes(data, `commentsweep\.confidenceThreshold`); r.Exists() {
		t := r.Float()
		if t >= 0 && t <= 1 {
			AppConfig.Scanner.Threshold = t
			logger.Info("Editor settings: confidence threshold overridden to %.2f", t)
		} else {
			logger.Error("Editor settings: confidenceThreshold %.2f out of range [0,1]. Ignoring.", t)
		}
	}
	if r := gjson.GetBytes(data, `commentsweep\.enabledCategories`); r.Exists() && r.IsArray() {
		var cats []string
		for _, item := range r.Array() {
			if s := strings.TrimSpace(item.String()); s != "" {
				cats = append(cats, s)
			}
		}
		AppConfig.Scanner.Categories = cats
		logger.Info("Editor settings: enabled categories overridden to %v", cats)
	}
	if r := gjson.GetBytes(data, `commentsweep\.maxFileSizeBytes`); r.Exists() {
		if n := r.Int(); n > 0 {
			AppConfig.Scanner.MaxFileSizeBytes = n
			logger.Info("Editor settings: max file size overridden to %d bytes", n)
		}
	}
	logger.Debug("Editor settings overlay applied from %s", path)
}
