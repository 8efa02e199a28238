package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"commentsweep/config"
	"commentsweep/core"
	"commentsweep/database"
	"commentsweep/logger"
)

var (
	cfgFile         string
	dbPath          string // Bound to --dbpath flag
	appLogPathFlag  string
	scanLogPathFlag string
	logLevelFlag    string
)

// Helper function to expand tilde in this package too
func expandTildeCmd(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

var rootCmd = &cobra.Command{
	Use:   "commentsweep",
	Short: "Classify source comments and plan safe removals",
	Long: `commentsweep extracts the comments from source files, classifies each one
(documentation, redundant, commented-out code, debug leftovers, and so on),
and builds offset-exact removal plans for the ones not worth keeping.

Run 'commentsweep scan <path>' to analyze a tree, 'commentsweep clean' to
apply removals, or 'commentsweep server' to expose the analyzer over HTTP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize config first, passing flag values for logging config
		if err := config.Init(cfgFile, appLogPathFlag, scanLogPathFlag, logLevelFlag); err != nil {
			return fmt.Errorf("failed to initialize config in PersistentPreRunE: %w", err)
		}

		finalDBPath := dbPath
		configDBPath := config.AppConfig.Database.Path

		if finalDBPath != "" {
			expandedPath, err := expandTildeCmd(finalDBPath)
			if err != nil {
				logger.Error("Error expanding tilde in --dbpath flag '%s': %v. Using original.", finalDBPath, err)
			} else {
				finalDBPath = expandedPath
			}
		} else {
			finalDBPath = configDBPath
			// Config files may carry a literal '~' too.
			expandedPath, err := expandTildeCmd(finalDBPath)
			if err != nil {
				logger.Error("Error expanding tilde in config DB path '%s': %v. Using original.", finalDBPath, err)
			} else {
				finalDBPath = expandedPath
			}
		}

		if finalDBPath == "" {
			logger.Error("PersistentPreRunE: Database path is empty after checking flag and config! Falling back to 'commentsweep.db' in CWD.")
			finalDBPath = "commentsweep.db"
		}

		if err := database.InitDB(finalDBPath); err != nil {
			return fmt.Errorf("failed to initialize database at %s: %w", finalDBPath, err)
		}

		// Custom profiles extend the built-in registry. A malformed profile
		// file aborts startup rather than silently running without it.
		profilesPath := config.AppConfig.Scanner.ProfilesPath
		if profilesPath != "" {
			n, err := core.LoadProfilesFile(profilesPath)
			if err != nil {
				return fmt.Errorf("failed to load language profiles from %s: %w", profilesPath, err)
			}
			if n > 0 {
				logger.Info("Loaded %d custom language profiles from %s", n, profilesPath)
			}
		}

		isSuppressedCmd := false
		if cmd.Name() == "completion" ||
			cmd.Name() == cobra.ShellCompRequestCmd ||
			cmd.Name() == cobra.ShellCompNoDescRequestCmd {
			isSuppressedCmd = true
		}

		if !isSuppressedCmd {
			logger.Debug("Database initialized at: %s (from rootCmd PersistentPreRunE)", finalDBPath)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/commentsweep/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "dbpath", "", "path to SQLite database file (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&appLogPathFlag, "app-log", "", "path for the application log file (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&scanLogPathFlag, "scan-log", "", "path for the scan log file (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: DEBUG, INFO, ERROR (overrides config/default)")
}
