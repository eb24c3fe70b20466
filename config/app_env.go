package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/utils"
	"github.com/joho/godotenv"
)

const AppEnvKey = "APP_ENV"

// Environments where the server may create its own schema.
var devEnvironments = map[string]bool{
	"":            true,
	"dev":         true,
	"development": true,
	"local":       true,
	"test":        true,
	"testing":     true,
}

// envFiles lists the dotenv files to load: ENV_FILE (comma separated) or .env.
func envFiles() []string {
	raw := utils.GetEnvTrimmed("ENV_FILE")
	if raw == "" {
		return []string{".env"}
	}

	var files []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	return files
}

// InitializeEnvFile loads dotenv files without overriding variables already
// set in the process environment.
func InitializeEnvFile(logger *log.Logger) {
	if utils.GetEnvTrimmed("SKIP_DOTENV") == "true" {
		logger.Info("Skipping .env file load (SKIP_DOTENV=true)")
		return
	}

	files := envFiles()
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("No env file found; using process environment", "files", files)
			return
		}
		logger.Warn("Failed to load env file", "files", files, "error", err.Error())
		return
	}

	logger.Info("Environment variables loaded", "files", files)
}

func GetAppEnv() string {
	return normalizeAppEnv(os.Getenv(AppEnvKey))
}

func normalizeAppEnv(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// ValidateAutoMigrateAllowed keeps --auto-migrate away from shared environments;
// those run the SQL migrations through the CLI instead.
func ValidateAutoMigrateAllowed(appEnv string) error {
	env := normalizeAppEnv(appEnv)
	if devEnvironments[env] {
		return nil
	}
	return fmt.Errorf("--auto-migrate is not allowed when %s=%q; run `cli migrate up` instead", AppEnvKey, env)
}
