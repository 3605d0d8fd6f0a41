package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory holding config, database and logs.
const AppDir = ".tile2048"

// LocalConfigPath is the project-local config file checked after the user file.
const LocalConfigPath = "configs/game.yaml"

// Load reads the game configuration.
// Search order: customPath -> ~/.tile2048/config.yaml -> ./configs/game.yaml -> embedded default.
// Files are layered over the defaults, so a file may set only the keys it changes.
// A custom path that cannot be read or parsed is an error; the other locations are optional.
func Load(customPath string) (GameConfig, string, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		cfg = DefaultGameConfig()
	}

	if customPath != "" {
		if err := loadFile(customPath, &cfg); err != nil {
			return cfg, "", err
		}
		return cfg, customPath, nil
	}

	for _, path := range []string{UserPath("config.yaml"), LocalConfigPath} {
		if path == "" {
			continue
		}
		next := cfg
		if err := loadFile(path, &next); err == nil {
			return next, path, nil
		}
	}

	return cfg, "", nil
}

func loadFile(path string, cfg *GameConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// UserPath returns a path inside ~/.tile2048, or empty if home is unavailable.
func UserPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// LoadEnv loads the first .env file found among paths into the process
// environment. Variables already set are not overridden.
// Returns the loaded file, or empty when none exists.
func LoadEnv(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = []string{".env", UserPath(".env")}
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		err := godotenv.Load(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}
	return "", nil
}

// ApplyEnv overrides cfg with TILE2048_* environment variables.
func ApplyEnv(cfg *GameConfig) error {
	var errs []error

	setInt := func(key string, dst *int) {
		if v, ok := lookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	setString := func(key string, dst *string) {
		if v, ok := lookupEnv(key); ok {
			*dst = v
		}
	}

	setInt("ROWS", &cfg.Board.Rows)
	setInt("COLS", &cfg.Board.Cols)
	setInt("WIN_TILE", &cfg.Board.WinTile)
	setInt("FPS", &cfg.Play.FPS)
	setString("MODE", &cfg.Play.Mode)
	setString("DIFFICULTY", &cfg.Play.Difficulty)
	setString("DB_PATH", &cfg.Storage.DBPath)
	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("LOG_FILE", &cfg.Log.File)

	if v, ok := lookupEnv("SPAWN4_CHANCE"); ok {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSPAWN4_CHANCE: %w", EnvPrefix, err))
		} else {
			cfg.Board.Spawn4Chance = p
		}
	}
	if v, ok := lookupEnv("SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", EnvPrefix, err))
		} else {
			cfg.Play.Seed = seed
		}
	}
	if v, ok := lookupEnv("ANIMATION"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sANIMATION: %w", EnvPrefix, err))
		} else {
			cfg.Animation.Enabled = enabled
		}
	}

	return errors.Join(errs...)
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Marshal renders cfg as YAML.
func Marshal(cfg GameConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
