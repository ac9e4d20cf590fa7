package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	configName      = "config"
	configType      = "toml"
	settingsPathKey = "settings.path"

	settingsFileMode = 0o600
	settingsDirMode  = 0o700

	configDirName    = "quota-sentinel"
	settingsFileName = "settings.toml"
	tempFilePattern  = ".settings-*.toml.tmp"
)

// Store reads and writes the settings file. Writes go through a temp file
// and rename so a crash never leaves a half-written config behind.
type Store struct {
	path string
	mu   *sync.RWMutex
	log  *logrus.Logger
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

// NewStore resolves the settings file location. The default is settings.toml
// under the user config directory; an optional config.toml next to it (key
// "settings.path") or an explicit viper key can move it.
func NewStore(cfg *viper.Viper, log *logrus.Logger) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user config directory: %w", err)
	}

	defaultPath := filepath.Join(configDir, configDirName, settingsFileName)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(configDir, configDirName))
	cfg.SetDefault(settingsPathKey, defaultPath)

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	path := cfg.GetString(settingsPathKey)
	if path == "" {
		return nil, errors.New("settings path is empty")
	}
	path, err = normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &Store{path: path, mu: lockForPath(path), log: log}, nil
}

// Path returns the resolved settings file location.
func (s *Store) Path() string { return s.path }

// Load reads the settings file. A missing file yields defaults; a file with
// invalid values yields defaults too, with a warning, so a hand-edited file
// can never wedge the monitor.
func (s *Store) Load() (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("read settings file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return Settings{}, fmt.Errorf("decode settings file: %w", err)
	}

	loaded := fromSchema(file)
	if err := loaded.Validate(); err != nil {
		s.log.WithError(err).Warn("invalid settings on disk, using defaults")
		return Default(), nil
	}
	return loaded, nil
}

// Save validates and atomically writes the settings file.
func (s *Store) Save(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), settingsDirMode); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	data, err := toml.Marshal(toSchema(settings))
	if err != nil {
		return fmt.Errorf("encode settings file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp settings file: %w", err)
	}
	if err := tempFile.Chmod(settingsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp settings file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp settings file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	cleanup = false

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}
	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
