// Package toml persists the active scope selection to a TOML file in
// the user's state directory, one entry per scope kind. Selections
// survive restarts within the same profile.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/nlegrand-dev/obslens/internal/domain"
	"github.com/nlegrand-dev/obslens/internal/ports"
)

const (
	configName         = "config"
	configType         = "toml"
	selectionPathKey   = "state.selection_path"
	selectionFileMode  = 0o600
	selectionDirMode   = 0o700
	selectionConfigDir = ".obslens"
	selectionFile      = "selection.toml"
	tempFilePattern    = ".selection-*.toml.tmp"
)

type Store struct {
	selectionPath string
	mu            *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SelectionStore = (*Store)(nil)

func NewStore(cfg *viper.Viper) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, selectionConfigDir, selectionFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, selectionConfigDir))
	cfg.SetDefault(selectionPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	selectionPath := cfg.GetString(selectionPathKey)
	if selectionPath == "" {
		return nil, errors.New("selection path is empty")
	}
	selectionPath, err = normalizePath(selectionPath)
	if err != nil {
		return nil, err
	}

	return &Store{selectionPath: selectionPath, mu: lockForPath(selectionPath)}, nil
}

func (s *Store) Get(ctx context.Context, kind domain.ScopeKind) (domain.ScopeID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return "", err
	}

	id, err := entryFor(&file, kind)
	if err != nil {
		return "", err
	}
	if *id == "" {
		return "", domain.ErrSelectionNotFound
	}

	return domain.ScopeID(*id), nil
}

func (s *Store) Put(ctx context.Context, kind domain.ScopeKind, id domain.ScopeID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}

	entry, err := entryFor(&file, kind)
	if err != nil {
		return err
	}
	*entry = string(id)

	return s.writeSchema(file)
}

func (s *Store) Clear(ctx context.Context, kind domain.ScopeKind) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}

	entry, err := entryFor(&file, kind)
	if err != nil {
		return err
	}
	*entry = ""

	return s.writeSchema(file)
}

func entryFor(file *fileSchema, kind domain.ScopeKind) (*string, error) {
	switch kind {
	case domain.ScopeKindProject:
		return &file.Selection.CurrentProjectID, nil
	case domain.ScopeKindTeam:
		return &file.Selection.CurrentTeamID, nil
	default:
		return nil, fmt.Errorf("unknown scope kind %q", kind)
	}
}

func (s *Store) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(s.selectionPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read selection file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode selection file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (s *Store) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(s.selectionPath), selectionDirMode); err != nil {
		return fmt.Errorf("create selection directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode selection file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.selectionPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp selection file: %w", err)
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
		return fmt.Errorf("write temp selection file: %w", err)
	}

	if err := tempFile.Chmod(selectionFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp selection file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp selection file: %w", err)
	}

	if err := os.Rename(tempName, s.selectionPath); err != nil {
		return fmt.Errorf("replace selection file: %w", err)
	}

	cleanup = false

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve selection path: %w", err)
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
