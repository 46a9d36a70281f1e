package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fast/internal/modules/settings/domain"
	settingsout "fast/internal/modules/settings/port/out"
	apperrors "fast/internal/platform/errors"
)

type YAMLSettingsStore struct {
	path string
}

func NewYAMLSettingsStore(path string) settingsout.Store {
	return &YAMLSettingsStore{path: path}
}

func (s *YAMLSettingsStore) Load(_ context.Context) (domain.Settings, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Default(), nil
		}
		return domain.Settings{}, fmt.Errorf("%w: read settings: %v", apperrors.ErrStorage, err)
	}
	settings := domain.Default()
	if err := yaml.Unmarshal(payload, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("%w: decode settings: %v", apperrors.ErrStorage, err)
	}
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

func (s *YAMLSettingsStore) Save(_ context.Context, settings domain.Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: create settings dir: %v", apperrors.ErrStorage, err)
	}
	payload, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: encode settings: %v", apperrors.ErrStorage, err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("%w: write settings: %v", apperrors.ErrStorage, err)
	}
	return nil
}
