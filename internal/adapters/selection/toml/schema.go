package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version   int             `toml:"version"`
	Selection selectionSchema `toml:"selection"`
}

type selectionSchema struct {
	CurrentProjectID string `toml:"current_project_id,omitempty"`
	CurrentTeamID    string `toml:"current_team_id,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported selection schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}
