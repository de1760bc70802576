package config

import (
	"fmt"

	"github.com/watchfire-io/wallboard/internal/models"
)

// LoadRoster loads the seed agents from ~/.wallboard/roster.yaml.
// If the file doesn't exist, returns the built-in sample roster.
func LoadRoster() (*models.Roster, error) {
	path, err := GlobalRosterFile()
	if err != nil {
		return nil, err
	}
	roster, err := LoadYAMLOrDefault(path, models.NewRoster)
	if err != nil {
		return nil, err
	}
	if err := ValidateRoster(roster); err != nil {
		return nil, fmt.Errorf("invalid roster %s: %w", path, err)
	}
	return roster, nil
}

// SaveRoster writes the roster to ~/.wallboard/roster.yaml.
func SaveRoster(roster *models.Roster) error {
	if err := ValidateRoster(roster); err != nil {
		return err
	}
	path, err := GlobalRosterFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, roster)
}

// ValidateRoster checks that names are present and unique and every status is valid.
func ValidateRoster(roster *models.Roster) error {
	seen := make(map[string]bool, len(roster.Agents))
	for i, a := range roster.Agents {
		if a.Name == "" {
			return fmt.Errorf("agent %d has no name", i+1)
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate agent name %q", a.Name)
		}
		seen[a.Name] = true
		if !a.Status.Valid() {
			return fmt.Errorf("agent %q has invalid status %q", a.Name, a.Status)
		}
	}
	return nil
}
