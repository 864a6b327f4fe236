package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ShayCichocki/atlas/pkg/models"
)

// AgentProfile holds per-agent model settings loaded from YAML.
type AgentProfile struct {
	// Model overrides the default model for this agent, if set.
	Model string `yaml:"model"`
	// Temperature is the sampling temperature for generation steps.
	Temperature float64 `yaml:"temperature"`
	// MaxTokens caps the response length, 0 means the backend default.
	MaxTokens int `yaml:"max_tokens"`
}

// AgentProfiles holds the profile for each agent, keyed by lowercase
// agent name (planner, notewriter, advisor).
type AgentProfiles struct {
	Agents map[string]AgentProfile `yaml:"agents"`
}

// Get returns the profile for the given agent, falling back to the
// zero profile when none is configured.
func (p *AgentProfiles) Get(id models.AgentID) AgentProfile {
	if p == nil || p.Agents == nil {
		return AgentProfile{}
	}
	return p.Agents[id.Key()]
}

// LoadAgentProfiles loads agent profiles from a YAML file.
func LoadAgentProfiles(path string) (*AgentProfiles, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	profiles := &AgentProfiles{}
	if err := yaml.Unmarshal(raw, profiles); err != nil {
		return nil, fmt.Errorf("unmarshaling %s: %w", path, err)
	}

	return profiles, nil
}

// DefaultAgentProfiles returns hardcoded default agent profiles.
// This is used as a fallback when the YAML file is not available.
func DefaultAgentProfiles() *AgentProfiles {
	return &AgentProfiles{
		Agents: map[string]AgentProfile{
			models.AgentPlanner.Key(): {
				Temperature: 0.5,
			},
			models.AgentNoteWriter.Key(): {
				Temperature: 0,
			},
			models.AgentAdvisor.Key(): {
				Temperature: 0,
			},
		},
	}
}
