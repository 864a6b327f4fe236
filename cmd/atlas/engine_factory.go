package main

import (
	"log"
	"path/filepath"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ShayCichocki/atlas/internal/agents"
	"github.com/ShayCichocki/atlas/internal/api"
	"github.com/ShayCichocki/atlas/internal/config"
	"github.com/ShayCichocki/atlas/internal/data"
	"github.com/ShayCichocki/atlas/internal/state"
	"github.com/ShayCichocki/atlas/pkg/models"
)

// createClient builds the Anthropic client from the loaded configuration.
func createClient(cfg *config.Config) (*api.Client, error) {
	// Bedrock authenticates through the AWS credential chain, so a
	// missing API key is only fatal for the direct API path.
	apiKey, _ := config.GetAPIKey(cfg)

	return api.NewClient(api.ClientConfig{
		Model:         anthropic.Model(cfg.Anthropic.Model),
		APIKey:        apiKey,
		UseAWSBedrock: cfg.Anthropic.UseBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
	})
}

// loadDataManager loads the student data files named in the config.
// Missing or malformed files leave the manager empty rather than
// aborting: the agents degrade to generic answers without data.
func loadDataManager(cfg *config.Config) *data.Manager {
	mgr := data.NewManager()
	if err := mgr.LoadFiles(cfg.Data.ProfilePath, cfg.Data.CalendarPath, cfg.Data.TasksPath); err != nil {
		log.Printf("[atlas] student data not loaded: %v", err)
	}
	return mgr
}

// agentOptions loads per-agent overrides from configs/agents.yaml.
// Agents absent from the file keep their built-in settings; an agent
// naming a model or token cap of its own generates through a client
// derived from the shared one.
func agentOptions(client *api.Client) []agents.RegistryOption {
	profiles, err := config.LoadAgentProfiles(filepath.Join("configs", "agents.yaml"))
	if err != nil {
		return nil
	}

	ids := map[string]models.AgentID{
		models.AgentPlanner.Key():    models.AgentPlanner,
		models.AgentNoteWriter.Key(): models.AgentNoteWriter,
		models.AgentAdvisor.Key():    models.AgentAdvisor,
	}

	var opts []agents.RegistryOption
	for key, profile := range profiles.Agents {
		id, ok := ids[key]
		if !ok {
			log.Printf("[atlas] ignoring unknown agent profile %q", key)
			continue
		}
		opts = append(opts, agents.WithTemperature(id, profile.Temperature))
		if profile.Model != "" || profile.MaxTokens > 0 {
			derived := client.ForAgent(anthropic.Model(profile.Model), int64(profile.MaxTokens))
			opts = append(opts, agents.WithGenerator(id, derived))
		}
	}
	return opts
}

// newSessionState builds the shared context for a conversation.
func newSessionState(mgr *data.Manager, studentID string, history []models.Message) *state.State {
	return state.New(history, mgr.StudentProfile(studentID), mgr.Calendar(), mgr.Tasks())
}

// resolveStudentID applies the --student flag over the configured ID.
func resolveStudentID(cfg *config.Config) string {
	if rootStudentID != "" {
		return rootStudentID
	}
	return cfg.Student.ID
}
