package models

// Response is what the front-end receives for one request: the agents
// that were required and the consolidated output map keyed by the
// lowercased agent ID.
type Response struct {
	// Agents lists the agents the coordinator required for this request.
	Agents []AgentID `json:"agents"`
	// Outputs maps each executed agent's key to its payload.
	Outputs map[string]any `json:"outputs"`
}
