package agent

import (
	"admissions-ai-be/internal/constant"
)

// Registry is the immutable label-to-agent table built once at startup.
type Registry struct {
	agents map[constant.AgentLabel]Agent
}

func NewRegistry(agents ...Agent) *Registry {
	table := make(map[constant.AgentLabel]Agent, len(agents))
	for _, a := range agents {
		table[a.Label()] = a
	}
	return &Registry{agents: table}
}

// Get resolves a label to its agent, falling back to the default agent for
// anything unregistered.
func (r *Registry) Get(label constant.AgentLabel) Agent {
	if a, ok := r.agents[label]; ok {
		return a
	}
	return r.agents[constant.LabelDefault]
}
