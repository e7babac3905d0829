/*
Package core provides the agent factory registry.
*/
package core

import (
	"sync"

	"github.com/josephgoksu/codecrew/internal/llm"
)

// AgentFactory creates an Agent with the given LLM config.
type AgentFactory func(cfg llm.Config) Agent

// AgentInfo describes an agent for the registry.
type AgentInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type agentRegistration struct {
	factory AgentFactory
	info    AgentInfo
}

var (
	registrations   = make(map[string]agentRegistration)
	registrationIDs []string // registration order, which is pipeline order
	registrationsMu sync.RWMutex
)

// RegisterAgent registers a factory with display metadata.
// Re-registering an ID replaces it in place.
func RegisterAgent(id string, factory AgentFactory, name, description string) {
	registrationsMu.Lock()
	defer registrationsMu.Unlock()
	if _, exists := registrations[id]; !exists {
		registrationIDs = append(registrationIDs, id)
	}
	registrations[id] = agentRegistration{
		factory: factory,
		info:    AgentInfo{ID: id, Name: name, Description: description},
	}
}

// CreateAgent creates an agent by ID using the registered factory.
func CreateAgent(id string, cfg llm.Config) Agent {
	registrationsMu.RLock()
	defer registrationsMu.RUnlock()
	if reg, ok := registrations[id]; ok {
		return reg.factory(cfg)
	}
	return nil
}

// Registry returns metadata for all registered agents in pipeline order.
func Registry() []AgentInfo {
	registrationsMu.RLock()
	defer registrationsMu.RUnlock()
	infos := make([]AgentInfo, 0, len(registrationIDs))
	for _, id := range registrationIDs {
		infos = append(infos, registrations[id].info)
	}
	return infos
}

// GetAgentByID returns agent info by ID.
func GetAgentByID(id string) *AgentInfo {
	registrationsMu.RLock()
	defer registrationsMu.RUnlock()
	if reg, ok := registrations[id]; ok {
		info := reg.info
		return &info
	}
	return nil
}
