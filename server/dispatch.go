package server

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/swipectl/swipectl/events"
)

// HandlerFunc is the signature for JSON-RPC method handlers.
type HandlerFunc func(params json.RawMessage) (interface{}, error)

// methodRegistry maps method names to handler functions. It is used by both
// the HTTP endpoint and the WebSocket endpoint.
func (s *Server) methodRegistry() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"status":          s.handleStatus,
		"config":          s.handleConfig,
		"trigger":         s.handleTrigger,
		"server.shutdown": s.handleShutdown,
	}
}

func (s *Server) handleStatus(params json.RawMessage) (interface{}, error) {
	return map[string]interface{}{
		"instanceId": s.instanceID,
		"version":    Version,
		"pid":        os.Getpid(),
		"uptime":     int(time.Since(s.startedAt).Seconds()),
	}, nil
}

func (s *Server) handleConfig(params json.RawMessage) (interface{}, error) {
	actionNames := make(map[string][]string)
	for name, specs := range s.settings.Actions {
		rendered := make([]string, 0, len(specs))
		for _, spec := range specs {
			rendered = append(rendered, spec.String())
		}
		actionNames[name] = rendered
	}

	return map[string]interface{}{
		"device":             s.settings.Device,
		"threshold":          s.settings.Threshold,
		"invertX":            s.settings.InvertX,
		"invertY":            s.settings.InvertY,
		"enabledActionKinds": s.settings.EnabledActionKinds,
		"actions":            actionNames,
	}, nil
}

// TriggerParams represents the parameters for the trigger request
type TriggerParams struct {
	Event string `json:"event"`
}

// handleTrigger injects a named action event, executing its registered
// actions as if the matching swipe had been performed.
func (s *Server) handleTrigger(params json.RawMessage) (interface{}, error) {
	var triggerParams TriggerParams
	if err := json.Unmarshal(params, &triggerParams); err != nil {
		return nil, fmt.Errorf("invalid parameters: %v", err)
	}

	event, err := events.ParseActionEvent(triggerParams.Event)
	if err != nil {
		return nil, err
	}

	s.dispatcher.Trigger(event)

	return map[string]interface{}{
		"message": fmt.Sprintf("triggered %s", event),
	}, nil
}

func (s *Server) handleShutdown(params json.RawMessage) (interface{}, error) {
	// reply first, then stop accepting connections
	go s.Shutdown()
	return map[string]interface{}{"status": "ok"}, nil
}
