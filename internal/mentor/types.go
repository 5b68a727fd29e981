// Package mentor implements the context-aware response pipeline behind
// the agent chat endpoint: load the user's goals and active task, pick
// a response strategy, generate the reply and persist both sides of the
// exchange.
package mentor

import "context"

// ChatRequest is an inbound chat message.
type ChatRequest struct {
	UserID   string `json:"userId"`
	UserType string `json:"userType"`
	Message  string `json:"message"`
}

// Route labels the response strategy selected for a request.
type Route string

// Response strategies, in routing precedence order.
const (
	RouteAskGoals    Route = "ask_goals"
	RouteQueryTask   Route = "query_task"
	RouteGeneralChat Route = "general_chat"
)

// Completer generates a text completion for a prompt. Implementations
// wrap an external model API.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
