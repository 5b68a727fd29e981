package mentor

import "github.com/alumnx/mentor-api/internal/domain"

// SelectRoute maps loaded user context to a response strategy. The
// order matters: an empty goal list always wins, even when an active
// task exists — a user without goals is prompted for them before
// anything else.
func SelectRoute(goals []string, activeTask *domain.Task) Route {
	if len(goals) == 0 {
		return RouteAskGoals
	}
	if activeTask != nil {
		return RouteQueryTask
	}
	return RouteGeneralChat
}
