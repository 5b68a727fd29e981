package mentor

import (
	"fmt"
	"strings"

	"github.com/alumnx/mentor-api/internal/domain"
)

// Canned replies for the non-model strategies and for model failure.
const (
	askGoalsReply = "What are your learning goals?"

	generalReply = "How can I help you today?"

	apologyReply = "I apologize, but I'm having trouble processing your request right now. " +
		"Please try again in a moment."
)

// BuildPrompt assembles the mentor prompt: a persona preamble, the
// user's goals as a numbered list, the active task with its status,
// a fixed instruction block, and the verbatim user message.
func BuildPrompt(goals []string, activeTask *domain.Task, message string) string {
	var b strings.Builder

	b.WriteString("You are a helpful learning mentor and project assistant.\n")
	b.WriteString("\n**User's Learning Goals:**\n")
	if len(goals) > 0 {
		for i, goal := range goals {
			fmt.Fprintf(&b, "%d. %s\n", i+1, goal)
		}
	} else {
		b.WriteString("- No goals set yet\n")
	}

	b.WriteString("\n**Current Active Task:**\n")
	if activeTask != nil {
		title := activeTask.Title
		if title == "" {
			title = "Untitled task"
		}
		fmt.Fprintf(&b, "- %s\n", title)
		fmt.Fprintf(&b, "- Status: %s\n", activeTask.Status)
	} else {
		b.WriteString("- No active tasks\n")
	}

	b.WriteString("\nProvide helpful, encouraging, and actionable guidance to help the user achieve their goals.\n")
	b.WriteString("Keep responses concise but informative.\n")

	fmt.Fprintf(&b, "\n**User asks:** %s", message)
	return b.String()
}
