package mentor

import (
	"strings"
	"testing"

	"github.com/alumnx/mentor-api/internal/domain"
)

func TestBuildPromptWithContext(t *testing.T) {
	task := &domain.Task{Title: "Ship Y", Status: domain.TaskStatusInProgress}
	prompt := BuildPrompt([]string{"Learn X", "Build a portfolio"}, task, "what should I do next?")

	for _, want := range []string{
		"You are a helpful learning mentor and project assistant.",
		"**User's Learning Goals:**",
		"1. Learn X",
		"2. Build a portfolio",
		"**Current Active Task:**",
		"- Ship Y",
		"- Status: in_progress",
		"Keep responses concise but informative.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\nprompt:\n%s", want, prompt)
		}
	}

	if !strings.HasSuffix(prompt, "**User asks:** what should I do next?") {
		t.Errorf("prompt should end with the verbatim user message, got:\n%s", prompt)
	}
}

func TestBuildPromptPlaceholders(t *testing.T) {
	prompt := BuildPrompt(nil, nil, "hello")

	if !strings.Contains(prompt, "- No goals set yet") {
		t.Errorf("expected goals placeholder, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- No active tasks") {
		t.Errorf("expected task placeholder, got:\n%s", prompt)
	}
}

func TestBuildPromptUntitledTask(t *testing.T) {
	prompt := BuildPrompt([]string{"Learn X"}, &domain.Task{Status: domain.TaskStatusPending}, "hi")

	if !strings.Contains(prompt, "- Untitled task") {
		t.Errorf("expected untitled task fallback, got:\n%s", prompt)
	}
}
