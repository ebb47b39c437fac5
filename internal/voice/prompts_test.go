package voice

import (
	"testing"

	"smartchef/internal/models"
)

func TestRemainingPrompt_ClampsNegative(t *testing.T) {
	if got := RemainingPrompt(-5); got != "还需要约0分钟" {
		t.Fatalf("expected clamped prompt, got %q", got)
	}
	if got := RemainingPrompt(12); got != "还需要约12分钟" {
		t.Fatalf("unexpected prompt: %q", got)
	}
}

func TestTemperaturePrompt_FallsBackWithoutTemperature(t *testing.T) {
	task := models.CookingTask{Name: "切菜"}
	if got := TemperaturePrompt(task); got != PromptNoTemperature {
		t.Fatalf("expected no-temperature prompt, got %q", got)
	}
	task.Temperature = 180
	if got := TemperaturePrompt(task); got != "切菜需要180度" {
		t.Fatalf("unexpected prompt: %q", got)
	}
}

func TestStepPrompt(t *testing.T) {
	task := models.CookingTask{Name: "炖煮", Duration: 30}
	if got := StepPrompt(task); got != "当前步骤：炖煮，预计30分钟" {
		t.Fatalf("unexpected prompt: %q", got)
	}
}
