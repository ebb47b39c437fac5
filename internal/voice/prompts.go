package voice

import (
	"fmt"

	"smartchef/internal/models"
)

// Fixed lifecycle prompts.
const (
	PromptCookingStarted = "烹饪开始，请按照步骤操作"
	PromptCookingPaused  = "烹饪已暂停"
	PromptCookingResumed = "继续烹饪"
	PromptAllComplete    = "恭喜，所有菜品已完成"
	PromptNoTemperature  = "当前步骤没有温度要求"
)

// StepPrompt announces the current task's name and expected duration.
func StepPrompt(task models.CookingTask) string {
	return fmt.Sprintf("当前步骤：%s，预计%d分钟", task.Name, task.Duration)
}

// RemindPrompt warns that a task has the given minutes left.
func RemindPrompt(task models.CookingTask, remaining int) string {
	return fmt.Sprintf("请注意，%s还有%d分钟", task.Name, remaining)
}

// CompletePrompt announces a finished task.
func CompletePrompt(task models.CookingTask) string {
	return fmt.Sprintf("%s已完成，请进行下一步", task.Name)
}

// RemainingPrompt answers a "how long" query.
func RemainingPrompt(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("还需要约%d分钟", minutes)
}

// TemperaturePrompt answers a temperature query for the current task.
func TemperaturePrompt(task models.CookingTask) string {
	if task.Temperature <= 0 {
		return PromptNoTemperature
	}
	return fmt.Sprintf("%s需要%.0f度", task.Name, task.Temperature)
}
