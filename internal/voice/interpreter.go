// Package voice maps free-text transcripts to controller commands and
// carries the speech output capability. The interpreter is a fixed keyword
// matcher, not an NLU model: precision over recall for a small command
// vocabulary spoken in a hands-busy kitchen.
package voice

import "strings"

// Command types produced by the interpreter.
const (
	CommandStart  = "start"
	CommandPause  = "pause"
	CommandNext   = "next"
	CommandRepeat = "repeat"
	CommandQuery  = "query"
)

// Query targets.
const (
	TargetTime        = "time"
	TargetTemperature = "temperature"
)

// Command is a parsed voice command. Target is set only for CommandQuery.
type Command struct {
	Type   string `json:"type"`
	Target string `json:"target,omitempty"`
}

// phraseRule matches any of its phrases as a substring of the transcript.
type phraseRule struct {
	phrases []string
	command Command
}

// Rules are checked in priority order; the first match wins.
var rules = []phraseRule{
	{[]string{"开始", "继续"}, Command{Type: CommandStart}},
	{[]string{"暂停", "停止"}, Command{Type: CommandPause}},
	{[]string{"下一步", "下一个"}, Command{Type: CommandNext}},
	{[]string{"重复", "再说一遍"}, Command{Type: CommandRepeat}},
	{[]string{"多久", "还有"}, Command{Type: CommandQuery, Target: TargetTime}},
	{[]string{"温度"}, Command{Type: CommandQuery, Target: TargetTemperature}},
}

// Parse converts a transcript into a command, or nil when nothing in the
// vocabulary matches. Callers must ignore a nil result.
func Parse(transcript string) *Command {
	text := strings.ToLower(strings.TrimSpace(transcript))
	if text == "" {
		return nil
	}
	for _, rule := range rules {
		for _, phrase := range rule.phrases {
			if strings.Contains(text, phrase) {
				cmd := rule.command
				return &cmd
			}
		}
	}
	return nil
}
