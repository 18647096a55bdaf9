package cli

import (
	"strconv"
	"strings"
)

type chatAction int

const (
	actionNone chatAction = iota
	actionAsk
	actionQuit
	actionClear
	actionFAQ
	actionHistory
	actionUnknown
)

// chatInput is one parsed line of chat input.
type chatInput struct {
	action   chatAction
	question string
	command  string
}

// parseChatInput maps a line to a chat action. Lines starting with "/" are
// commands; "/N" asks the Nth frequent question. Anything else is a question.
func parseChatInput(line string, frequent []string) chatInput {
	line = strings.TrimSpace(line)
	if line == "" {
		return chatInput{action: actionNone}
	}
	if !strings.HasPrefix(line, "/") {
		return chatInput{action: actionAsk, question: line}
	}

	command := strings.ToLower(strings.Fields(line)[0])
	switch command {
	case "/quit", "/exit", "/q":
		return chatInput{action: actionQuit, command: command}
	case "/clear", "/effacer":
		return chatInput{action: actionClear, command: command}
	case "/faq":
		return chatInput{action: actionFAQ, command: command}
	case "/history", "/historique":
		return chatInput{action: actionHistory, command: command}
	}

	if n, err := strconv.Atoi(command[1:]); err == nil && n >= 1 && n <= len(frequent) {
		return chatInput{action: actionAsk, question: frequent[n-1], command: command}
	}
	return chatInput{action: actionUnknown, command: command}
}
