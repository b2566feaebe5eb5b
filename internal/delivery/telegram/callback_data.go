package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionTopic  = "topic"  // topic:<topic index>
	actionAnswer = "answer" // answer:<topic index>:<option index>
	actionExit   = "exit"   // exit:<topic index>
	actionMenu   = "menu"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// Topics are referenced by catalog position: topic names may be longer than
// the 64 bytes Telegram allows for callback data.
func buildTopicCallback(topicIdx int) string {
	return callbackData{
		Action: actionTopic,
		Params: []string{strconv.Itoa(topicIdx)},
	}.encode()
}

func buildAnswerCallback(topicIdx, optionIdx int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{strconv.Itoa(topicIdx), strconv.Itoa(optionIdx)},
	}.encode()
}

func buildExitCallback(topicIdx int) string {
	return callbackData{
		Action: actionExit,
		Params: []string{strconv.Itoa(topicIdx)},
	}.encode()
}

func buildMenuCallback() string {
	return actionMenu
}
