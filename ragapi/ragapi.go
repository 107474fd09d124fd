// Package ragapi implements [docchat.Provider] for the retrieval-chat
// backend's HTTP API.
//
// The streaming route replies with newline-delimited lines of the form
// "data: {json}"; each JSON payload carries a content fragment, a done
// signal, or an error. Lines without the data prefix and payloads that
// fail to parse are skipped. The parser emits semantic events through the
// pull-based [docchat.Stream] interface.
package ragapi

import "github.com/amartinez/docchat"

const (
	streamPath  = "/stream"
	messagePath = "/message"
	healthPath  = "/health"

	dataPrefix = "data: "
)

// apiRequest is the JSON body sent to the chat routes. The user's new
// question appears both in Message and as the trailing history entry; the
// backend may ignore either copy.
type apiRequest struct {
	Message             string                 `json:"message"`
	ConversationHistory []docchat.HistoryEntry `json:"conversation_history"`
}

// streamPayload is one decoded data line. The backend's error payloads
// also carry done=true and a rendered chunk; Error takes precedence.
type streamPayload struct {
	Chunk string `json:"chunk"`
	Done  bool   `json:"done"`
	Error string `json:"error"`
}

// messageResponse is the body of the non-streaming message route.
type messageResponse struct {
	Response string `json:"response"`
	Success  bool   `json:"success"`
}

// healthResponse is the body of the health route.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
