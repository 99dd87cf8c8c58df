package session

import "encoding/json"

// Fragment is one streamed piece of an answer.
type Fragment struct {
	Data string `json:"data"`
}

// SSE frames the fragment as a server-sent event carrying a JSON payload.
// Stream completion is signalled by channel closure, not a sentinel frame.
func (f Fragment) SSE() string {
	payload, _ := json.Marshal(f)
	return "data: " + string(payload) + "\n\n"
}
