package webhook

// StatusCallback is the provider's delivery-status payload. Current accounts
// send data.message; older accounts send the flat data.status/message_id
// shape. Both are accepted.
type StatusCallback struct {
	Type string       `json:"type"`
	Data CallbackData `json:"data"`
}

type CallbackData struct {
	Message *CallbackMessage `json:"message"`

	// legacy shape
	Status    string `json:"status"`
	MessageID string `json:"message_id"`
}

type CallbackMessage struct {
	ID            string `json:"id"`
	MessageStatus string `json:"message_status"`
}

// extract returns (messageID, status, ok) from whichever shape was sent
func (p *StatusCallback) extract() (string, string, bool) {
	if p.Data.Message != nil && p.Data.Message.ID != "" && p.Data.Message.MessageStatus != "" {
		return p.Data.Message.ID, p.Data.Message.MessageStatus, true
	}
	if p.Data.MessageID != "" && p.Data.Status != "" {
		return p.Data.MessageID, p.Data.Status, true
	}
	return "", "", false
}
