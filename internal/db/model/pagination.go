package model

import (
	"encoding/base64"
	"encoding/json"
)

// EventPaginationToken points at the last event of a page. Events are listed
// newest first by commit sequence.
type EventPaginationToken struct {
	Sequence int64 `json:"sequence"`
}

func BuildEventPaginationToken(doc *LedgerEventDocument) (string, error) {
	raw, err := json.Marshal(EventPaginationToken{Sequence: doc.Sequence})
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

func DecodeEventPaginationToken(token string) (*EventPaginationToken, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}
	var t EventPaginationToken
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// After reports whether doc sorts after the token position.
func (t *EventPaginationToken) After(doc *LedgerEventDocument) bool {
	return doc.Sequence < t.Sequence
}
