package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PlaceOrRef is the wire-polymorphic place field of an activity: either a
// bare place identifier (reference) or an embedded place object. Exactly one
// of Ref/Place is set after unmarshaling.
type PlaceOrRef struct {
	Ref   string
	Place *Place
}

// IsRef reports whether the value is an unresolved reference.
func (p PlaceOrRef) IsRef() bool {
	return p.Place == nil
}

func (p *PlaceOrRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		p.Place = nil
		return json.Unmarshal(data, &p.Ref)
	}
	place := &Place{}
	if err := json.Unmarshal(data, place); err != nil {
		return err
	}
	p.Ref = ""
	p.Place = place
	return nil
}

func (p PlaceOrRef) MarshalJSON() ([]byte, error) {
	if p.Place != nil {
		return json.Marshal(p.Place)
	}
	return json.Marshal(p.Ref)
}

type Activity struct {
	Time     string     `json:"time"`
	Category string     `json:"category"`
	Place    PlaceOrRef `json:"place"`
}

type Day struct {
	DayNumber  int        `json:"day_number"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

type TravelPlan struct {
	TotalDays int   `json:"total_days"`
	Days      []Day `json:"days"`
}

// ChatRequest is the inbound message shape accepted by the chat endpoint.
type ChatRequest struct {
	Message   string     `json:"message"`
	Context   string     `json:"context,omitempty"`
	SessionID *uuid.UUID `json:"session_id,omitempty"`
}

// ChatResponse always carries Message and Timestamp; exactly one of Places
// or TravelPlan is the payload depending on the classified intent.
// SessionID is echoed back only when history tracking is active.
type ChatResponse struct {
	SessionID  *uuid.UUID  `json:"session_id,omitempty"`
	Message    string      `json:"message"`
	Places     []Place     `json:"places,omitempty"`
	TravelPlan *TravelPlan `json:"travel_plan,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// GenAIChatResult is the structured payload parsed out of the generative
// backend's response.
type GenAIChatResult struct {
	Message    string      `json:"message"`
	Places     []Place     `json:"places,omitempty"`
	TravelPlan *TravelPlan `json:"travel_plan,omitempty"`
}

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type ConversationMessage struct {
	ID        uuid.UUID       `json:"id"`
	Role      MessageRole     `json:"role"`
	Content   string          `json:"content"`
	Payload   json.RawMessage `json:"payload,omitempty"` // serialized ChatResponse for assistant turns
	Timestamp time.Time       `json:"timestamp"`
}
