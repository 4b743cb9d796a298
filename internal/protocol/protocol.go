// Package protocol defines the JSON messages exchanged between the match
// server and remote clients.
package protocol

import (
	"encoding/json"
	"time"
)

// MessageType identifies a WebSocket message with type safety.
type MessageType string

const (
	// Client to server messages
	TypeHello   MessageType = "hello"
	TypeAction  MessageType = "action"
	TypeResume  MessageType = "resume"
	TypeNewHand MessageType = "new_hand"

	// Server to client messages
	TypeWelcome        MessageType = "welcome"
	TypeActionRequired MessageType = "action_required"
	TypeHandStarted    MessageType = "hand_started"
	TypePotUpdated     MessageType = "pot_updated"
	TypeHoleCards      MessageType = "hole_cards"
	TypeCommunityCards MessageType = "community_cards"
	TypeNPCAction      MessageType = "npc_action"
	TypeShowdown       MessageType = "showdown"
	TypeHandEnded      MessageType = "hand_ended"
	TypeGameOver       MessageType = "game_over"
	TypeError          MessageType = "error"
)

func (mt MessageType) String() string { return string(mt) }

// Message is the base WebSocket envelope.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage wraps a payload in an envelope stamped with the current time.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// DecodeData unpacks the payload into the given struct.
func (m *Message) DecodeData(v interface{}) error {
	return json.Unmarshal(m.Data, v)
}

// Client → Server payloads

type HelloData struct {
	PlayerName string `json:"playerName"`
}

type ActionData struct {
	Action    string `json:"action"`
	Amount    int    `json:"amount,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
}

// Server → Client payloads

type WelcomeData struct {
	PlayerName  string `json:"playerName"`
	SmallBlind  int    `json:"smallBlind"`
	BigBlind    int    `json:"bigBlind"`
	PlayerStack int    `json:"playerStack"`
	NPCStack    int    `json:"npcStack"`
	Personality string `json:"personality"`
}

type ValidActionInfo struct {
	CanCheck   bool `json:"canCheck"`
	CallAmount int  `json:"callAmount"`
	CanRaise   bool `json:"canRaise"`
	RaiseMin   int  `json:"raiseMin"`
	RaiseMax   int  `json:"raiseMax"`
}

type ActionRequiredData struct {
	Valid      ValidActionInfo `json:"validActions"`
	Pot        int             `json:"pot"`
	CurrentBet int             `json:"currentBet"`
	Stack      int             `json:"stack"`
	HoleCards  []string        `json:"holeCards"`
	Board      []string        `json:"board"`
}

type HandStartedData struct {
	PlayerStack int    `json:"playerStack"`
	NPCStack    int    `json:"npcStack"`
	Dealer      string `json:"dealer"`
}

type PotUpdatedData struct {
	Pot int `json:"pot"`
}

type HoleCardsData struct {
	Cards []string `json:"cards"`
}

type CommunityCardsData struct {
	Street string   `json:"street"`
	Board  []string `json:"board"`
}

type NPCActionData struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

type ShowdownData struct {
	PlayerHand string   `json:"playerHand"`
	NPCHand    string   `json:"npcHand"`
	PlayerWon  bool     `json:"playerWon"`
	Tied       bool     `json:"tied"`
	Pot        int      `json:"pot"`
	Board      []string `json:"board"`
}

type HandEndedData struct {
	Winner string `json:"winner"`
	Tied   bool   `json:"tied"`
	Pot    int    `json:"pot"`
}

type GameOverData struct {
	Winner      string `json:"winner"`
	PlayerStack int    `json:"playerStack"`
	NPCStack    int    `json:"npcStack"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
