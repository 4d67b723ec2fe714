package messaging

import (
	"encoding/json"
	"log"
	"os"
	"sync"
)

// MessageBroadcaster pushes change notifications to whatever frontend is
// attached: SSE clients in REST mode, stdout frames in chat mode.
type MessageBroadcaster interface {
	Broadcast(message string)
}

type SSEBroadcaster struct{}

func (b *SSEBroadcaster) Broadcast(message string) {
	BroadcastSSEMessage(message)
}

type ChatBroadcaster struct{}

func (b *ChatBroadcaster) Broadcast(message string) {
	BroadcastChatMessage(message)
}

var broadcaster MessageBroadcaster

func InitBroadcaster(chatMode bool) {
	if chatMode {
		broadcaster = &ChatBroadcaster{}
	} else {
		broadcaster = &SSEBroadcaster{}
	}
}

// BroadcastMessage sends a message through the active broadcaster. A nil
// broadcaster (tests, early startup) drops the message silently.
func BroadcastMessage(message string) {
	if broadcaster != nil {
		broadcaster.Broadcast(message)
	}
}

// SSE

var (
	sseClients      = make(map[chan string]bool)
	sseClientsMutex sync.Mutex
)

func AddSSEClient(client chan string) {
	sseClientsMutex.Lock()
	sseClients[client] = true
	sseClientsMutex.Unlock()
}

func RemoveSSEClient(client chan string) {
	sseClientsMutex.Lock()
	if _, ok := sseClients[client]; ok {
		delete(sseClients, client)
		close(client)
	}
	sseClientsMutex.Unlock()
}

func BroadcastSSEMessage(message string) {
	sseClientsMutex.Lock()
	defer sseClientsMutex.Unlock()

	for client := range sseClients {
		select {
		case client <- message:
		default:
			// Slow or stuck client, drop it rather than block everyone.
			log.Printf("SSE client channel full, removing client")
			delete(sseClients, client)
			close(client)
		}
	}
}

// BroadcastChatMessage writes an event frame to stdout so the attached chat
// frontend can refresh without polling.
func BroadcastChatMessage(message string) {
	frame := struct {
		Type string      `json:"type"`
		Data interface{} `json:"data"`
	}{
		Type: "event",
		Data: message,
	}

	if err := json.NewEncoder(os.Stdout).Encode(frame); err != nil {
		log.Printf("Error sending chat event: %v", err)
	}
}
