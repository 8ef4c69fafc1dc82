package ws

import (
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests to websocket connections and hands them to
// the hub.
type Handler struct {
	hub       *Hub
	publicURL string
	upgrader  websocket.Upgrader
}

// NewHandler builds the upgrade handler. publicURL, when non-empty,
// overrides the voting URL derived from request headers.
func NewHandler(hub *Hub, publicURL string) *Handler {
	return &Handler{
		hub:       hub,
		publicURL: publicURL,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Participants join from phones on the local network; the page
			// itself may be served from a proxied host.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	votingURL := h.publicURL
	if votingURL == "" {
		votingURL = publicBaseURL(r)
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		id:        uuid.NewString(),
		votingURL: votingURL,
		hub:       h.hub,
		conn:      conn,
		send:      make(chan []byte, 256),
	}
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// publicBaseURL reconstructs the externally visible address of this server,
// trusting reverse-proxy forwarding headers when present.
func publicBaseURL(r *http.Request) string {
	proto := strings.TrimSpace(strings.Split(r.Header.Get("X-Forwarded-Proto"), ",")[0])
	if proto == "" {
		proto = "http"
		if r.TLS != nil {
			proto = "https"
		}
	}

	host := strings.TrimSpace(strings.Split(r.Header.Get("X-Forwarded-Host"), ",")[0])
	if host == "" {
		host = r.Host
	}
	if host == "" {
		return "http://localhost"
	}

	return proto + "://" + host
}
