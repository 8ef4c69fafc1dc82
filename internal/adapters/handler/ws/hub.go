package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/poll/live/internal/core/domain"
	"github.com/poll/live/internal/core/ports"
)

type inbound struct {
	client *Client
	env    Envelope
}

// Hub is the broadcast coordinator. A single run loop owns every client
// registration and inbound event, so actions are applied one at a time and
// every global update reflects a fully committed mutation.
type Hub struct {
	tally    ports.TallyService
	catalog  ports.CatalogService
	identity ports.IdentityService
	history  ports.HistoryService
	gate     ports.SessionGate
	bootID   int64

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	inbound    chan inbound

	handlers map[string]func(context.Context, *Client, json.RawMessage)
}

func NewHub(
	tally ports.TallyService,
	catalog ports.CatalogService,
	identity ports.IdentityService,
	history ports.HistoryService,
	gate ports.SessionGate,
	bootID int64,
) *Hub {
	h := &Hub{
		tally:      tally,
		catalog:    catalog,
		identity:   identity,
		history:    history,
		gate:       gate,
		bootID:     bootID,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inbound, 64),
	}
	h.handlers = map[string]func(context.Context, *Client, json.RawMessage){
		eventAdminLogin:    h.handleAdminLogin,
		eventVote:          h.handleVote,
		eventNewVoting:     h.handleNewVoting,
		eventUpdateOptions: h.handleUpdateOptions,
		eventEditCard:      h.handleEditCard,
		eventSaveUser:      h.handleSaveUser,
		eventFindUser:      h.handleFindUser,
		eventGetHistory:    h.handleGetHistory,
		eventGetUsers:      h.handleGetUsers,
	}
	return h
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.sendInit(ctx, client)

		case client := <-h.unregister:
			h.drop(client)

		case msg := <-h.inbound:
			if !h.clients[msg.client] {
				continue
			}
			if msg.env.Event == "" {
				h.reply(msg.client, eventVoteError, "invalid message")
				continue
			}
			handler, ok := h.handlers[msg.env.Event]
			if !ok {
				h.reply(msg.client, eventVoteError, "unknown event")
				continue
			}
			handler(ctx, msg.client, msg.env.Data)

		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return
		}
	}
}

func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.gate.Revoke(client.id)
}

type initPayload struct {
	Options   []domain.Option `json:"options"`
	Results   domain.Results  `json:"results"`
	VotingURL string          `json:"votingUrl"`
	BootID    int64           `json:"bootId"`
}

func (h *Hub) sendInit(ctx context.Context, client *Client) {
	options, err := h.catalog.List(ctx)
	if err != nil {
		log.Printf("failed to list options: %v", err)
		return
	}
	results, err := h.tally.Results(ctx)
	if err != nil {
		log.Printf("failed to compute results: %v", err)
		return
	}
	h.reply(client, eventInit, initPayload{
		Options:   options,
		Results:   results,
		VotingURL: client.votingURL,
		BootID:    h.bootID,
	})
}

// reply sends a private frame to one connection.
func (h *Hub) reply(client *Client, event string, data any) {
	msg, err := encode(event, data)
	if err != nil {
		log.Printf("failed to encode %s: %v", event, err)
		return
	}
	select {
	case client.send <- msg:
	default:
		h.drop(client)
	}
}

// broadcast fans a frame out to every connection, the originator included.
func (h *Hub) broadcast(event string, data any) {
	msg, err := encode(event, data)
	if err != nil {
		log.Printf("failed to encode %s: %v", event, err)
		return
	}
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			h.drop(client)
		}
	}
}

func (h *Hub) broadcastResults(ctx context.Context) {
	results, err := h.tally.Results(ctx)
	if err != nil {
		log.Printf("failed to compute results: %v", err)
		return
	}
	h.broadcast(eventUpdateResults, results)
}

// --- Event handlers ---

type adminLoginResult struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (h *Hub) handleAdminLogin(_ context.Context, client *Client, data json.RawMessage) {
	var password string
	if err := json.Unmarshal(data, &password); err != nil {
		h.reply(client, eventAdminLoginResult, adminLoginResult{Ok: false, Error: "invalid payload"})
		return
	}
	if !h.gate.Authenticate(client.id, password) {
		h.reply(client, eventAdminLoginResult, adminLoginResult{Ok: false, Error: "wrong password"})
		return
	}
	h.reply(client, eventAdminLoginResult, adminLoginResult{Ok: true})
}

type votePayload struct {
	OptionID int    `json:"optionId"`
	UserID   string `json:"userId"`
}

func (h *Hub) handleVote(ctx context.Context, client *Client, data json.RawMessage) {
	var payload votePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.reply(client, eventVoteError, "invalid payload")
		return
	}

	if err := h.tally.CastVote(ctx, payload.UserID, payload.OptionID); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownIdentity),
			errors.Is(err, domain.ErrAlreadyVoted),
			errors.Is(err, domain.ErrUnknownOption):
			h.reply(client, eventVoteError, err.Error())
		default:
			log.Printf("vote failed: %v", err)
			h.reply(client, eventVoteError, "vote failed")
		}
		return
	}

	h.broadcastResults(ctx)
	h.reply(client, eventVoteSuccess, "Thanks for your vote!")
}

func (h *Hub) handleNewVoting(ctx context.Context, client *Client, _ json.RawMessage) {
	if !h.gate.IsPrivileged(client.id) {
		h.reply(client, eventVoteError, domain.ErrForbidden.Error())
		return
	}

	if _, err := h.tally.Reset(ctx); err != nil {
		log.Printf("reset failed: %v", err)
		h.reply(client, eventVoteError, "reset failed")
		return
	}

	h.broadcastResults(ctx)
	h.broadcast(eventNewVotingStarted, nil)
}

func (h *Hub) handleUpdateOptions(ctx context.Context, client *Client, data json.RawMessage) {
	if !h.gate.IsPrivileged(client.id) {
		h.reply(client, eventVoteError, domain.ErrForbidden.Error())
		return
	}

	var options []domain.Option
	if err := json.Unmarshal(data, &options); err != nil {
		h.reply(client, eventVoteError, "invalid payload")
		return
	}

	if err := h.catalog.ReplaceAll(ctx, options); err != nil {
		h.reply(client, eventVoteError, err.Error())
		return
	}

	h.broadcastOptions(ctx)
	h.broadcastResults(ctx)
}

type editCardPayload struct {
	CardID int    `json:"cardId"`
	Title  string `json:"title"`
	Image  string `json:"image"`
}

type cardEditedResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Hub) handleEditCard(ctx context.Context, client *Client, data json.RawMessage) {
	if !h.gate.IsPrivileged(client.id) {
		h.reply(client, eventVoteError, domain.ErrForbidden.Error())
		return
	}

	var payload editCardPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.reply(client, eventVoteError, "invalid payload")
		return
	}

	if err := h.catalog.EditOption(ctx, payload.CardID, payload.Title, payload.Image); err != nil {
		if errors.Is(err, domain.ErrOptionNotFound) {
			h.reply(client, eventCardEdited, cardEditedResult{Success: false, Message: "Card not found"})
			return
		}
		log.Printf("edit card failed: %v", err)
		h.reply(client, eventCardEdited, cardEditedResult{Success: false, Message: "edit failed"})
		return
	}

	h.broadcastOptions(ctx)
	h.reply(client, eventCardEdited, cardEditedResult{Success: true, Message: "Card updated"})
}

func (h *Hub) broadcastOptions(ctx context.Context) {
	options, err := h.catalog.List(ctx)
	if err != nil {
		log.Printf("failed to list options: %v", err)
		return
	}
	h.broadcast(eventOptionsUpdated, options)
}

type userSavedResult struct {
	Success bool         `json:"success"`
	UserID  string       `json:"userId,omitempty"`
	User    *domain.User `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

func (h *Hub) handleSaveUser(ctx context.Context, client *Client, data json.RawMessage) {
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		h.reply(client, eventUserSaved, userSavedResult{Success: false, Message: "invalid payload"})
		return
	}

	id, err := h.identity.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProfile) {
			h.reply(client, eventUserSaved, userSavedResult{Success: false, Message: err.Error()})
			return
		}
		log.Printf("save user failed: %v", err)
		h.reply(client, eventUserSaved, userSavedResult{Success: false, Message: "save failed"})
		return
	}

	h.reply(client, eventUserSaved, userSavedResult{Success: true, UserID: id, User: &user})
}

type findUserPayload struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

type userFoundResult struct {
	Success bool         `json:"success"`
	UserID  string       `json:"userId,omitempty"`
	User    *domain.User `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

func (h *Hub) handleFindUser(ctx context.Context, client *Client, data json.RawMessage) {
	var payload findUserPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.reply(client, eventUserFound, userFoundResult{Success: false, Message: "invalid payload"})
		return
	}

	id, user, err := h.identity.FindByName(ctx, payload.Name, payload.Surname)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.reply(client, eventUserFound, userFoundResult{Success: false, Message: "User not found"})
			return
		}
		log.Printf("find user failed: %v", err)
		h.reply(client, eventUserFound, userFoundResult{Success: false, Message: "lookup failed"})
		return
	}

	h.reply(client, eventUserFound, userFoundResult{Success: true, UserID: id, User: &user})
}

func (h *Hub) handleGetHistory(ctx context.Context, client *Client, _ json.RawMessage) {
	history, err := h.history.All(ctx)
	if err != nil {
		log.Printf("failed to load history: %v", err)
		return
	}
	h.reply(client, eventHistoryData, history)
}

func (h *Hub) handleGetUsers(ctx context.Context, client *Client, _ json.RawMessage) {
	users, err := h.identity.All(ctx)
	if err != nil {
		log.Printf("failed to load users: %v", err)
		return
	}
	h.reply(client, eventUsersData, users)
}
