package ws

import "encoding/json"

// Envelope is the wire frame exchanged with clients in both directions:
// an event name plus an event-specific JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound event names.
const (
	eventAdminLogin    = "adminLogin"
	eventVote          = "vote"
	eventNewVoting     = "newVoting"
	eventUpdateOptions = "updateOptions"
	eventEditCard      = "editCard"
	eventSaveUser      = "saveUser"
	eventFindUser      = "findUser"
	eventGetHistory    = "getHistory"
	eventGetUsers      = "getUsers"
)

// Outbound event names.
const (
	eventInit             = "init"
	eventAdminLoginResult = "adminLoginResult"
	eventUpdateResults    = "updateResults"
	eventVoteSuccess      = "voteSuccess"
	eventVoteError        = "voteError"
	eventNewVotingStarted = "newVotingStarted"
	eventOptionsUpdated   = "optionsUpdated"
	eventCardEdited       = "cardEdited"
	eventUserSaved        = "userSaved"
	eventUserFound        = "userFound"
	eventHistoryData      = "historyData"
	eventUsersData        = "usersData"
)

func encode(event string, data any) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}
