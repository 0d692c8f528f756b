// Package boardapi defines the BoardService RPC contract: procedure names,
// request and response messages, and the Connect handler and client
// constructors. Messages are plain structs carried with a JSON codec.
package boardapi

// ServiceName is the fully-qualified name of the board service.
const ServiceName = "msgboard.v1.BoardService"

// Procedure paths.
const (
	ListGroupsProcedure   = "/" + ServiceName + "/ListGroups"
	CreateGroupProcedure  = "/" + ServiceName + "/CreateGroup"
	SelectGroupProcedure  = "/" + ServiceName + "/SelectGroup"
	ListMessagesProcedure = "/" + ServiceName + "/ListMessages"
	AddMessageProcedure   = "/" + ServiceName + "/AddMessage"
	EditMessageProcedure  = "/" + ServiceName + "/EditMessage"
)

type Message struct {
	Id        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type Group struct {
	Id       string     `json:"id"`
	Title    string     `json:"title"`
	Messages []*Message `json:"messages"`
}

type ListGroupsRequest struct {
	Query string `json:"query,omitempty"`
}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type CreateGroupRequest struct {
	Title string `json:"title"`
	// Messages is a comma-separated list of initial messages.
	Messages string `json:"messages,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type SelectGroupRequest struct {
	GroupId string `json:"group_id"`
}

type SelectGroupResponse struct {
	Title    string     `json:"title"`
	Messages []*Message `json:"messages"`
}

type ListMessagesRequest struct {
	GroupId string `json:"group_id"`
	Query   string `json:"query,omitempty"`
}

type ListMessagesResponse struct {
	Messages []*Message `json:"messages"`
}

type AddMessageRequest struct {
	GroupId string `json:"group_id"`
	Text    string `json:"text"`
}

type AddMessageResponse struct {
	Message *Message `json:"message"`
}

type EditMessageRequest struct {
	GroupId   string `json:"group_id"`
	MessageId string `json:"message_id"`
	Text      string `json:"text"`
}

type EditMessageResponse struct {
	Message *Message `json:"message"`
}
