package boardapi

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// BoardServiceHandler is implemented by the server.
type BoardServiceHandler interface {
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	SelectGroup(context.Context, *connect.Request[SelectGroupRequest]) (*connect.Response[SelectGroupResponse], error)
	ListMessages(context.Context, *connect.Request[ListMessagesRequest]) (*connect.Response[ListMessagesResponse], error)
	AddMessage(context.Context, *connect.Request[AddMessageRequest]) (*connect.Response[AddMessageResponse], error)
	EditMessage(context.Context, *connect.Request[EditMessageRequest]) (*connect.Response[EditMessageResponse], error)
}

// NewBoardServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewBoardServiceHandler(svc BoardServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(opts, connect.WithCodec(JSONCodec{}))

	listGroups := connect.NewUnaryHandler(ListGroupsProcedure, svc.ListGroups, opts...)
	createGroup := connect.NewUnaryHandler(CreateGroupProcedure, svc.CreateGroup, opts...)
	selectGroup := connect.NewUnaryHandler(SelectGroupProcedure, svc.SelectGroup, opts...)
	listMessages := connect.NewUnaryHandler(ListMessagesProcedure, svc.ListMessages, opts...)
	addMessage := connect.NewUnaryHandler(AddMessageProcedure, svc.AddMessage, opts...)
	editMessage := connect.NewUnaryHandler(EditMessageProcedure, svc.EditMessage, opts...)

	return "/" + ServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ListGroupsProcedure:
			listGroups.ServeHTTP(w, r)
		case CreateGroupProcedure:
			createGroup.ServeHTTP(w, r)
		case SelectGroupProcedure:
			selectGroup.ServeHTTP(w, r)
		case ListMessagesProcedure:
			listMessages.ServeHTTP(w, r)
		case AddMessageProcedure:
			addMessage.ServeHTTP(w, r)
		case EditMessageProcedure:
			editMessage.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
