package boardapi

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// BoardServiceClient calls a remote BoardService.
type BoardServiceClient struct {
	listGroups   *connect.Client[ListGroupsRequest, ListGroupsResponse]
	createGroup  *connect.Client[CreateGroupRequest, CreateGroupResponse]
	selectGroup  *connect.Client[SelectGroupRequest, SelectGroupResponse]
	listMessages *connect.Client[ListMessagesRequest, ListMessagesResponse]
	addMessage   *connect.Client[AddMessageRequest, AddMessageResponse]
	editMessage  *connect.Client[EditMessageRequest, EditMessageResponse]
}

// NewBoardServiceClient creates a client for the service at baseURL
// (e.g., http://localhost:8080).
func NewBoardServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BoardServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append(opts, connect.WithCodec(JSONCodec{}))
	return &BoardServiceClient{
		listGroups:   connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+ListGroupsProcedure, opts...),
		createGroup:  connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+CreateGroupProcedure, opts...),
		selectGroup:  connect.NewClient[SelectGroupRequest, SelectGroupResponse](httpClient, baseURL+SelectGroupProcedure, opts...),
		listMessages: connect.NewClient[ListMessagesRequest, ListMessagesResponse](httpClient, baseURL+ListMessagesProcedure, opts...),
		addMessage:   connect.NewClient[AddMessageRequest, AddMessageResponse](httpClient, baseURL+AddMessageProcedure, opts...),
		editMessage:  connect.NewClient[EditMessageRequest, EditMessageResponse](httpClient, baseURL+EditMessageProcedure, opts...),
	}
}

func (c *BoardServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *BoardServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *BoardServiceClient) SelectGroup(ctx context.Context, req *connect.Request[SelectGroupRequest]) (*connect.Response[SelectGroupResponse], error) {
	return c.selectGroup.CallUnary(ctx, req)
}

func (c *BoardServiceClient) ListMessages(ctx context.Context, req *connect.Request[ListMessagesRequest]) (*connect.Response[ListMessagesResponse], error) {
	return c.listMessages.CallUnary(ctx, req)
}

func (c *BoardServiceClient) AddMessage(ctx context.Context, req *connect.Request[AddMessageRequest]) (*connect.Response[AddMessageResponse], error) {
	return c.addMessage.CallUnary(ctx, req)
}

func (c *BoardServiceClient) EditMessage(ctx context.Context, req *connect.Request[EditMessageRequest]) (*connect.Response[EditMessageResponse], error) {
	return c.editMessage.CallUnary(ctx, req)
}
