package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/msgboard/internal/board"
	"github.com/mmynk/msgboard/internal/models"
	pb "github.com/mmynk/msgboard/pkg/boardapi"
)

// Ensure BoardService implements the handler interface
var _ pb.BoardServiceHandler = (*BoardService)(nil)

// BoardService implements the Connect BoardService on top of the group list
// and the per-group message scopes.
type BoardService struct {
	groups *board.GroupStore
	scopes *board.Scopes
}

// NewBoardService creates a BoardService and loads the group list.
// A load failure is logged and the service starts with no groups.
func NewBoardService(ctx context.Context, p board.Persistence, opts ...board.Option) *BoardService {
	s := &BoardService{
		groups: board.NewGroupStore(p, opts...),
		scopes: board.NewScopes(p, opts...),
	}
	if err := s.groups.Load(ctx); err != nil {
		slog.Error("Error loading groups", "error", err)
	} else {
		slog.Info("Groups loaded", "count", len(s.groups.Groups()))
	}
	return s
}

// ListGroups returns the groups whose title contains the query.
func (s *BoardService) ListGroups(ctx context.Context, req *connect.Request[pb.ListGroupsRequest]) (*connect.Response[pb.ListGroupsResponse], error) {
	groups := s.groups.Filter(req.Msg.Query)

	slog.Debug("ListGroups", "query", req.Msg.Query, "count", len(groups))

	protoGroups := make([]*pb.Group, len(groups))
	for i, g := range groups {
		protoGroups[i] = toProtoGroup(g)
	}
	return connect.NewResponse(&pb.ListGroupsResponse{Groups: protoGroups}), nil
}

// CreateGroup creates a group with optional comma-separated initial messages.
func (s *BoardService) CreateGroup(ctx context.Context, req *connect.Request[pb.CreateGroupRequest]) (*connect.Response[pb.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received", "title", req.Msg.Title)

	group, err := s.groups.CreateGroup(req.Msg.Title, req.Msg.Messages)
	if err != nil {
		return nil, toConnectError("CreateGroup", err)
	}

	slog.Info("Group created", "group_id", group.ID, "messages_count", len(group.Messages))
	return connect.NewResponse(&pb.CreateGroupResponse{Group: toProtoGroup(group)}), nil
}

// SelectGroup opens the group's message scope and returns what it was seeded with.
func (s *BoardService) SelectGroup(ctx context.Context, req *connect.Request[pb.SelectGroupRequest]) (*connect.Response[pb.SelectGroupResponse], error) {
	sel, err := s.groups.Select(req.Msg.GroupId)
	if err != nil {
		return nil, toConnectError("SelectGroup", err)
	}
	store, err := s.scopes.Enter(ctx, req.Msg.GroupId, sel)
	s.logLoad(store, err)

	return connect.NewResponse(&pb.SelectGroupResponse{
		Title:    sel.Title,
		Messages: toProtoMessages(sel.Seed),
	}), nil
}

// ListMessages returns the group's messages whose text contains the query.
func (s *BoardService) ListMessages(ctx context.Context, req *connect.Request[pb.ListMessagesRequest]) (*connect.Response[pb.ListMessagesResponse], error) {
	store, err := s.scope(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, toConnectError("ListMessages", err)
	}

	msgs := store.Filter(req.Msg.Query)
	slog.Debug("ListMessages", "title", store.Title(), "query", req.Msg.Query, "count", len(msgs))

	return connect.NewResponse(&pb.ListMessagesResponse{Messages: toProtoMessages(msgs)}), nil
}

// AddMessage appends a message to the group's board.
func (s *BoardService) AddMessage(ctx context.Context, req *connect.Request[pb.AddMessageRequest]) (*connect.Response[pb.AddMessageResponse], error) {
	store, err := s.scope(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, toConnectError("AddMessage", err)
	}

	msg, err := store.AddMessage(req.Msg.Text)
	if err != nil {
		return nil, toConnectError("AddMessage", err)
	}

	slog.Info("Message added", "title", store.Title(), "message_id", msg.ID)
	return connect.NewResponse(&pb.AddMessageResponse{Message: toProtoMessage(msg)}), nil
}

// EditMessage replaces a message's text in place.
func (s *BoardService) EditMessage(ctx context.Context, req *connect.Request[pb.EditMessageRequest]) (*connect.Response[pb.EditMessageResponse], error) {
	store, err := s.scope(ctx, req.Msg.GroupId)
	if err != nil {
		return nil, toConnectError("EditMessage", err)
	}

	msg, err := store.EditMessage(req.Msg.MessageId, req.Msg.Text)
	if err != nil {
		return nil, toConnectError("EditMessage", err)
	}

	slog.Info("Message edited", "title", store.Title(), "message_id", msg.ID)
	return connect.NewResponse(&pb.EditMessageResponse{Message: toProtoMessage(msg)}), nil
}

// scope resolves groupID to its open message scope, opening it if needed.
func (s *BoardService) scope(ctx context.Context, groupID string) (*board.MessageStore, error) {
	if groupID == "" {
		return nil, fmt.Errorf("%w: group_id required", board.ErrGroupNotFound)
	}
	sel, err := s.groups.Select(groupID)
	if err != nil {
		return nil, err
	}
	store, err := s.scopes.Open(ctx, groupID, sel)
	s.logLoad(store, err)
	return store, nil
}

// logLoad logs a failed message load. The store stays usable and empty.
func (s *BoardService) logLoad(store *board.MessageStore, err error) {
	if err != nil {
		slog.Error("Failed to load messages", "title", store.Title(), "key", store.Key(), "error", err)
	}
}

// toConnectError maps board errors to Connect codes. Validation failures are
// the only errors meant to be shown to the user.
func toConnectError(op string, err error) error {
	switch {
	case board.IsValidation(err):
		slog.Warn(op+" rejected", "reason", err)
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, board.ErrGroupNotFound), errors.Is(err, board.ErrMessageNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
}

func toProtoGroup(g models.Group) *pb.Group {
	return &pb.Group{
		Id:       g.ID,
		Title:    g.Title,
		Messages: toProtoMessages(g.Messages),
	}
}

func toProtoMessages(msgs []models.Message) []*pb.Message {
	out := make([]*pb.Message, len(msgs))
	for i, m := range msgs {
		out[i] = toProtoMessage(m)
	}
	return out
}

func toProtoMessage(m models.Message) *pb.Message {
	return &pb.Message{
		Id:        m.ID,
		Text:      m.Text,
		Timestamp: m.Timestamp,
	}
}
