// Command boardctl talks to a running board server.
//
// Usage:
//
//	boardctl [flags] groups [query]
//	boardctl [flags] create <title> [comma,separated,messages]
//	boardctl [flags] select <group-id>
//	boardctl [flags] messages <group-id> [query]
//	boardctl [flags] add <group-id> <text>
//	boardctl [flags] edit <group-id> <message-id> <text>
//	boardctl [flags] seed
//	boardctl [flags] token <device-id>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/msgboard/internal/auth"
	"github.com/mmynk/msgboard/internal/board"
	"github.com/mmynk/msgboard/internal/config"
	"github.com/mmynk/msgboard/internal/middleware"
	pb "github.com/mmynk/msgboard/pkg/boardapi"
)

var errUsage = errors.New("usage")

func main() {
	addr := flag.String("addr", envOr("BOARD_ADDR", "http://localhost:8080"), "board server base URL")
	token := flag.String("token", os.Getenv("BOARD_TOKEN"), "bearer token")
	configPath := flag.String("config", os.Getenv("BOARD_CONFIG"), "path to YAML config file (for token)")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: boardctl [flags] groups|create|select|messages|add|edit|seed|token ...")
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := pb.NewBoardServiceClient(http.DefaultClient, *addr,
		connect.WithInterceptors(middleware.BearerToken(*token)),
	)
	err := run(ctx, os.Stdout, client, *configPath, flag.Args())
	if errors.Is(err, errUsage) {
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		var connectErr *connect.Error
		if errors.As(err, &connectErr) && connectErr.Code() == connect.CodeInvalidArgument {
			fmt.Fprintf(os.Stderr, "Error: %s\n", connectErr.Message())
		} else {
			fmt.Fprintf(os.Stderr, "boardctl: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, client *pb.BoardServiceClient, configPath string, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "groups":
		resp, err := client.ListGroups(ctx, connect.NewRequest(&pb.ListGroupsRequest{Query: optional(args, 0)}))
		if err != nil {
			return err
		}
		for _, g := range resp.Msg.Groups {
			fmt.Fprintf(out, "%s\t%s\t(%d messages)\n", g.Id, g.Title, len(g.Messages))
		}

	case "create":
		if len(args) < 1 {
			return errUsage
		}
		resp, err := client.CreateGroup(ctx, connect.NewRequest(&pb.CreateGroupRequest{
			Title:    args[0],
			Messages: strings.Join(args[1:], ","),
		}))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%s\n", resp.Msg.Group.Id, resp.Msg.Group.Title)

	case "select":
		if len(args) != 1 {
			return errUsage
		}
		resp, err := client.SelectGroup(ctx, connect.NewRequest(&pb.SelectGroupRequest{GroupId: args[0]}))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, resp.Msg.Title)
		printMessages(out, resp.Msg.Messages)

	case "messages":
		if len(args) < 1 {
			return errUsage
		}
		resp, err := client.ListMessages(ctx, connect.NewRequest(&pb.ListMessagesRequest{
			GroupId: args[0],
			Query:   optional(args, 1),
		}))
		if err != nil {
			return err
		}
		printMessages(out, resp.Msg.Messages)

	case "add":
		if len(args) < 2 {
			return errUsage
		}
		resp, err := client.AddMessage(ctx, connect.NewRequest(&pb.AddMessageRequest{
			GroupId: args[0],
			Text:    strings.Join(args[1:], " "),
		}))
		if err != nil {
			return err
		}
		printMessages(out, []*pb.Message{resp.Msg.Message})

	case "edit":
		if len(args) < 3 {
			return errUsage
		}
		resp, err := client.EditMessage(ctx, connect.NewRequest(&pb.EditMessageRequest{
			GroupId:   args[0],
			MessageId: args[1],
			Text:      strings.Join(args[2:], " "),
		}))
		if err != nil {
			return err
		}
		printMessages(out, []*pb.Message{resp.Msg.Message})

	case "seed":
		for _, g := range board.SampleGroups() {
			texts := make([]string, len(g.Messages))
			for i, m := range g.Messages {
				texts[i] = m.Text
			}
			resp, err := client.CreateGroup(ctx, connect.NewRequest(&pb.CreateGroupRequest{
				Title:    g.Title,
				Messages: strings.Join(texts, ","),
			}))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\t%s\n", resp.Msg.Group.Id, resp.Msg.Group.Title)
		}

	case "token":
		if len(args) != 1 {
			return errUsage
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		jwtManager, err := auth.NewJWTManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
		if err != nil {
			return err
		}
		tok, err := jwtManager.Generate(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, tok)

	default:
		return errUsage
	}
	return nil
}

func printMessages(out io.Writer, msgs []*pb.Message) {
	for _, m := range msgs {
		fmt.Fprintf(out, "%s\t%s\t%s\n", m.Id, m.Timestamp, m.Text)
	}
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
