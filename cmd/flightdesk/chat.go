package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/ogreowl/flightdesk/catalog"
	"github.com/ogreowl/flightdesk/conflict"
	"github.com/ogreowl/flightdesk/dispatch"
	"github.com/ogreowl/flightdesk/hooks"
)

func newChatCmd(a *app) *cobra.Command {
	var tracePath string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the schedule assistant",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			var extra []any
			if tracePath != "" {
				f, err := os.Create(tracePath)
				if err != nil {
					return fmt.Errorf("failed to create trace file: %w", err)
				}
				defer f.Close()
				extra = append(extra, hooks.NewTraceHook(f))
			}

			agent, _, err := a.newAgent(nil, extra...)
			if err != nil {
				return err
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          colorCyan + colorBold + "You: " + colorReset,
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				Stdout:          a.stdout,
				Stderr:          a.stderr,
			})
			if err != nil {
				return fmt.Errorf("failed to create readline: %w", err)
			}
			defer rl.Close()

			s := newChatSession(dispatch.NewConversation(agent), a.stdout)
			s.banner()
			return s.loop(ctx, rl)
		},
	}
	cmd.Flags().StringVar(&tracePath, "trace", "", "write a YAML transcript of every round to this file")
	return cmd
}

// chatSession renders one REPL conversation.
type chatSession struct {
	conv *dispatch.Conversation
	out  io.Writer
}

func newChatSession(conv *dispatch.Conversation, out io.Writer) *chatSession {
	return &chatSession{conv: conv, out: out}
}

func (s *chatSession) banner() {
	fmt.Fprintf(s.out, "%s%s%s\n", colorYellow, strings.Repeat("=", 60), colorReset)
	fmt.Fprintf(s.out, "%s%sFLIGHTDESK%s\n", colorBold, colorYellow, colorReset)
	fmt.Fprintf(s.out, "%s%s%s\n", colorYellow, strings.Repeat("=", 60), colorReset)
	fmt.Fprintf(s.out, "%sAsk about the schedule, or ask to add, edit or delete a flight.%s\n", colorDim, colorReset)
	fmt.Fprintf(s.out, "%sCommands: /flights /warnings /tools [name] /reset exit%s\n\n", colorDim, colorReset)
}

func (s *chatSession) loop(ctx context.Context, rl *readline.Instance) error {
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				fmt.Fprintf(s.out, "\n%sGoodbye!%s\n", colorGreen, colorReset)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		select {
		case <-ctx.Done():
			fmt.Fprintf(s.out, "\n%sChat cancelled.%s\n", colorYellow, colorReset)
			return nil
		default:
		}

		if s.handle(ctx, line) {
			return nil
		}
	}
}

func (s *chatSession) describeTool(name string) {
	d, ok := catalog.Lookup(name)
	if !ok {
		fmt.Fprintf(s.out, "%sUnknown tool %q.%s\n", colorRed, name, colorReset)
		return
	}
	fmt.Fprintf(s.out, "%s%s%s: %s\n", colorBold, d.Name, colorReset, d.Description)
}

// handle processes one input line and reports whether the session should end.
func (s *chatSession) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	store := s.conv.Agent().Store()

	switch line {
	case "":
		return false
	case "exit", "quit":
		fmt.Fprintf(s.out, "%sGoodbye!%s\n", colorGreen, colorReset)
		return true
	case "/flights":
		fmt.Fprintln(s.out, dispatch.ScheduleSummary(store.Flights()))
		return false
	case "/warnings":
		fmt.Fprintln(s.out, dispatch.WarningsReply(conflict.Detect(store.Flights())))
		return false
	case "/reset":
		s.conv.Reset()
		fmt.Fprintf(s.out, "%sHistory cleared.%s\n", colorDim, colorReset)
		return false
	case "/tools":
		fmt.Fprintln(s.out, strings.Join(catalog.Names(), ", "))
		return false
	}

	if name, ok := strings.CutPrefix(line, "/tools "); ok {
		s.describeTool(strings.TrimSpace(name))
		return false
	}

	result := s.conv.Send(ctx, line)
	for _, n := range result.Notes {
		fmt.Fprintf(s.out, "%s[%s]%s\n", colorDim, n.Content, colorReset)
	}
	color := colorGreen
	if result.Err != nil {
		color = colorRed
	}
	fmt.Fprintf(s.out, "%s%sAssistant:%s %s\n\n", colorBold, color, colorReset, result.Reply)
	return false
}
