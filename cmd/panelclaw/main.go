// Command panelclaw is a terminal stand-in for the chat panel: it drives
// the featuredev connector over a websocket link to a host process and
// renders whatever the host sends back.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/panelclaw/panelclaw/pkg/config"
	"github.com/panelclaw/panelclaw/pkg/connector"
	"github.com/panelclaw/panelclaw/pkg/logger"
	"github.com/panelclaw/panelclaw/pkg/protocol"
	"github.com/panelclaw/panelclaw/pkg/transport"
)

func main() {
	configPath := flag.String("config", "~/.panelclaw/config.json", "path to config file")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.LoadConfig(expandArg(*configPath))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	if *verbose {
		logger.SetLevel(logger.DEBUG)
	}
	if cfg.Logging.FileEnabled {
		if err := logger.EnableFileLogging(cfg.LogFilePath(), cfg.Logging.MaxSizeMB); err != nil {
			logger.WarnCF("main", "File logging unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	rl, err := readline.New("> ")
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	ui := &panelUI{out: rl.Stdout()}

	var conn *connector.Connector
	client := transport.NewClient(cfg.Host, func(msg protocol.Inbound) {
		conn.HandleMessageReceive(msg)
	})
	conn = connector.New(connector.Config{
		TabType: cfg.Panel.TabType,
		Send:    client.Send,
		Handlers: connector.Handlers{
			ChatAnswerReceived:   ui.answerReceived,
			AsyncEventProgress:   ui.asyncProgress,
			Error:                ui.errorMessage,
			Warning:              ui.warningMessage,
			UpdatePlaceholder:    ui.updatePlaceholder(rl),
			ChatInputEnabled:     ui.inputEnabled,
			UpdateAuthentication: ui.authUpdate,
		},
	})

	if err := client.Start(ctx); err != nil {
		return err
	}
	defer client.Stop(ctx)

	tabID := uuid.New().String()
	if err := conn.TabOpened(tabID); err != nil {
		return err
	}
	defer conn.TabRemoved(tabID)

	fmt.Fprintf(rl.Stdout(), "connected, tab %s — type a prompt, /help for commands\n", tabID[:8])

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := ui.command(conn, tabID, line); quit {
				return nil
			}
			continue
		}

		if _, err := conn.RequestGenerativeAIAnswer(tabID, line); err != nil {
			fmt.Fprintf(rl.Stdout(), "send failed: %v\n", err)
		}
	}
}

type panelUI struct {
	out           io.Writer
	lastMessageID string
}

func (u *panelUI) answerReceived(tabID string, item connector.ChatItem) {
	if item.MessageID != "" {
		u.lastMessageID = item.MessageID
	}
	if item.Body != nil {
		fmt.Fprintf(u.out, "[%s] %s\n", item.Type, *item.Body)
	}
	for _, p := range item.FilePaths {
		fmt.Fprintf(u.out, "  file: %s\n", p)
	}
	if item.FollowUp != nil {
		if item.FollowUp.Text != "" {
			fmt.Fprintln(u.out, item.FollowUp.Text)
		}
		for i, opt := range item.FollowUp.Options {
			fmt.Fprintf(u.out, "  %d) %s\n", i+1, opt.PillText)
		}
	}
}

func (u *panelUI) asyncProgress(tabID string, inProgress bool, message *string) {
	if message != nil {
		fmt.Fprintf(u.out, "... %s\n", *message)
	} else if !inProgress {
		fmt.Fprintln(u.out, "... done")
	}
}

func (u *panelUI) errorMessage(tabID, message, title string) {
	fmt.Fprintf(u.out, "error: %s: %s\n", title, message)
}

func (u *panelUI) warningMessage(tabID, message, title string) {
	fmt.Fprintf(u.out, "warning: %s: %s\n", title, message)
}

func (u *panelUI) updatePlaceholder(rl *readline.Instance) func(string, string) {
	return func(tabID, placeholder string) {
		if placeholder != "" {
			rl.SetPrompt(placeholder + " > ")
		} else {
			rl.SetPrompt("> ")
		}
	}
}

func (u *panelUI) inputEnabled(tabID string, enabled bool) {
	if !enabled {
		fmt.Fprintln(u.out, "(input disabled by host)")
	}
}

func (u *panelUI) authUpdate(featureDevEnabled bool) {
	if !featureDevEnabled {
		fmt.Fprintln(u.out, "(feature disabled for this account)")
	}
}

// command handles slash commands; returns true to quit.
func (u *panelUI) command(conn *connector.Connector, tabID, line string) bool {
	parts := strings.Fields(line)
	switch parts[0] {
	case "/quit", "/exit":
		return true
	case "/stop":
		if err := conn.StopResponse(tabID); err != nil {
			fmt.Fprintf(u.out, "send failed: %v\n", err)
		}
	case "/vote":
		if len(parts) != 2 || u.lastMessageID == "" {
			fmt.Fprintln(u.out, "usage: /vote up|down (after an answer)")
			return false
		}
		vote := protocol.VoteUp
		if parts[1] == "down" {
			vote = protocol.VoteDown
		}
		if err := conn.VoteOnChatItem(tabID, u.lastMessageID, vote); err != nil {
			fmt.Fprintf(u.out, "send failed: %v\n", err)
		}
	case "/diff":
		if len(parts) != 3 {
			fmt.Fprintln(u.out, "usage: /diff <leftPath> <rightPath>")
			return false
		}
		if err := conn.OpenDiff(tabID, parts[1], parts[2]); err != nil {
			fmt.Fprintf(u.out, "send failed: %v\n", err)
		}
	case "/help":
		fmt.Fprintln(u.out, "commands: /stop /vote up|down /diff <left> <right> /quit")
	default:
		fmt.Fprintf(u.out, "unknown command %s, try /help\n", parts[0])
	}
	return false
}

func expandArg(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	}
	return path
}
