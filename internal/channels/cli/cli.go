// Package cli runs ElyuBot as a stdin/stdout REPL, one conversation per
// process.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"elyubot/internal/channels"
	"elyubot/internal/chat"

	"github.com/google/uuid"
)

func init() {
	channels.Register(&REPL{})
}

// REPL reads lines from stdin and prints replies to stdout.
type REPL struct{}

func (*REPL) ID() string { return "cli" }

func (*REPL) Start(ctx context.Context, svc *chat.Service) error {
	conversationID := uuid.NewString()

	fmt.Println("ElyuBot — your La Union local products guide")
	fmt.Println("Type /exit to quit, /clear to reset the conversation.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		switch input {
		case "/exit", "exit", "quit":
			return nil
		case "/clear":
			svc.Reset(ctx, conversationID)
			fmt.Println("conversation cleared")
			continue
		}

		turnCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		reply := svc.Send(turnCtx, conversationID, input)
		cancel()
		fmt.Println(reply)
	}
}
