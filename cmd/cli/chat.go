package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the model in a persistent session",
		RunE:  runChat,
	}

	cmd.Flags().String("session", "", "session id to continue")

	return cmd
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	relay := newRelayClient(cmd, cfg)
	sessionID, _ := cmd.Flags().GetString("session")

	fmt.Println(banner("LLM Chat Mode"))

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print(stylePrompt.Render("\nYou: "))

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if strings.EqualFold(input, exitWord) {
			return nil
		}

		resp, err := relay.Chat(cmd.Context(), input, sessionID)
		if err != nil {
			fmt.Println(styledError(err.Error()))
			continue
		}

		// The relay may have started a fresh session; keep its id so the
		// next turn continues the same conversation.
		sessionID = resp.SessionID

		fmt.Println(styleReply.Render("LLM: ") + resp.Reply)
	}
}
