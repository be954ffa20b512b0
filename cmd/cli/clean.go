package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iccaka/LLM-Assistant-Toolkit/internal/client"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/docs"

	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [document]",
		Short: "Clean a text document from the configured texts directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runClean,
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	relay := newRelayClient(cmd, cfg)
	source := docs.NewSource(cfg.TextsDir)

	if len(args) == 1 {
		return cleanOne(cmd, relay, source, args[0])
	}

	fmt.Println(banner("Document Clean Mode"))
	fmt.Println(styleDim.Render("documents are read from " + cfg.TextsDir))

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print(stylePrompt.Render("\nDocument's name: "))

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}

		if strings.EqualFold(name, exitWord) {
			return nil
		}

		if err := cleanOne(cmd, relay, source, name); err != nil {
			fmt.Println(styledError(err.Error()))
		}
	}
}

func cleanOne(cmd *cobra.Command, relay *client.Client, source *docs.Source, name string) error {
	text, err := source.Load(name)
	if err != nil {
		switch {
		case errors.Is(err, docs.ErrNotFound):
			return fmt.Errorf("file not found: %s", name)
		case errors.Is(err, docs.ErrDecode):
			return fmt.Errorf("file is not readable text: %s", name)
		default:
			return err
		}
	}

	cleaned, err := relay.Clean(cmd.Context(), text)
	if err != nil {
		return err
	}

	fmt.Println(styleSuccess.Render("Cleaned document:"))
	fmt.Println(cleaned)

	return nil
}
