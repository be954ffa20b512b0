package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/iccaka/LLM-Assistant-Toolkit/internal/client"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/config"

	"github.com/spf13/cobra"
)

// exitWord ends any interactive loop and returns to the shell.
const exitWord = "bye"

func execute() {
	rootCmd := &cobra.Command{
		Use:           "llmkit",
		Short:         "LLM assistant toolkit: chat sessions and document cleaning over a local model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config file")
	rootCmd.PersistentFlags().String("relay", "", "relay base URL override")

	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newStatusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styledError(err.Error()))
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	if configPath == "" {
		configPath = filepath.Join(config.Default().DataDir, "config.toml")
	}

	return config.LoadOrCreate(configPath)
}

func newRelayClient(cmd *cobra.Command, cfg config.Config) *client.Client {
	return client.New(resolveRelay(cmd, cfg), cfg.RequestTimeout())
}

func resolveRelay(cmd *cobra.Command, cfg config.Config) string {
	if override, _ := cmd.Flags().GetString("relay"); override != "" {
		return override
	}

	return "http://" + clientAddrFromBind(cfg.Bind)
}

func clientAddrFromBind(bind string) string {
	host, port, err := netSplitHostPort(bind)
	if err != nil || port == "" {
		return bind
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		return "127.0.0.1:" + port
	}

	return bind
}

func netSplitHostPort(addr string) (string, string, error) {
	if strings.HasPrefix(addr, ":") {
		return "", strings.TrimPrefix(addr, ":"), nil
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", "", err
	}

	return host, port, nil
}

func printRelayNotRunning(addr string, err error) {
	fmt.Println(styledError("relay is not running at "+addr,
		"start with: llmkit serve"))
	if err != nil {
		fmt.Println(styleDim.Render("  " + err.Error()))
	}
}
