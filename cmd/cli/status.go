package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/iccaka/LLM-Assistant-Toolkit/internal/app"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show relay status",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	relay := newRelayClient(cmd, cfg)

	resp, err := relay.Status(cmd.Context())
	if err != nil {
		printRelayNotRunning(resolveRelay(cmd, cfg), err)
		return err
	}

	fmt.Println(styleSuccess.Render("relay"))
	fmt.Println(kvLine("address", resolveRelay(cmd, cfg)))
	fmt.Println(kvLine("bind", resp.Bind))
	fmt.Println(kvLine("uptime", resp.Uptime))

	if resp.StartedAt != "" {
		fmt.Println(kvLine("started", resp.StartedAt))
	}

	fmt.Println(kvLine("backend", resp.Endpoint))
	fmt.Println(kvLine("sessions", strconv.Itoa(resp.Sessions)))

	if pid := app.ReadPID(filepath.Join(cfg.DataDir, "relay.pid")); pid != 0 {
		fmt.Println(kvLine("pid", strconv.Itoa(pid)))
	}

	return nil
}
