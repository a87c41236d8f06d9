package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"baro/ipc"
)

// sendToDaemon delivers msg to the running instance named by the config.
var sendToDaemon = ipc.Send

func newClientCmd(opts *rootOptions, use, short, msg string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendMessage(opts, msg)
		},
	}
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return newClientCmd(opts, "show", "Bring the running launcher to the front", ipc.MsgShow)
}

func newHideCmd(opts *rootOptions) *cobra.Command {
	return newClientCmd(opts, "hide", "Hide the running launcher", ipc.MsgHide)
}

func newQuitCmd(opts *rootOptions) *cobra.Command {
	return newClientCmd(opts, "quit", "Stop the running launcher", ipc.MsgQuit)
}

func newGestureCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "gesture on|off",
		Short:     "Enable or disable the double-tap gesture",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := ipc.MsgGestureOff
			if args[0] == "on" {
				msg = ipc.MsgGestureOn
			}
			return sendMessage(opts, msg)
		},
	}
}

func sendMessage(opts *rootOptions, msg string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if err := sendToDaemon(cfg.IPC.SocketPath, msg); err != nil {
		return fmt.Errorf("is baro running? %w", err)
	}
	return nil
}
