package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"baro/login"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "login on|off|status",
		Short:     "Start baro with the desktop session",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "on":
				if err := login.Enable(); err != nil {
					return err
				}
				fmt.Fprintf(out, "start at login enabled (%s)\n", login.Path())
			case "off":
				if err := login.Disable(); err != nil {
					return err
				}
				fmt.Fprintln(out, "start at login disabled")
			default:
				state := "off"
				if login.Enabled() {
					state = "on"
				}
				fmt.Fprintf(out, "start at login: %s\n", state)
			}
			return nil
		},
	}
}
