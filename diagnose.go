package main

import (
	"errors"

	"github.com/spf13/cobra"

	"baro/doctor"
)

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	var synthetic bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run system diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code := doctor.Run(doctor.Options{
				ConfigPath: opts.configFile(),
				Synthetic:  synthetic,
			})
			if code != 0 {
				return errors.New("some checks failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&synthetic, "synthetic", false, "generate the double-tap instead of waiting for one")
	return cmd
}
