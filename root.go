package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"baro/config"
)

type rootOptions struct {
	configPath string
	logPath    string
	surface    surfaceFlag
}

// configFile is the --config value, or the per-user default.
func (o *rootOptions) configFile() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.DefaultPath()
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.LoadAndValidateConfig(o.configFile())
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{surface: surfaceAuto}

	cmd := &cobra.Command{
		Use:   "baro",
		Short: "Tray quick launcher summoned by double-tapping a modifier key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}

	cmd.Version = version
	cmd.SetVersionTemplate("baro {{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")
	pf.StringVar(&opts.logPath, "logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	addSurfaceFlag(cmd.Flags(), &opts.surface)

	cmd.AddCommand(
		newRunCmd(opts),
		newShowCmd(opts),
		newHideCmd(opts),
		newGestureCmd(opts),
		newQuitCmd(opts),
		newListCmd(opts),
		newAddCmd(opts),
		newLinksCmd(opts),
		newTagsCmd(opts),
		newValidateCmd(opts),
		newInitCmd(opts),
		newDoctorCmd(opts),
		newLoginCmd(),
		newVersionCmd(),
	)
	return cmd
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the launcher (tray, key listener and window)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), opts)
		},
	}
	addSurfaceFlag(cmd.Flags(), &opts.surface)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "baro %s\n", version)
		},
	}
}

type surfaceFlag string

const (
	surfaceAuto     surfaceFlag = "auto"
	surfaceGUI      surfaceFlag = "gui"
	surfaceTUI      surfaceFlag = "tui"
	surfaceHeadless surfaceFlag = "headless"
)

var surfaceChoices = []surfaceFlag{surfaceAuto, surfaceGUI, surfaceTUI, surfaceHeadless}

func (s *surfaceFlag) String() string { return string(*s) }
func (s *surfaceFlag) Type() string   { return "surface" }

func (s *surfaceFlag) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, c := range surfaceChoices {
		if string(c) == v {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("must be one of auto, gui, tui, headless")
}

var _ pflag.Value = (*surfaceFlag)(nil)

func addSurfaceFlag(fs *pflag.FlagSet, s *surfaceFlag) {
	fs.Var(s, "surface", "window surface: auto, gui, tui or headless")
}
