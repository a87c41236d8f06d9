package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"baro/links"
)

type addOptions struct {
	name      string
	command   string
	icon      string
	tags      []string
	args      []string
	elevated  bool
	newWindow bool
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	add := &addOptions{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a link to the links file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			l, err := addLink(cfg.Links.Path, add)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", l.DisplayName(), l.UUID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&add.name, "name", "", `display name; aliases separated by "/"`)
	f.StringVar(&add.command, "cmd", "", "program to run")
	f.StringVar(&add.icon, "icon", "", "icon image path")
	f.StringSliceVar(&add.tags, "tag", nil, "tag (repeatable or comma separated)")
	f.StringArrayVar(&add.args, "arg", nil, "argument passed to the program (repeatable)")
	f.BoolVar(&add.elevated, "elevated", false, "run with administrator rights")
	f.BoolVar(&add.newWindow, "new-window", false, "run in a new terminal window")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("cmd")
	return cmd
}

func addLink(path string, add *addOptions) (links.Link, error) {
	if strings.TrimSpace(add.command) == "" {
		return links.Link{}, errors.New("--cmd must not be empty")
	}
	store, err := openStore(path, nil)
	if err != nil {
		return links.Link{}, err
	}

	l := links.NewLink(add.name, add.command)
	l.IconPath = add.icon
	l.Tags = append(l.Tags, add.tags...)
	if len(add.args) > 0 {
		l.Arguments = append(l.Arguments, add.args...)
	}
	l.Elevated = add.elevated
	l.NewWindow = add.newWindow

	l = store.Add(l)
	if err := store.Persist(); err != nil {
		return links.Link{}, err
	}
	return l, nil
}
