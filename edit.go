package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"baro/iconcache"
	"baro/links"
)

func newEditCmd(opts *rootOptions) *cobra.Command {
	edit := &addOptions{}
	cmd := &cobra.Command{
		Use:   "edit <uuid>",
		Short: "Change fields of an existing link",
		Long: "Only the flags given are changed. --tag and --arg replace the whole\n" +
			"list; pass --tag= to clear the tags.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			deps := iconcache.New()
			store, err := openStore(cfg.Links.Path, deps)
			if err != nil {
				return err
			}
			store.RegisterVisible(store.Links())

			l, err := editLink(store, args[0], edit, cmd.Flags().Changed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s (%s)\n", l.DisplayName(), l.UUID)
			_, err = deps.Sweep(unusedIcons{cmd.OutOrStdout()})
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&edit.name, "name", "", `display name; aliases separated by "/"`)
	f.StringVar(&edit.command, "cmd", "", "program to run")
	f.StringVar(&edit.icon, "icon", "", "icon image path (empty to remove)")
	f.StringSliceVar(&edit.tags, "tag", nil, "tags (repeatable or comma separated)")
	f.StringArrayVar(&edit.args, "arg", nil, "arguments passed to the program (repeatable)")
	f.BoolVar(&edit.elevated, "elevated", false, "run with administrator rights")
	f.BoolVar(&edit.newWindow, "new-window", false, "run in a new terminal window")
	return cmd
}

// openStore loads the links file into a store that refuses to save over
// a file it had to repair.
func openStore(path string, deps links.IconDeps) (*links.Store, error) {
	c, repaired, err := links.LoadOrRepair(path)
	if err != nil {
		return nil, err
	}
	store := links.NewStore(c, deps, links.FileStore{}, path)
	store.SetWontSave(repaired)
	return store, nil
}

// editLink applies the changed fields of edit to link id and persists
// the store. An icon change releases the old icon before the save.
func editLink(store *links.Store, id string, edit *addOptions, changed func(flag string) bool) (links.Link, error) {
	l, err := store.Get(id)
	if err != nil {
		return l, err
	}
	if changed("name") {
		names := links.ParseNames(edit.name)
		if len(names) == 0 {
			return l, errors.New("--name must not be empty")
		}
		l.Names = names
	}
	if changed("cmd") {
		if strings.TrimSpace(edit.command) == "" {
			return l, errors.New("--cmd must not be empty")
		}
		l.RunCommand = edit.command
	}
	if changed("icon") {
		l.IconPath = edit.icon
	}
	if changed("tag") {
		l.Tags = edit.tags
	}
	if changed("arg") {
		l.Arguments = edit.args
	}
	if changed("elevated") {
		l.Elevated = edit.elevated
	}
	if changed("new-window") {
		l.NewWindow = edit.newWindow
	}

	if err := store.Update(l); err != nil {
		return l, err
	}
	if err := store.Persist(); err != nil {
		return l, err
	}
	return store.Get(id)
}

type unusedIcons struct{ w io.Writer }

func (u unusedIcons) ForgetImage(path string) error {
	fmt.Fprintf(u.w, "icon %s is no longer used\n", path)
	return nil
}

func newTagsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List, add or remove tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openConfiguredStore(opts)
			if err != nil {
				return err
			}
			for _, t := range store.Tags() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <tag>",
			Short: "Add a tag",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := openConfiguredStore(opts)
				if err != nil {
					return err
				}
				tag := strings.TrimSpace(args[0])
				if tag == "" {
					return errors.New("tag must not be empty")
				}
				store.AddTag(tag)
				return store.Persist()
			},
		},
		&cobra.Command{
			Use:     "rm <tag>",
			Aliases: []string{"remove"},
			Short:   "Remove a tag from the set and from every link",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := openConfiguredStore(opts)
				if err != nil {
					return err
				}
				store.RemoveTag(args[0])
				return store.Persist()
			},
		},
	)
	return cmd
}

func openConfiguredStore(opts *rootOptions) (*links.Store, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}
	return openStore(cfg.Links.Path, nil)
}
