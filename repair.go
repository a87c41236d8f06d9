package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"baro/config"
	"baro/links"
)

func newLinksCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Maintain the links file",
	}
	cmd.AddCommand(newRepairCmd(opts), newEditCmd(opts))
	return cmd
}

func newRepairCmd(opts *rootOptions) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "repair [file]",
		Short: "Recover what can be read from a damaged links file",
		Long: "Parses the links file leniently, keeping every field that still reads.\n" +
			"Without --write the recovered file is printed; with --write the original\n" +
			"is kept as <file>.bak and replaced.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := opts.loadConfig()
				if err != nil {
					return err
				}
				path = cfg.Links.Path
			}
			return runRepair(cmd.OutOrStdout(), path, write)
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "replace the file with the repaired version")
	return cmd
}

func runRepair(w io.Writer, path string, write bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c, err := links.Parse(data)
	if err == nil {
		fmt.Fprintf(w, "%s is valid (%d links)\n", path, len(c.Links))
		return nil
	}
	fmt.Fprintf(w, "%s: %s\n", path, links.Describe(err))

	c, err = links.Repair(data)
	if err != nil {
		return fmt.Errorf("cannot repair %s: %w", path, err)
	}
	c.Version = links.SchemaVersion
	fmt.Fprintf(w, "recovered %d links, %d tags\n", len(c.Links), len(c.Tags))

	if !write {
		out, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(out))
		return nil
	}

	backup := path + ".bak"
	if err := os.WriteFile(backup, data, 0644); err != nil {
		return fmt.Errorf("failed to back up %s: %w", path, err)
	}
	if err := (links.FileStore{}).Save(c, path); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s (original kept as %s)\n", path, backup)
	return nil
}

var errInvalid = errors.New("validation failed")

func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configFile()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			cfg := config.DefaultConfig
			if err := config.SaveConfig(&cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check config.toml and the links file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), opts.configFile())
		},
	}
}

func runValidate(w io.Writer, configPath string) error {
	cfg, err := config.LoadAndValidateConfig(configPath)
	if err != nil {
		fmt.Fprintf(w, "config %s: %v\n", configPath, err)
		return errInvalid
	}
	fmt.Fprintf(w, "config %s: ok\n", configPath)

	c, err := links.FileStore{}.Load(cfg.Links.Path)
	if err != nil {
		fmt.Fprintf(w, "links %s: %s\n", cfg.Links.Path, links.Describe(err))
		return errInvalid
	}
	fmt.Fprintf(w, "links %s: ok (%d links, %d tags)\n", cfg.Links.Path, len(c.Links), len(c.Tags))
	return nil
}
