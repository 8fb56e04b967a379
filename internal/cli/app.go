package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tcnksm/go-latest"

	"envfetch/internal/config"
	"envfetch/internal/model"
	"envfetch/internal/tui"
)

const (
	repoOwner = "ankddev"
	repoName  = "envfetch"
)

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Browse and edit variables in a full-screen editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return errors.New("interactive mode needs a terminal")
			}
			svc, err := a.service(cmd.Context(), false)
			if err != nil {
				return err
			}
			return tui.Run(svc)
		},
	}
}

func newPersistedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "persisted",
		Short: "List the variables recorded in the persistent store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			list, err := store.List()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "# %s\n", store.Target())
			out := cmd.OutOrStdout()
			for _, v := range list {
				if _, err := fmt.Fprintf(out, "%s=%q\n", v.Key, v.Value); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newInitConfigCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault(a.cfgPath, force)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "envfetch version %s\n", model.Version)
			if !check {
				return nil
			}

			res, err := latest.Check(&latest.GithubTag{Owner: repoOwner, Repository: repoName}, model.Version)
			if err != nil {
				return fmt.Errorf("check latest version: %w", err)
			}
			if res.Outdated {
				_, _ = fmt.Fprintf(out, "A new version is available: %s (you have %s)\n", res.Current, model.Version)
				_, _ = fmt.Fprintf(out, "Download it from https://github.com/%s/%s/releases\n", repoOwner, repoName)
			} else {
				_, _ = fmt.Fprintf(out, "You are using the latest version: %s\n", model.Version)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")
	return cmd
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
