package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"
	"pkt.systems/pslog"

	"envfetch/internal/names"
	"envfetch/internal/vars"
)

func newGetCmd(a *app) *cobra.Command {
	var noSimilar bool
	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value of a variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context(), false)
			if err != nil {
				return err
			}
			value, err := svc.Get(args[0], !noSimilar)
			if err != nil {
				var notFound *vars.NotFoundError
				if errors.As(err, &notFound) && notFound.SuggestSimilar {
					a.printSuggestions(cmd, svc, notFound.Key)
				}
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%q\n", value)
			return err
		},
	}
	cmd.Flags().BoolVarP(&noSimilar, "no-similar-names", "s", false, "don't suggest similar variable names")
	return cmd
}

func (a *app) printSuggestions(cmd *cobra.Command, svc *vars.Service, key string) {
	threshold := names.DefaultThreshold
	if cfg, err := a.config(); err != nil {
		pslog.Ctx(cmd.Context()).With("err", err).Warn("config unavailable, using default similarity threshold")
	} else {
		threshold = cfg.SimilarityThreshold
	}
	similar := svc.Suggest(key, threshold)
	if len(similar) == 0 {
		return
	}
	out := cmd.ErrOrStderr()
	_, _ = fmt.Fprintln(out, "Did you mean:")
	for _, name := range similar {
		_, _ = fmt.Fprintf(out, "  %s\n", name)
	}
}

func newPrintCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print all variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				cfg, err := a.config()
				if err != nil {
					return err
				}
				format = cfg.PrintFormat
			}
			svc, err := a.service(cmd.Context(), false)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			nameStyle := lipgloss.NewRenderer(out).NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
			for _, v := range svc.List() {
				line := strings.NewReplacer("{name}", nameStyle.Render(v.Key), "{value}", v.Value).Replace(format)
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", `line format with {name} and {value} placeholders (default from config, else {name} = "{value}")`)
	return cmd
}

func newSetCmd(a *app) *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:   "set KEY VALUE [PROCESS...]",
		Short: "Set a variable, optionally running a command with it",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context(), global)
			if err != nil {
				return err
			}
			if err := svc.Set(args[0], args[1], global); err != nil {
				return err
			}
			return a.runProcess(cmd, args[2:])
		},
	}
	positionalOnly(cmd.Flags())
	addGlobalFlag(cmd.Flags(), &global)
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:   "add KEY VALUE [PROCESS...]",
		Short: "Append to a variable, optionally running a command with it",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context(), global)
			if err != nil {
				return err
			}
			if err := svc.Append(args[0], args[1], global); err != nil {
				return err
			}
			return a.runProcess(cmd, args[2:])
		},
	}
	positionalOnly(cmd.Flags())
	addGlobalFlag(cmd.Flags(), &global)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:   "delete KEY [PROCESS...]",
		Short: "Delete a variable, optionally running a command without it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context(), global)
			if err != nil {
				return err
			}
			if err := svc.Delete(args[0], global); err != nil {
				return err
			}
			return a.runProcess(cmd, args[1:])
		},
	}
	positionalOnly(cmd.Flags())
	addGlobalFlag(cmd.Flags(), &global)
	return cmd
}

func newLoadCmd(a *app) *cobra.Command {
	var (
		global bool
		file   string
	)
	cmd := &cobra.Command{
		Use:   "load [PROCESS...]",
		Short: "Load variables from a dotenv file, optionally running a command with them",
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := readDotenv(file)
			if err != nil {
				return err
			}
			svc, err := a.service(cmd.Context(), global)
			if err != nil {
				return err
			}
			if err := svc.Load(cmd.Context(), pairs, global); err != nil {
				return err
			}
			return a.runProcess(cmd, args)
		},
	}
	positionalOnly(cmd.Flags())
	addGlobalFlag(cmd.Flags(), &global)
	cmd.Flags().StringVarP(&file, "file", "f", ".env", "dotenv file to load")
	return cmd
}

// readDotenv parses the whole file before anything is applied.
func readDotenv(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &vars.FileError{Path: path, Err: err}
	}
	defer f.Close()

	env, err := gotenv.StrictParse(f)
	if err != nil {
		return nil, &vars.ParsingError{Err: err}
	}
	return env, nil
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export NAME KEY...",
		Short: "Write variables to NAME.env",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context(), false)
			if err != nil {
				return err
			}
			return svc.Export(args[0], args[1:])
		},
	}
}
