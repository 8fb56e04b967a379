// Package cli is the envfetch command tree.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"pkt.systems/pslog"

	"envfetch/internal/config"
	"envfetch/internal/model"
	"envfetch/internal/persist"
	"envfetch/internal/run"
	"envfetch/internal/vars"
)

// app carries what the subcommands share. Config and the persistent store
// are resolved on first use.
type app struct {
	cfgPath string
	cfg     *config.Config
	env     vars.Environ
	stdin   io.Reader
}

// Execute runs the command line in args and returns the process exit code.
// A failing child process passes its own exit code through; every other
// failure is logged and yields 1.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return execute(ctx, &app{env: vars.OSEnv{}, stdin: os.Stdin}, args, stdout, stderr)
}

func execute(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exitErr *run.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code > 0 {
			return exitErr.Code
		}
		return 1
	}
	pslog.Ctx(ctx).With("err", err).Error("envfetch command failed")
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "envfetch",
		Short:         "Inspect and edit environment variables",
		Long:          "envfetch lists, reads, sets and deletes environment variables for the\ncurrent run or persistently, loads dotenv files and can run a command\nwith the changed environment.",
		Version:       model.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "path to config file")

	root.AddCommand(newGetCmd(a))
	root.AddCommand(newPrintCmd(a))
	root.AddCommand(newSetCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newLoadCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newInteractiveCmd(a))
	root.AddCommand(newPersistedCmd(a))
	root.AddCommand(newInitConfigCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

func (a *app) config() (config.Config, error) {
	if a.cfg != nil {
		return *a.cfg, nil
	}
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return config.Config{}, err
	}
	a.cfg = &cfg
	return cfg, nil
}

func (a *app) store() (persist.Store, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	return persist.Default(persist.Options{RcFile: cfg.RcFile, Shell: os.Getenv("SHELL")})
}

// service builds the variable service. The persistent store is only opened
// for global operations.
func (a *app) service(ctx context.Context, global bool) (*vars.Service, error) {
	deps := vars.Deps{Env: a.env, Logger: pslog.Ctx(ctx)}
	if global {
		store, err := a.store()
		if err != nil {
			return nil, err
		}
		pslog.Ctx(ctx).Debug("persistent store", "target", store.Target().String())
		deps.Store = store
	}
	return vars.NewService(deps), nil
}

// runProcess runs the trailing command words, if any, through the shell with
// the service's view of the environment.
func (a *app) runProcess(cmd *cobra.Command, process []string) error {
	if len(process) == 0 {
		return nil
	}
	return run.Shell(cmd.Context(), strings.Join(process, " "), run.Options{
		Stdin:  a.stdin,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Env:    a.env.Environ(),
	})
}

func addGlobalFlag(flags *pflag.FlagSet, global *bool) {
	flags.BoolVarP(global, "global", "g", false, "also write the change to the persistent store")
}

// positionalOnly stops flag parsing at the first positional argument so the
// trailing command keeps its own flags.
func positionalOnly(flags *pflag.FlagSet) {
	flags.SetInterspersed(false)
}
