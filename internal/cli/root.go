// Package cli implements the installdeps command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	depset "github.com/albertocavalcante/go-depset"
	"github.com/albertocavalcante/go-depset/internal/installer"
)

const (
	FlagAll          = "all"
	FlagOnlyOptional = "only-optional"
	FlagInclude      = "include"
	FlagExclude      = "exclude"
	FlagPrint        = "print"
	FlagUser         = "user"
	FlagOutput       = "output"
	FlagPython       = "python"
)

const example = `  # Install all dependencies except the test group
  installdeps --all -e test

  # Install development and test dependencies
  installdeps -i dev -i test

  # Install only dev and test dependencies
  installdeps --only-optional -i dev -i test

  # Show where each requirement comes from
  installdeps -i dev --print --output table`

// InstallFunc hands resolved specifiers to an installer.
type InstallFunc func(ctx context.Context, req installer.Request, stdout, stderr io.Writer, logger *slog.Logger) error

// Option configures the command.
type Option func(*options)

type options struct {
	install InstallFunc
}

// WithInstaller replaces the pip invocation.
func WithInstaller(fn InstallFunc) Option {
	return func(o *options) {
		o.install = fn
	}
}

// New creates the installdeps command.
func New(opts ...Option) *cobra.Command {
	o := &options{install: installer.Run}
	for _, opt := range opts {
		opt(o)
	}

	cmd := &cobra.Command{
		Use:   "installdeps [MANIFEST]",
		Short: "Install the dependencies declared in a project manifest",
		Long: `Resolve the dependencies declared in a project manifest and install them with pip.

MANIFEST defaults to ` + depset.DefaultManifestFile + ` in the working directory. YAML (.yaml, .yml)
and Starlark (.bzl, .bazel, .star) manifests are also accepted.`,
		Example: example,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, o.install)
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	flags := cmd.Flags()
	flags.StringArrayP(FlagExclude, "e", nil, "exclude a dependency or optional dependency group")
	flags.StringArrayP(FlagInclude, "i", nil, "include an optional dependency group")
	flags.BoolP(FlagAll, "a", false, "include all optional dependency groups")
	flags.BoolP(FlagOnlyOptional, "o", false, "only install specified optional dependencies (excludes core dependencies and default group)")
	flags.BoolP(FlagPrint, "p", false, "only print requirements to stdout")
	flags.BoolP(FlagUser, "u", false, "install with pip as --user")
	flags.String(FlagOutput, OutputText, fmt.Sprintf("format used by --%s (%s)", FlagPrint, joinFormats()))
	flags.String(FlagPython, installer.DefaultPython(), fmt.Sprintf("python interpreter used to run pip (env %s)", installer.PythonEnv))
	cmd.MarkFlagsMutuallyExclusive(FlagAll, FlagOnlyOptional)

	RegisterLoggingFlags(cmd)
	return cmd
}

func run(cmd *cobra.Command, args []string, install InstallFunc) error {
	flags := cmd.Flags()
	output, err := flags.GetString(FlagOutput)
	if err != nil {
		return err
	}
	if err := validateOutput(output); err != nil {
		return err
	}

	logger, err := GetBaseLogger(cmd)
	if err != nil {
		return err
	}

	req, err := requestFromFlags(flags)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	path := depset.DefaultManifestFile
	if len(args) == 1 {
		path = args[0]
	}
	manifest, err := depset.ParseManifestFile(path)
	if err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	resolver, err := depset.NewResolver(depset.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Debug("loaded manifest",
		"path", path,
		"project", manifest.Name,
		"groups", manifest.GroupNames(),
		"selected", resolver.Groups(manifest, req))

	set, err := resolver.Resolve(manifest, req)
	if err != nil {
		return fmt.Errorf("resolve dependencies: %w", err)
	}
	writeWarnings(cmd.ErrOrStderr(), set.Warnings)

	printOnly, err := flags.GetBool(FlagPrint)
	if err != nil {
		return err
	}
	if printOnly {
		data, err := encode(output, set)
		if err != nil {
			return fmt.Errorf("generating output failed: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	user, err := flags.GetBool(FlagUser)
	if err != nil {
		return err
	}
	python, err := flags.GetString(FlagPython)
	if err != nil {
		return err
	}
	return install(cmd.Context(), installer.Request{
		Python:     python,
		User:       user,
		Specifiers: set.Specifiers(),
	}, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

func requestFromFlags(flags *pflag.FlagSet) (depset.Request, error) {
	var (
		req depset.Request
		err error
	)
	if req.Exclude, err = flags.GetStringArray(FlagExclude); err != nil {
		return req, err
	}
	if req.Include, err = flags.GetStringArray(FlagInclude); err != nil {
		return req, err
	}
	if req.All, err = flags.GetBool(FlagAll); err != nil {
		return req, err
	}
	if req.OnlyOptional, err = flags.GetBool(FlagOnlyOptional); err != nil {
		return req, err
	}
	return req, nil
}

func writeWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		if msg == depset.AdvisoryOnlyOptionalWithoutInclude {
			fmt.Fprintf(w, "Warning: --%s has no effect without specifying groups with --%s\n", FlagOnlyOptional, FlagInclude)
			fmt.Fprintf(w, "         Use --%s instead to include all optional dependency groups.\n", FlagAll)
			continue
		}
		fmt.Fprintf(w, "Warning: %s\n", msg)
	}
}

// Execute runs the command with args and returns the process exit code.
// Installer exit codes are passed through.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...Option) int {
	cmd := New(opts...)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *installer.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
