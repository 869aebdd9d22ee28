package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jcodemodel/internal/buildpipeline"
	"jcodemodel/internal/diag"
	"jcodemodel/internal/diagfmt"
	"jcodemodel/internal/driver"
	"jcodemodel/internal/project"
	"jcodemodel/internal/ui"
	"jcodemodel/internal/version"
)

var errOutOfDate = errors.New("generated units are out of date")

type genFlags struct {
	out          string
	charset      string
	prolog       string
	jobs         int
	check        bool
	noCache      bool
	readOnly     bool
	stdout       bool
	zip          string
	list         bool
	uiMode       string
	diagFormat   string
	debugImports bool
	watch        bool
}

func newGenCmd() *cobra.Command {
	var f genFlags
	cmd := &cobra.Command{
		Use:   "gen [descriptor...]",
		Short: "Generate Java sources from struct descriptors",
		Long: `Generate Java sources from struct descriptors.

Without arguments the descriptors are taken from the [generate].models
patterns of the nearest jcm.toml. Flags override the manifest.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, args, &f)
		},
	}
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output directory (default [output].dir)")
	cmd.Flags().StringVar(&f.charset, "charset", "", "output charset, an IANA name (default UTF-8)")
	cmd.Flags().StringVar(&f.prolog, "prolog", "", "comment written at the top of every unit")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "units rendered at once (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&f.check, "check", false, "write nothing and fail when a unit would change")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "rewrite every unit")
	cmd.Flags().BoolVar(&f.readOnly, "read-only", false, "mark written files read-only")
	cmd.Flags().BoolVar(&f.stdout, "stdout", false, "print the units to stdout instead of writing them")
	cmd.Flags().StringVar(&f.zip, "zip", "", "write the units into a zip archive instead of the output directory")
	cmd.Flags().BoolVar(&f.list, "list", false, "print the path of every written unit")
	cmd.Flags().StringVar(&f.uiMode, "ui", "auto", "progress view (auto|on|off)")
	cmd.Flags().StringVar(&f.diagFormat, "diag-format", "short", "diagnostics format (short|pretty|json|sarif)")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "regenerate whenever a descriptor changes")
	cmd.Flags().BoolVar(&f.debugImports, "debug-imports", false, "log import decisions to stderr")
	cmd.Flags().String("trace", "", "write a trace to a file (- for stderr)")
	cmd.Flags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	cmd.Flags().Duration("trace-heartbeat", 0, "emit a trace heartbeat at this interval (0 = off)")
	return cmd
}

func runGen(cmd *cobra.Command, args []string, f *genFlags) error {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	withUI, err := resolveUIMode(f.uiMode, quiet || f.stdout)
	if err != nil {
		return err
	}
	if !slices.Contains(diagFormats, f.diagFormat) {
		return errors.Newf("invalid --diag-format %q (must be %s)", f.diagFormat, strings.Join(diagFormats, ", "))
	}

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get working directory")
	}
	manifest, found, err := project.LoadManifest(cwd)
	if err != nil {
		return err
	}
	if !found {
		manifest = nil
		if len(args) == 0 {
			return errors.WithHint(errors.New("no descriptors given and no jcm.toml found"),
				"pass descriptor files or run jcm init")
		}
	}

	log := zap.NewNop()
	if f.debugImports {
		if log, err = zap.NewDevelopment(); err != nil {
			return errors.Wrap(err, "failed to create logger")
		}
		defer func() { _ = log.Sync() }()
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := driver.Options{
		Descriptors:    args,
		Manifest:       manifest,
		OutDir:         f.out,
		Charset:        f.charset,
		Prolog:         f.prolog,
		ReadOnly:       f.readOnly,
		Jobs:           f.jobs,
		Check:          f.check,
		NoCache:        f.noCache,
		Logger:         log,
		MaxDiagnostics: maxDiagnostics,
	}
	if f.stdout {
		opts.Stream = cmd.OutOrStdout()
	}
	if f.zip != "" {
		if f.stdout || f.check || f.watch {
			return errors.New("--zip cannot be combined with --stdout, --check or --watch")
		}
		archive, err := os.Create(f.zip)
		if err != nil {
			return errors.Wrap(err, "failed to create archive")
		}
		defer archive.Close()
		opts.Archive = archive
	}
	if f.list && !f.stdout {
		opts.Listing = cmd.OutOrStdout()
	}

	if f.watch {
		return watchGen(cmd, opts, f, quiet)
	}

	var res *driver.Result
	generate := func(sink buildpipeline.ProgressSink) error {
		opts.Progress = sink
		var genErr error
		res, genErr = driver.Generate(cmd.Context(), opts)
		return genErr
	}
	if withUI {
		err = ui.Run(cmd.OutOrStdout(), "jcm gen", generate)
	} else {
		err = generate(nil)
	}

	if res != nil && (res.Diagnostics.Len() > 0 || f.diagFormat == "json" || f.diagFormat == "sarif") {
		if diagErr := writeDiagnostics(cmd, res.Diagnostics, f.diagFormat); diagErr != nil {
			return diagErr
		}
	}
	if err != nil {
		if res != nil && res.Diagnostics.HasErrors() {
			return errors.Newf("generation stopped after %d diagnostics", res.Diagnostics.Len())
		}
		return err
	}
	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
	}
	return reportGen(cmd.ErrOrStderr(), res, f, quiet)
}

func watchGen(cmd *cobra.Command, opts driver.Options, f *genFlags, quiet bool) error {
	if f.check || f.stdout {
		return errors.New("--watch cannot be combined with --check or --stdout")
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	w := cmd.ErrOrStderr()
	return driver.Watch(ctx, opts, func(res *driver.Result, err error) {
		if res != nil && res.Diagnostics.Len() > 0 {
			if diagErr := writeDiagnostics(cmd, res.Diagnostics, f.diagFormat); diagErr != nil {
				printError(w, diagErr)
			}
		}
		if err != nil {
			printError(w, err)
			return
		}
		_ = reportGen(w, res, f, quiet)
	})
}

func reportGen(w io.Writer, res *driver.Result, f *genFlags, quiet bool) error {
	switch {
	case f.check:
		for _, p := range res.Changed {
			fmt.Fprintf(w, "%s %s\n", color.YellowString("would change:"), p)
		}
		if len(res.Changed) > 0 {
			return errors.Wrapf(errOutOfDate, "%d of %d units", len(res.Changed), len(res.Emit.Units))
		}
		if !quiet {
			fmt.Fprintf(w, "%s %d units up to date\n", color.GreenString("ok:"), len(res.Emit.Units))
		}
	case f.stdout:
	case f.zip != "" && !quiet:
		fmt.Fprintf(w, "%s %d units into %s\n", color.GreenString("archived:"), len(res.Emit.Units), f.zip)
	case !quiet:
		fmt.Fprintf(w, "%s %d written, %d unchanged\n",
			color.GreenString("generated:"), len(res.Written), len(res.Skipped))
	}
	return nil
}

var diagFormats = []string{"short", "pretty", "json", "sarif"}

// writeDiagnostics prints the bag in the chosen format. Machine formats go
// to stdout, the others to stderr.
func writeDiagnostics(cmd *cobra.Command, bag *diag.Bag, format string) error {
	switch format {
	case "pretty":
		return diagfmt.Pretty(cmd.ErrOrStderr(), bag, diagfmt.PrettyOpts{
			Color:     !color.NoColor,
			ShowNotes: true,
			ShowHints: true,
		})
	case "json":
		return diagfmt.JSON(cmd.OutOrStdout(), bag, diagfmt.JSONOpts{IncludeNotes: true, IncludeHints: true})
	case "sarif":
		return diagfmt.Sarif(cmd.OutOrStdout(), bag, diagfmt.SarifRunMeta{
			ToolName:       "jcm",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	}
	printDiagnostics(cmd.ErrOrStderr(), bag)
	return nil
}

func printDiagnostics(w io.Writer, bag *diag.Bag) {
	text := diag.FormatShort(bag.Items(), true)
	for line := range strings.SplitSeq(strings.TrimRight(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "error"):
			line = color.RedString("error") + strings.TrimPrefix(line, "error")
		case strings.HasPrefix(line, "warning"):
			line = color.YellowString("warning") + strings.TrimPrefix(line, "warning")
		}
		fmt.Fprintln(w, line)
	}
}

func resolveUIMode(mode string, suppressed bool) (bool, error) {
	switch strings.ToLower(mode) {
	case "auto":
		return !suppressed && isTerminal(os.Stdout), nil
	case "on":
		return !suppressed, nil
	case "off":
		return false, nil
	}
	return false, errors.Newf("invalid --ui %q (must be auto, on or off)", mode)
}
