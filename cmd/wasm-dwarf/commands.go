package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/namui/wasm-dwarf/config"
	"github.com/namui/wasm-dwarf/patch"
	"github.com/namui/wasm-dwarf/strip"
	"github.com/namui/wasm-dwarf/verify"
)

const longDesc = `wasm-dwarf moves DWARF debug info out of a WebAssembly module.

It strips the ".debug*" custom sections from a module into a sibling file and
appends an "external_debug_info" section that tells debuggers where to find
the original, unstripped module.

Defaults are read from wasm-dwarf.yml in the working directory, if present.`

type globalOptions struct {
	configFile string
	verbose    bool
}

// stripOptions override the config file for commands that strip.
type stripOptions struct {
	objcopy  string
	sections []string
	native   bool
}

func (o *stripOptions) register(fs *pflag.FlagSet) {
	fs.StringVar(&o.objcopy, "objcopy", "", "objcopy executable (default llvm-objcopy)")
	fs.StringSliceVar(&o.sections, "remove-section", nil, "section glob to remove (repeatable, default .debug*)")
	fs.BoolVar(&o.native, "native", false, "strip in-process instead of running objcopy")
}

func (o *stripOptions) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("objcopy") {
		cfg.Objcopy = o.objcopy
	}
	if fs.Changed("remove-section") {
		cfg.RemoveSections = o.sections
	}
	if fs.Changed("native") {
		cfg.Native = o.native
	}
}

func newRootCommand() *cobra.Command {
	var g globalOptions

	root := &cobra.Command{
		Use:           "wasm-dwarf",
		Short:         "Strip DWARF from a WebAssembly module and point it at the debug build.",
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(g.verbose)
		},
	}
	root.PersistentFlags().StringVarP(&g.configFile, "config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newPatchCommand(&g),
		newStripCommand(&g),
		newAppendCommand(),
		newInspectCommand(),
		newConfigCommand(&g),
	)
	return root
}

func newPatchCommand(g *globalOptions) *cobra.Command {
	var (
		so       stripOptions
		url      string
		doVerify bool
	)

	cmd := &cobra.Command{
		Use:   "patch <source.wasm> <stripped.wasm>",
		Short: "Strip debug sections and append an external_debug_info section.",
		Long: `Strips the debug sections of source.wasm into stripped.wasm, then appends an
external_debug_info section referencing source.wasm.

The reference is --url when given. Otherwise it is the path of source.wasm
relative to the directory of stripped.wasm, with forward slashes.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.configFile)
			if err != nil {
				return err
			}
			so.apply(cmd.Flags(), cfg)
			if cmd.Flags().Changed("url") {
				cfg.URL = url
			}
			if cmd.Flags().Changed("verify") {
				cfg.Verify = doVerify
			}

			source, stripped := args[0], args[1]
			ref, err := patch.ReferencePath(source, stripped, cfg.URL)
			if err != nil {
				return err
			}
			if err := patch.New(cfg.Stripper()).Patch(cmd.Context(), source, stripped, ref); err != nil {
				return err
			}
			if cfg.Verify {
				if _, err := verify.File(cmd.Context(), stripped, true); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (external_debug_info: %s)\n", source, stripped, ref)
			return nil
		},
	}
	so.register(cmd.Flags())
	cmd.Flags().StringVar(&url, "url", "", "reference embedded verbatim (URL or path)")
	cmd.Flags().BoolVar(&doVerify, "verify", false, "check and compile the patched module")
	return cmd
}

func newStripCommand(g *globalOptions) *cobra.Command {
	var so stripOptions

	cmd := &cobra.Command{
		Use:   "strip <input.wasm> <output.wasm>",
		Short: "Remove debug sections without appending a reference.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.configFile)
			if err != nil {
				return err
			}
			so.apply(cmd.Flags(), cfg)
			return cfg.Stripper().Strip(cmd.Context(), args[0], args[1])
		},
	}
	so.register(cmd.Flags())
	return cmd
}

func newAppendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "append <stripped.wasm> <reference>",
		Short: "Append an external_debug_info section to an already stripped module.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return patch.Append(args[0], args[1])
		},
	}
}

func newConfigCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(g.configFile)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func setupLogging(verbose bool) error {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	strip.SetLogger(l)
	patch.SetLogger(l)
	return nil
}
