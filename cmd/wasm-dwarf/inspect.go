package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/namui/wasm-dwarf/errors"
	"github.com/namui/wasm-dwarf/verify"
	"github.com/namui/wasm-dwarf/wasm"
)

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	debug   lipgloss.Style
	ref     lipgloss.Style
	missing lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	if !isTerminal(w) {
		plain := r.NewStyle()
		return styles{plain, plain, plain, plain, plain}
	}
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		header:  r.NewStyle().Bold(true),
		debug:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		ref:     r.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		missing: r.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newInspectCommand() *cobra.Command {
	var compile bool

	cmd := &cobra.Command{
		Use:   "inspect <module.wasm>",
		Short: "List the sections of a module and its external_debug_info reference.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return errors.IO(errors.PhaseVerify, path, err)
			}
			report, err := verify.Inspect(data)
			if err != nil {
				return err
			}

			var custom []string
			if compile {
				if custom, err = verify.Compile(cmd.Context(), data); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			printReport(out, newStyles(out), path, report)
			if compile {
				fmt.Fprintf(out, "\ncompiled OK, custom sections kept: %s\n", strings.Join(custom, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&compile, "compile", false, "also compile the module with wazero")
	return cmd
}

func printReport(w io.Writer, s styles, path string, r *verify.Report) {
	fmt.Fprintln(w, s.title.Render(fmt.Sprintf("%s (%d bytes)", path, r.Size)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.header.Render(fmt.Sprintf("%4s  %10s  %10s  %s", "ID", "OFFSET", "SIZE", "NAME")))
	for _, h := range r.Sections {
		line := fmt.Sprintf("%4d  %10d  %10d  %s", h.ID, h.Offset, h.Size, h.Name)
		if h.Matches(wasm.DebugSectionGlob) {
			line = s.debug.Render(line)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "debug sections: %d\n", len(r.DebugSections))
	if r.HasReference {
		fmt.Fprintf(w, "%s: %s\n", wasm.ExternalDebugInfoSection, s.ref.Render(r.Reference))
	} else {
		fmt.Fprintf(w, "%s: %s\n", wasm.ExternalDebugInfoSection, s.missing.Render("none"))
	}
}
