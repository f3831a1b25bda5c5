package strip

import (
	"context"

	"github.com/namui/wasm-dwarf/wasm"
)

// Stripper writes a copy of the module at input to output without its
// debug sections. Implementations block until output is complete.
type Stripper interface {
	Strip(ctx context.Context, input, output string) error
}

// Func adapts an ordinary function to the Stripper interface.
type Func func(ctx context.Context, input, output string) error

// Strip calls f(ctx, input, output).
func (f Func) Strip(ctx context.Context, input, output string) error {
	return f(ctx, input, output)
}

// DefaultSections are the section globs removed when none are configured.
var DefaultSections = []string{wasm.DebugSectionGlob}

func sectionsOrDefault(sections []string) []string {
	if len(sections) == 0 {
		return DefaultSections
	}
	return sections
}
