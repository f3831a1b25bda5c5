package strip

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/namui/wasm-dwarf/errors"
	"github.com/namui/wasm-dwarf/wasm"
)

// Native strips custom sections in-process by copying every section whose
// name does not match one of Sections.
type Native struct {
	// Sections are custom section name globs (path.Match syntax). Defaults to DefaultSections.
	Sections []string
}

// Strip reads input, drops matching custom sections and writes output.
// Output is written to a temporary file beside it and renamed into place,
// so output is never created when stripping fails.
func (n *Native) Strip(ctx context.Context, input, output string) error {
	if err := ctx.Err(); err != nil {
		return errors.StripFailed(input, -1, "canceled", err)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return errors.StripFailed(input, -1, "read module", err)
	}
	stripped, removed, err := n.strip(data)
	if err != nil {
		return errors.StripFailed(input, -1, "scan sections", err)
	}

	Logger().Debug("stripped sections",
		zap.String("input", input),
		zap.Strings("removed", removed),
		zap.Int("before", len(data)),
		zap.Int("after", len(stripped)))

	return writeFileAtomic(output, stripped)
}

// strip returns data without the matching sections and the names it dropped.
func (n *Native) strip(data []byte) ([]byte, []string, error) {
	headers, err := wasm.ScanSections(data)
	if err != nil {
		return nil, nil, err
	}

	globs := sectionsOrDefault(n.Sections)
	out := make([]byte, 0, len(data))
	out = append(out, data[:wasm.HeaderSize]...)

	var removed []string
	for _, h := range headers {
		if h.Matches(globs...) {
			removed = append(removed, h.Name)
			continue
		}
		out = append(out, data[h.Offset:h.End()]...)
	}
	return out, removed, nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".wasm-dwarf-*")
	if err != nil {
		return errors.IO(errors.PhaseStrip, path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.IO(errors.PhaseStrip, path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return errors.IO(errors.PhaseStrip, path, err)
	}
	if err = tmp.Close(); err != nil {
		return errors.IO(errors.PhaseStrip, path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.IO(errors.PhaseStrip, path, err)
	}
	return nil
}
