package patch

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/namui/wasm-dwarf/errors"
	"github.com/namui/wasm-dwarf/strip"
	"github.com/namui/wasm-dwarf/wasm"
)

// Patcher strips a module and points the stripped copy at the original.
type Patcher struct {
	stripper strip.Stripper
}

// New creates a Patcher using s for the strip step.
func New(s strip.Stripper) *Patcher {
	return &Patcher{stripper: s}
}

// Patch strips source into stripped, then appends an external_debug_info
// section referencing reference to stripped. Strip errors are returned
// unchanged and the append step is skipped.
func (p *Patcher) Patch(ctx context.Context, source, stripped, reference string) error {
	if source == "" || stripped == "" {
		return errors.InvalidInput(errors.PhasePatch, "source and stripped module paths are required")
	}
	if sameFile(source, stripped) {
		return errors.InvalidInput(errors.PhasePatch, "stripped module must not overwrite the source module")
	}

	log := Logger().With(
		zap.String("source", source),
		zap.String("stripped", stripped))

	log.Debug("stripping debug sections")
	if err := p.stripper.Strip(ctx, source, stripped); err != nil {
		var e *errors.Error
		if !stderrors.As(err, &e) {
			err = errors.StripFailed(source, -1, "strip", err)
		}
		log.Debug("strip failed", zap.Error(err))
		return err
	}

	if err := Append(stripped, reference); err != nil {
		log.Debug("append failed", zap.Error(err))
		return err
	}
	log.Info("patched module", zap.String("reference", reference))
	return nil
}

// Append writes an external_debug_info section referencing reference to the
// end of the module at path. The file must already exist; its existing bytes
// are left untouched. Partial writes are not rolled back.
func Append(path, reference string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return errors.IO(errors.PhasePatch, path, err)
	}

	sec := wasm.ExternalDebugInfo(reference).Bytes()
	if _, err := f.Write(sec); err != nil {
		f.Close()
		return errors.IO(errors.PhasePatch, path, err)
	}
	if err := f.Close(); err != nil {
		return errors.IO(errors.PhasePatch, path, err)
	}

	Logger().Debug("appended section",
		zap.String("path", path),
		zap.String("section", wasm.ExternalDebugInfoSection),
		zap.Int("bytes", len(sec)))
	return nil
}

// ReferencePath returns the reference to embed in stripped. An explicit url
// is used verbatim; otherwise the reference is the path of source relative to
// the directory of stripped, with forward slashes.
func ReferencePath(source, stripped, url string) (string, error) {
	if url != "" {
		return url, nil
	}
	absSource, err := filepath.Abs(source)
	if err != nil {
		return "", errors.Wrap(errors.PhasePatch, errors.KindInvalidInput, err, "resolve source path")
	}
	absStripped, err := filepath.Abs(stripped)
	if err != nil {
		return "", errors.Wrap(errors.PhasePatch, errors.KindInvalidInput, err, "resolve stripped path")
	}
	rel, err := filepath.Rel(filepath.Dir(absStripped), absSource)
	if err != nil {
		return "", errors.Wrap(errors.PhasePatch, errors.KindInvalidInput, err, "relative reference")
	}
	return filepath.ToSlash(rel), nil
}

func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	sa, err := os.Stat(a)
	if err != nil {
		return false
	}
	sb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(sa, sb)
}
