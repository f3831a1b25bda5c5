package strip

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/namui/wasm-dwarf/errors"
)

// DefaultObjcopy is the objcopy executable used when Objcopy.Path is empty.
const DefaultObjcopy = "llvm-objcopy"

// Objcopy strips sections by running an external objcopy:
//
//	<Path> <input> <output> --remove-section=<glob>...
type Objcopy struct {
	// Path is the objcopy executable. Defaults to DefaultObjcopy looked up in PATH.
	Path string
	// Sections are the globs passed as --remove-section. Defaults to DefaultSections.
	Sections []string
}

// NewObjcopy returns an Objcopy running path with the default section globs.
func NewObjcopy(path string) *Objcopy {
	return &Objcopy{Path: path}
}

// Args returns the command line arguments passed to objcopy.
func (o *Objcopy) Args(input, output string) []string {
	args := []string{input, output}
	for _, s := range sectionsOrDefault(o.Sections) {
		args = append(args, "--remove-section="+s)
	}
	return args
}

// Strip runs objcopy and waits for it to exit. A process that cannot be
// started yields errors.KindProcessLaunch; a non-zero exit status yields
// errors.KindStripFailed carrying the exit code and objcopy's stderr.
func (o *Objcopy) Strip(ctx context.Context, input, output string) error {
	program := o.Path
	if program == "" {
		program = DefaultObjcopy
	}
	args := o.Args(input, output)

	Logger().Debug("running objcopy",
		zap.String("program", program),
		zap.Strings("args", args))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !stderrors.As(err, &exitErr) {
		return errors.ProcessLaunch(program, err)
	}

	msg := strings.TrimSpace(stderr.String())
	Logger().Debug("objcopy failed",
		zap.String("input", input),
		zap.Int("exit_code", exitErr.ExitCode()),
		zap.String("stderr", msg))

	detail := exitErr.String()
	if msg != "" {
		detail += ": " + msg
	}
	return errors.StripFailed(input, exitErr.ExitCode(), detail, err)
}
