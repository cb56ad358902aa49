// Package shellbridge lets railskit ask the activated shell wrapper to
// change the caller's working directory after a command exits.
package shellbridge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

const (
	EnvWrapper         = "RAILSKIT_WRAPPER_ACTIVE"
	EnvInstructionFile = "RAILSKIT_INSTRUCTION_FILE"
)

// ErrWrapperMissing indicates the shell function wrapper is not active.
var ErrWrapperMissing = errors.New("shell wrapper missing; add `eval \"$(railskit activate)\"` to your shell rc")

// Bridge is the wrapper state handed down through the environment.
type Bridge struct {
	Marked          bool
	InstructionFile string
}

// FromEnv reads the wrapper variables of the current process.
func FromEnv() Bridge {
	return Bridge{
		Marked:          os.Getenv(EnvWrapper) == "1",
		InstructionFile: os.Getenv(EnvInstructionFile),
	}
}

// Ready reports whether the wrapper is active and gave us a file to write.
func (b Bridge) Ready() bool {
	return b.Marked && b.InstructionFile != ""
}

// Require explains what is missing when the wrapper is not ready.
func (b Bridge) Require(feature string) error {
	if b.Ready() {
		return nil
	}
	if feature == "" {
		feature = "this command"
	}
	return fmt.Errorf("%s requires the railskit shell wrapper: %w", feature, ErrWrapperMissing)
}

// ChangeDirectory leaves dir in the instruction file; the wrapper cds
// there once railskit exits successfully.
func (b Bridge) ChangeDirectory(dir string) error {
	if err := b.Require("changing directories"); err != nil {
		return err
	}
	if strings.ContainsAny(dir, "\n\r") {
		return fmt.Errorf("refusing to hand the wrapper a path containing a newline: %q", dir)
	}
	if err := os.MkdirAll(filepath.Dir(b.InstructionFile), 0o755); err != nil {
		return err
	}
	return atomic.WriteFile(b.InstructionFile, strings.NewReader(dir))
}

// ChangeDirectory is Bridge.ChangeDirectory for the current process.
func ChangeDirectory(dir string) error {
	return FromEnv().ChangeDirectory(dir)
}
