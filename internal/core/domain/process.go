package domain

import (
	"fmt"
	"strings"
)

// Process labels used for output routing.
const (
	LabelCompiler      = "tsc"
	LabelAliasResolver = "tsc-alias"
	LabelOrchestrator  = "tsbuild"
)

// ProcessSpec describes an external command to run.
type ProcessSpec struct {
	// Label names the process in logs and display regions.
	Label string
	// Command is the executable name or path.
	Command string
	// Args are the command arguments.
	Args []string
	// Dir is the working directory.
	Dir string
}

// String renders the command line for logs.
func (s ProcessSpec) String() string {
	if len(s.Args) == 0 {
		return s.Command
	}
	return s.Command + " " + strings.Join(s.Args, " ")
}

// NewProcessSpec builds a spec from a command prefix (as configured in settings) and extra args.
func NewProcessSpec(label string, prefix []string, dir string, args ...string) ProcessSpec {
	spec := ProcessSpec{Label: label, Dir: dir}
	if len(prefix) > 0 {
		spec.Command = prefix[0]
		spec.Args = append(spec.Args, prefix[1:]...)
	}
	spec.Args = append(spec.Args, args...)
	return spec
}

// ExitStatus is the final state of a managed process.
type ExitStatus struct {
	// Code is the exit code, or -1 when the process was killed by a signal.
	Code int
	// Signaled is true when the process was terminated by a signal.
	Signaled bool
	// Err is set when waiting on the process failed for a reason other than a non-zero exit.
	Err error
}

// Failed reports whether the exit should bring the session down.
func (s ExitStatus) Failed() bool {
	return !s.Signaled && s.Code != 0
}

// ProcessError is returned when a one-shot process exits with a non-zero code.
// Its message is the captured combined output of the process.
type ProcessError struct {
	Label    string
	Command  string
	ExitCode int
	Output   string
}

func (e *ProcessError) Error() string {
	if e.Output != "" {
		return e.Output
	}
	return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
}

// ExitError carries a non-zero process exit code up to main.
type ExitError struct {
	Code  int
	Label string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Label, e.Code)
}

// ExitCode returns the code the binary should exit with.
func (e *ExitError) ExitCode() int {
	return e.Code
}
