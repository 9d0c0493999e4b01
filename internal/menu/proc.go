package menu

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// runMenuProc is the real process runner: it spawns the command with all
// three standard streams piped, writes the input lines newline-joined to
// stdin, and collects stdout and stderr until the process exits. exec.Cmd
// owns the pipes, so every stream is closed on every exit path, including
// spawn failures.
func runMenuProc(ctx context.Context, cmdTokens []string, input []string) ([]string, error) {
	if len(cmdTokens) == 0 {
		return nil, &LaunchError{Cmd: cmdTokens, Err: errors.New("empty command")}
	}

	cmd := exec.CommandContext(ctx, cmdTokens[0], cmdTokens[1:]...)
	cmd.Stdin = strings.NewReader(strings.Join(input, "\n"))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return classifyResult(cmdTokens, stdout.String(), stderr.String(), err)
}

// classifyResult turns the raw outcome of a selector run into selected lines
// or a typed failure:
//
//   - the process never started: LaunchError carrying the attempted command
//   - non-zero exit with "usage" in stderr: UsageError (the tool rejected
//     the arguments it was given)
//   - anything else is a successful round-trip; a non-zero exit without the
//     usage marker means the user dismissed the menu, which yields whatever
//     output there was (usually none)
//
// The "usage" substring match is deliberately loose: the wording belongs to
// the external tool and varies across forks.
func classifyResult(cmdTokens []string, stdout, stderr string, runErr error) ([]string, error) {
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, &LaunchError{Cmd: cmdTokens, Err: runErr}
		}
		if strings.Contains(stderr, "usage") {
			return nil, &UsageError{Cmd: cmdTokens, Stderr: stderr}
		}
	}
	return splitOutput(stdout), nil
}

// splitOutput trims trailing whitespace from the captured stdout and splits
// it into lines. Empty output yields an empty (non-nil) slice.
func splitOutput(stdout string) []string {
	out := strings.TrimRight(stdout, " \t\r\n")
	if out == "" {
		return []string{}
	}
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}
