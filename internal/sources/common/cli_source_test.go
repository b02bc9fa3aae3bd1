package common

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/platform/logx"
	"byakugan/internal/testutil"
)

// fakeRunner implements ports.CommandRunner for testing
type fakeRunner struct {
	result ports.CommandResult
	err    error

	calls    int
	lastName string
	lastArgs []string
	deadline bool
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (ports.CommandResult, error) {
	f.calls++
	f.lastName = name
	f.lastArgs = args
	_, f.deadline = ctx.Deadline()
	return f.result, f.err
}

func TestExecRunner_Success(t *testing.T) {
	runner := NewExecRunner(logx.NewSilent())

	res, err := runner.Run(context.Background(), "echo", "hello\nworld")
	testutil.AssertNoError(t, err, "echo should succeed")
	testutil.AssertEqual(t, res.ExitCode, 0, "exit code")
	testutil.AssertStrings(t, ParseLines(res.Stdout), []string{"hello", "world"}, "stdout lines")
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	runner := NewExecRunner(logx.NewSilent())

	res, err := runner.Run(context.Background(), "sh", "-c", "echo partial; echo oops >&2; exit 3")
	testutil.AssertError(t, err, "non-zero exit should fail")
	testutil.AssertTrue(t, errors.Is(err, domain.ErrToolFailed), "should be classified as ErrToolFailed")
	testutil.AssertEqual(t, res.ExitCode, 3, "exit code")
	testutil.AssertEqual(t, strings.TrimSpace(string(res.Stdout)), "partial", "stdout is still captured")
	testutil.AssertEqual(t, strings.TrimSpace(string(res.Stderr)), "oops", "stderr is captured")
}

func TestExecRunner_CommandNotFound(t *testing.T) {
	runner := NewExecRunner(logx.NewSilent())

	_, err := runner.Run(context.Background(), "byakugan-nonexistent-tool-xyz")
	testutil.AssertTrue(t, errors.Is(err, domain.ErrToolMissing), "missing binary should be ErrToolMissing")
}

func TestExecRunner_ContextCancellation(t *testing.T) {
	runner := NewExecRunner(logx.NewSilent())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := runner.Run(ctx, "sleep", "5")
	testutil.AssertTrue(t, errors.Is(err, context.DeadlineExceeded), "should report the deadline")
	testutil.AssertTrue(t, time.Since(start) < 4*time.Second, "process should be killed early")
}

func TestBaseCLISource_RunLines(t *testing.T) {
	runner := &fakeRunner{result: ports.CommandResult{Stdout: []byte("  b.example.com \n\na.example.com\n")}}
	base := NewBaseCLISource(runner, logx.NewSilent(), BaseCLIConfig{
		SourceName: "subfinder",
		Timeout:    time.Minute,
	})

	lines, err := base.RunLines(context.Background(), "-d", "example.com", "-silent")
	testutil.AssertNoError(t, err, "RunLines")
	testutil.AssertStrings(t, lines, []string{"b.example.com", "a.example.com"}, "lines keep tool order")
	testutil.AssertEqual(t, runner.lastName, "subfinder", "exec path defaults to source name")
	testutil.AssertStrings(t, runner.lastArgs, []string{"-d", "example.com", "-silent"}, "args")
	testutil.AssertTrue(t, runner.deadline, "timeout should be applied to ctx")
	testutil.AssertEqual(t, base.GetExecPath(), "subfinder", "exec path")
}

func TestBaseCLISource_RunLines_Failure(t *testing.T) {
	runner := &fakeRunner{
		result: ports.CommandResult{Stdout: []byte("a.example.com\n"), ExitCode: 1},
		err:    domain.ErrToolFailed,
	}
	base := NewBaseCLISource(runner, logx.NewSilent(), BaseCLIConfig{SourceName: "amass"})

	lines, err := base.RunLines(context.Background())
	testutil.AssertError(t, err, "failure should propagate")
	testutil.AssertLen(t, lines, 0, "a failed tool contributes nothing")
	testutil.AssertFalse(t, runner.deadline, "no timeout configured")
}

func TestParseLines(t *testing.T) {
	testutil.AssertLen(t, ParseLines(nil), 0, "nil input")
	testutil.AssertNotNil(t, ParseLines(nil), "nil input returns empty slice")
	testutil.AssertStrings(t, ParseLines([]byte("x\r\n  y  \n\n")), []string{"x", "y"}, "crlf and blanks")
}

func TestWriteTempList(t *testing.T) {
	path, cleanup, err := WriteTempList("hosts-*.txt", []string{"a.example.com", "b.example.com"})
	testutil.AssertNoError(t, err, "WriteTempList")

	testutil.AssertEqual(t, testutil.ReadFile(t, path), "a.example.com\nb.example.com\n", "file content")

	cleanup()
	_, statErr := os.Stat(path)
	testutil.AssertTrue(t, os.IsNotExist(statErr), "cleanup should remove the file")
}
