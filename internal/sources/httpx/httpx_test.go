package httpx

import (
	"context"
	"os"
	"testing"

	"byakugan/internal/core/domain"
	"byakugan/internal/core/ports"
	"byakugan/internal/platform/logx"
	"byakugan/internal/testutil"
)

// fakeRunner captura el archivo de hosts mientras todavía existe.
type fakeRunner struct {
	stdout   string
	err      error
	calls    int
	args     []string
	listFile string
	listBody string
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) (ports.CommandResult, error) {
	f.calls++
	f.args = args
	if len(args) == 3 {
		f.listFile = args[2]
		data, _ := os.ReadFile(args[2])
		f.listBody = string(data)
	}
	return ports.CommandResult{Stdout: []byte(f.stdout)}, f.err
}

func TestProber_Probe(t *testing.T) {
	runner := &fakeRunner{stdout: "https://www.example.com\nhttps://admin.example.com\n"}
	prober := New(runner, logx.NewSilent())

	live, err := prober.Probe(context.Background(), []string{"admin.example.com", "dead.example.com", "www.example.com"})
	testutil.AssertNoError(t, err, "probe")
	testutil.AssertStrings(t, live, []string{"https://www.example.com", "https://admin.example.com"}, "tool order is kept")

	testutil.AssertEqual(t, runner.args[0], "-silent", "silent flag")
	testutil.AssertEqual(t, runner.args[1], "-l", "list flag")
	testutil.AssertEqual(t, runner.listBody, "admin.example.com\ndead.example.com\nwww.example.com\n", "candidate list")
	testutil.AssertFalse(t, testutil.FileExists(runner.listFile), "temp list should be removed")
}

func TestProber_ProbeEmpty(t *testing.T) {
	runner := &fakeRunner{}
	prober := New(runner, logx.NewSilent())

	live, err := prober.Probe(context.Background(), nil)
	testutil.AssertNoError(t, err, "empty probe")
	testutil.AssertLen(t, live, 0, "no live hosts")
	testutil.AssertEqual(t, runner.calls, 0, "tool must not run for an empty list")
}

func TestProber_ProbeToolFailure(t *testing.T) {
	runner := &fakeRunner{stdout: "https://x.example.com\n", err: domain.ErrToolFailed}
	prober := New(runner, logx.NewSilent())

	live, err := prober.Probe(context.Background(), []string{"x.example.com"})
	testutil.AssertError(t, err, "failure propagates")
	testutil.AssertLen(t, live, 0, "failed run yields nothing")
	testutil.AssertFalse(t, testutil.FileExists(runner.listFile), "temp list removed on failure too")
}
