package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type execStub struct {
	calls []string
}

func (s *execStub) Register(context.Context) error       { s.calls = append(s.calls, "register"); return nil }
func (s *execStub) Login(context.Context) error          { s.calls = append(s.calls, "login"); return nil }
func (s *execStub) ForgotPassword(context.Context) error { s.calls = append(s.calls, "forgot"); return nil }
func (s *execStub) Backups(context.Context) error        { s.calls = append(s.calls, "backup"); return nil }
func (s *execStub) ViewAuditLog(context.Context) error   { s.calls = append(s.calls, "audit"); return nil }

func runWith(input string) (*execStub, string) {
	stub := &execStub{}
	var out bytes.Buffer
	runREPL(context.Background(), stub, func() string { return "" }, newReader(input), &out)
	return stub, out.String()
}

func TestREPL_DispatchesCommands(t *testing.T) {
	stub, _ := runWith("register\nlogin\nforgot\nbackup\naudit\nexit\n")
	assert.Equal(t, []string{"register", "login", "forgot", "backup", "audit"}, stub.calls)
}

func TestREPL_ExitAndQuit(t *testing.T) {
	_, out := runWith("exit\n")
	assert.Contains(t, out, "Goodbye.")

	_, out = runWith("quit\n")
	assert.Contains(t, out, "Goodbye.")
}

func TestREPL_EOFTerminates(t *testing.T) {
	stub, _ := runWith("")
	assert.Empty(t, stub.calls)
}

func TestREPL_UnknownAndBlankLines(t *testing.T) {
	stub, out := runWith("\n\nbogus\nhelp\nexit\n")
	assert.Empty(t, stub.calls)
	assert.Contains(t, out, "Unknown command: bogus")
	assert.Contains(t, out, "Available commands")
}

func TestREPL_PromptShowsStatus(t *testing.T) {
	stub := &execStub{}
	var out bytes.Buffer
	runREPL(context.Background(), stub, func() string { return "(alice/student)" }, newReader("exit\n"), &out)
	assert.Contains(t, out.String(), "gradebook (alice/student)> ")
}
