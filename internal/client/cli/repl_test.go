package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	sent  []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Signup(context.Context) error {
	f.calls = append(f.calls, "signup")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) History(context.Context) error { f.calls = append(f.calls, "history"); return nil }
func (f *fakeExec) Export(context.Context) error  { f.calls = append(f.calls, "export"); return nil }
func (f *fakeExec) Chat(_ context.Context, text string) error {
	f.calls = append(f.calls, "chat")
	f.sent = append(f.sent, text)
	return nil
}

// silence captures REPL output: prompts and lines land in separate slices.
func silence(t *testing.T) (prompts, lines *[]string) {
	t.Helper()
	var p, l []string
	collect := func(dst *[]string) func(a ...any) (int, error) {
		return func(a ...any) (int, error) {
			for _, v := range a {
				if s, ok := v.(string); ok {
					*dst = append(*dst, s)
				}
			}
			return 0, nil
		}
	}

	origPrintln, origPrint := printlnFn, printFn
	printlnFn = collect(&l)
	printFn = collect(&p)
	t.Cleanup(func() {
		printlnFn = origPrintln
		printFn = origPrint
	})
	return &p, &l
}

func TestRunREPL_CommandsAndChat(t *testing.T) {
	silence(t)

	input := strings.Join([]string{
		"help",
		"What are your hours?",
		"",
		"login",
		"history",
		"export",
		"logout",
		"register",
		"exit",
		"never read",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"chat", "login", "history", "export", "logout", "signup"}, exec.calls)
	assert.Equal(t, []string{"What are your hours?"}, exec.sent)
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	silence(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("hello")))

	assert.Equal(t, []string{"hello"}, exec.sent)
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	prompts, lines := silence(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "alice" }, bufio.NewReader(strings.NewReader("help\nquit\n")))

	assert.Equal(t, []string{"chat (alice)> ", "chat (alice)> "}, *prompts)
	assert.NotContains(t, *lines, "chat (alice)> ")
	assert.Contains(t, *lines, "Commands: history, export, logout, exit. Anything else is sent to the assistant.")
	assert.Contains(t, *lines, "Bye!")
	assert.Empty(t, exec.calls)
}

func TestRunREPL_CommandWordsInsideMessagesAreChat(t *testing.T) {
	silence(t)

	input := strings.Join([]string{
		"help me track my order",
		"history of your company?",
		"  history  ",
		"exit please",
		"login",
		"quit",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"help me track my order", "history of your company?", "exit please"}, exec.sent)
	assert.Equal(t, []string{"chat", "chat", "history", "chat", "login"}, exec.calls)
}
