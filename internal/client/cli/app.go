package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/supportchat/internal/client/api"
	"github.com/dmitrijs2005/supportchat/internal/client/config"
)

// chatAPI is the part of api.Client the CLI uses.
type chatAPI interface {
	SetToken(token string)
	Signup(ctx context.Context, username, password string) (*api.Session, error)
	Login(ctx context.Context, username, password string) (*api.Session, error)
	SendMessage(ctx context.Context, userID, text string) (string, error)
	History(ctx context.Context, userID string) ([]api.Message, error)
	ExportHistory(ctx context.Context) (*api.Export, error)
}

type App struct {
	config   *config.Config
	api      chatAPI
	reader   *bufio.Reader
	out      io.Writer
	now      func() time.Time
	userID   string
	userName string
}

func NewApp(c *config.Config) *App {
	a := &App{
		config: c,
		api:    api.NewClient(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		now:    time.Now,
	}
	a.becomeGuest()
	return a
}

// Run prints a greeting and serves the REPL until the user exits or stdin
// closes.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "Support chat at %s (type 'help' for commands)\n", a.config.ServerURL)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) becomeGuest() {
	a.userID = fmt.Sprintf("guest-%d", a.now().UnixMilli())
	a.userName = ""
	a.api.SetToken("")
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.isLoggedIn() {
		return a.userName
	}
	return "guest"
}
