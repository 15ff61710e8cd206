package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/supportchat/internal/server/models"
)

// --- helpers ---

type fakeUsersRepo struct {
	createErr error
	getOut    *models.User
	getErr    error
}

func (f *fakeUsersRepo) Create(context.Context, *models.User) error {
	return f.createErr
}

func (f *fakeUsersRepo) GetUserByLogin(context.Context, string) (*models.User, error) {
	return f.getOut, f.getErr
}

// failingMessagesRepo fails Create calls whose sender is listed in failFor.
type failingMessagesRepo struct {
	mu      sync.Mutex
	failFor map[models.Sender]bool
	created []models.ChatMessage
	listErr error
}

func (f *failingMessagesRepo) Create(_ context.Context, m *models.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[m.Sender] {
		return errors.New("write refused")
	}
	f.created = append(f.created, *m)
	return nil
}

func (f *failingMessagesRepo) ListByUser(context.Context, string) ([]*models.ChatMessage, error) {
	return nil, f.listErr
}

type stubGateway struct {
	reply  string
	err    error
	prompt string
	calls  int
}

func (g *stubGateway) Complete(_ context.Context, p string) (string, error) {
	g.calls++
	g.prompt = p
	return g.reply, g.err
}

// sequence returns deterministic ids id-1, id-2, ...
func sequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// ticker returns strictly increasing timestamps one second apart.
func ticker(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}
