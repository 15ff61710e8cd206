package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/supportchat/internal/client/api"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Signup creates an account and continues the session as that user.
func (a *App) Signup(ctx context.Context) error {
	return a.authenticate(ctx, a.api.Signup)
}

// Login authenticates and continues the session as that user. Messages sent
// as a guest stay under the guest id.
func (a *App) Login(ctx context.Context) error {
	return a.authenticate(ctx, a.api.Login)
}

func (a *App) authenticate(ctx context.Context, call func(context.Context, string, string) (*api.Session, error)) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer clear(password)

	s, err := call(ctx, userName, string(password))
	if err != nil {
		fmt.Fprintf(a.out, "Failed: %s\n", err)
		return err
	}

	a.api.SetToken(s.Token)
	a.userID = s.UserID
	a.userName = s.Username
	fmt.Fprintln(a.out, s.Message)
	return nil
}

// Logout forgets the token and starts over with a new guest id.
func (a *App) Logout(context.Context) error {
	a.becomeGuest()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
