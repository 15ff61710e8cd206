// Package cli provides the interactive support chat command-line client.
//
// It starts as a guest with a generated "guest-<unix millis>" id. Lines that
// are not commands are sent to the assistant. Commands:
//   - signup / login: create an account or authenticate; later messages are
//     stored under the account id
//   - history: print the current conversation
//   - export: upload the transcript (logged in only)
//   - logout: return to a fresh guest id
//   - help, exit | quit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
