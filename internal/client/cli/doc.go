// Package cli is the interactive terminal front-end of the tracker client.
//
// App wires configuration, the local token database, the API client and the
// services, then runs a REPL until the user exits. Commands are refused
// until the user has logged in, and while the server demands a password
// change only passwd and logout are accepted.
package cli
