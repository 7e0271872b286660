// Package integration provides end-to-end tests for the game catalog server.
// The tests start the complete server against file, git, api and database
// sources and exercise the filtering API over HTTP.
package integration
