// Package logging configures structured logging for the wiki CLI.
//
// Commands log to stderr at the configured level. With --debug, JSON logs are
// also written to a size-rotated file under ~/.wiki/logs/ that `wiki logs`
// can tail. The MCP server logs to the file only, since stdout carries the
// protocol.
package logging
