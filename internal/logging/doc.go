// Package logging provides concrete implementations of the schoolfacts.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr through a zap core
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
