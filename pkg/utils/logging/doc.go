// Package logging provides structured logging utilities using Go's standard slog package.
//
// The Logger type wraps slog.Logger with convenience methods for adding common fields
// like session_id, tool_name, and key_id. It supports both text and JSON output formats.
//
// Example usage:
//
//	logger := logging.NewLogger(logging.LevelInfo, "json")
//	logger.Info("mediating tool call", "tool_name", "get_balance")
//
//	// Add contextual fields
//	sessLogger := logger.WithSessionID("sess-123")
//	sessLogger.Info("key resolved", "key_id", "a1b2c3d4-e5f6-4789-9abc-def012345678")
package logging
