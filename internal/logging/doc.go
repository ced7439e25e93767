// Package logging configures slog for verify-project.
//
// A normal run logs warnings and errors to stderr as text so stdout carries
// only the report. With --debug, JSON records at debug level are also written
// to a size-rotated file under ~/.verify-project/logs/.
package logging
