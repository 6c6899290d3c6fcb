// Package notifications pushes run outcomes to ntfy.
//
// NewService returns a no-op when no topic is configured, so callers always
// hold a usable Service and never branch on whether push is enabled.
package notifications
