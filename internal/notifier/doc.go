// Package notifier provides notification interfaces and implementations for tour stops.
//
// The notifier package supports posting new-stop notifications to various platforms
// including Twitter. It handles OAuth authentication, rate limiting, and message
// formatting for different notification channels.
package notifier
