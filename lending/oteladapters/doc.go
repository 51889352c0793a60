// Package oteladapters provides OpenTelemetry adapters for the lending
// observability interfaces. These adapters enable plug-and-play integration
// with OpenTelemetry for users who do not want to implement the interfaces
// themselves.
package oteladapters
