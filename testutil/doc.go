// Package testutil provides test doubles shared across the package tests:
// a steppable clock, an event publisher spy, and a contextual logger spy.
package testutil
