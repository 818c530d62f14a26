// Package log provides secure logging utilities for carmarketd.
//
// The HTTP layer logs every request, and requests carry Authorization
// headers; the config layer logs its sources, and those can carry JWT
// secrets and credentialed MongoDB URIs. SecureHandler wraps any slog
// handler and masks such values before they reach the output, so a
// misplaced log attribute can never leak a credential.
package log
