// Package platform models the external marketplaces a listing can be posted
// to, and the per-platform result of a posting attempt.
//
// None of the supported platforms currently offers a public posting API, so
// every poster reports PostStatusNotSupported with a reason. The result is a
// tagged variant rather than an untyped payload so callers can branch on the
// status without inspecting strings.
package platform
