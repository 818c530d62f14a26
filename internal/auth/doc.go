// Package auth resolves bearer tokens to caller identities.
//
// Tokens are HMAC-signed JWTs carrying the user's id and email. The
// verifier rejects anything unsigned, expired, or signed with another
// algorithm; downstream code (the importer in particular) trusts the
// resolved identity verbatim as the owner of listings it creates.
package auth
