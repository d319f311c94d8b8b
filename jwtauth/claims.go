package jwtauth

// Registered claim names
const (
	ClaimSubject   = "sub"
	ClaimExpires   = "exp"
	ClaimAudience  = "aud"
	ClaimJWTID     = "jti"
	ClaimNotBefore = "nbf"
	ClaimIssuer    = "iss"
	ClaimIssuedAt  = "iat"

	// ClaimUserID is the application claim checked by UserIDValidator
	ClaimUserID = "userId"
)
