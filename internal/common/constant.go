package common

// TokenStorageKey is the key the bearer token is stored under in the local
// credential store. Matches the key the web front end used in localStorage.
const TokenStorageKey = "jwt_token"

// AuthHeaderName is the HTTP header carrying the bearer credential.
const AuthHeaderName = "Authorization"
