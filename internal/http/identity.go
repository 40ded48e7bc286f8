package http

import (
	"net/http"
	"strconv"
)

// IdentityHeader carries the caller's numeric user id. The value is
// client-supplied and never cryptographically validated; it scopes data
// access but is not real authentication.
const IdentityHeader = "User-Id"

// identityFromRequest resolves the caller's identity. An absent or
// non-numeric header means no identity.
func identityFromRequest(r *http.Request) (int64, bool) {
	raw := r.Header.Get(IdentityHeader)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
