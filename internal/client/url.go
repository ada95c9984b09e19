package client

import (
	"net/url"
	"strings"
	"sync"
)

// QueryParam is the URL parameter mirroring the current query.
const QueryParam = "q"

// History receives URL replacements. Implementations must not add history
// entries; each call overwrites the current location.
type History interface {
	Replace(u *url.URL)
}

// ReflectQuery returns a copy of u with q set to the trimmed query, or with q
// removed when the query is blank. Other parameters keep their raw form and
// order; a new q is appended last.
func ReflectQuery(u *url.URL, query string) *url.URL {
	out := *u
	if u.User != nil {
		user := *u.User
		out.User = &user
	}

	trimmed := strings.TrimSpace(query)
	replaced := false
	var params []string
	if out.RawQuery != "" {
		for _, param := range strings.Split(out.RawQuery, "&") {
			if param == "" {
				continue
			}
			if paramKey(param) == QueryParam {
				if trimmed == "" || replaced {
					continue
				}
				param = QueryParam + "=" + url.QueryEscape(trimmed)
				replaced = true
			}
			params = append(params, param)
		}
	}
	if !replaced && trimmed != "" {
		params = append(params, QueryParam+"="+url.QueryEscape(trimmed))
	}

	out.RawQuery = strings.Join(params, "&")
	return &out
}

// paramKey returns the decoded key of a raw key=value pair.
func paramKey(param string) string {
	key, _, _ := strings.Cut(param, "=")
	if decoded, err := url.QueryUnescape(key); err == nil {
		return decoded
	}
	return key
}

// InitialQuery returns the q parameter of u, or "".
func InitialQuery(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.Query().Get(QueryParam)
}

// LocationHistory keeps only the current location.
type LocationHistory struct {
	mu      sync.Mutex
	current *url.URL
}

// NewLocationHistory starts at u.
func NewLocationHistory(u *url.URL) *LocationHistory {
	return &LocationHistory{current: u}
}

// Replace implements History.
func (h *LocationHistory) Replace(u *url.URL) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = u
}

// Current returns the current location, or nil.
func (h *LocationHistory) Current() *url.URL {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}
