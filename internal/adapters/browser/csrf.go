package browser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bnema/smartplace-reply-cli/internal/domain"
)

const (
	stateSearchDepth   = 8
	storageSearchDepth = 6
	minFreeTokenLength = 8
)

// PageSnapshot is everything the token strategies look at, captured from the
// page in one script evaluation so the strategies themselves stay pure.
type PageSnapshot struct {
	MetaToken      string            `json:"meta"`
	Globals        map[string]any    `json:"globals"`
	WindowTokens   map[string]string `json:"window"`
	Scripts        []string          `json:"scripts"`
	LocalStorage   map[string]string `json:"localStorage"`
	SessionStorage map[string]string `json:"sessionStorage"`
	DocumentCookie string            `json:"documentCookie"`
	Cookies        []domain.Cookie   `json:"-"`
}

type Strategy struct {
	Name    string
	Extract func(PageSnapshot) (string, bool)
}

// bootstrapGlobals are searched in this order by the global-state strategy.
var bootstrapGlobals = []string{
	"__SMARTPLACE_INIT_STATE__",
	"__APOLLO_STATE__",
	"__NUXT__",
}

// storeGlobals extend bootstrapGlobals for the web-storage strategy.
var storeGlobals = []string{
	"__APOLLO_STATE__",
	"__SMARTPLACE_INIT_STATE__",
	"__SMARTPLACE_STORE__",
	"__NUXT__",
}

var windowTokenKeys = []string{"csrfToken", "_csrf", "__CSRF_TOKEN__"}

var scriptTokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`csrfToken["']?\s*:\s*["']([^"']+)["']`),
	regexp.MustCompile(`_token["']?\s*:\s*["']([^"']+)["']`),
	regexp.MustCompile(`csrf["']?\s*:\s*["']([^"']+)["']`),
}

// DefaultStrategies returns the token strategies in the order they are tried.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "meta-tag", Extract: metaTagToken},
		{Name: "global-state", Extract: globalStateToken},
		{Name: "inline-script", Extract: inlineScriptToken},
		{Name: "web-storage", Extract: webStorageToken},
		{Name: "document-cookie", Extract: documentCookieToken},
		{Name: "session-cookie", Extract: sessionCookieToken},
	}
}

// CookieStrategies only look at cookies; used after the warm-up request.
func CookieStrategies() []Strategy {
	return []Strategy{
		{Name: "document-cookie", Extract: documentCookieToken},
		{Name: "session-cookie", Extract: sessionCookieToken},
	}
}

// DiscoverCSRFToken runs strategies in order and returns the first non-blank
// token together with the name of the strategy that found it.
func DiscoverCSRFToken(snapshot PageSnapshot, strategies []Strategy) (string, string, bool) {
	for _, s := range strategies {
		token, ok := s.Extract(snapshot)
		if !ok {
			continue
		}
		token = strings.TrimSpace(token)
		if token != "" {
			return token, s.Name, true
		}
	}

	return "", "", false
}

func metaTagToken(s PageSnapshot) (string, bool) {
	token := strings.TrimSpace(s.MetaToken)
	return token, token != ""
}

func globalStateToken(s PageSnapshot) (string, bool) {
	for _, name := range bootstrapGlobals {
		state, ok := s.Globals[name]
		if !ok {
			continue
		}
		if token, ok := searchState(state, 0); ok {
			return token, true
		}
	}

	return "", false
}

// searchState walks bootstrapped page state. A bare string only counts when
// it looks like a token on its own: long enough and mentioning csrf.
func searchState(value any, depth int) (string, bool) {
	if value == nil || depth > stateSearchDepth {
		return "", false
	}

	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if len(trimmed) > minFreeTokenLength && containsCSRF(trimmed) {
			return trimmed, true
		}
	case map[string]any:
		if token, ok := v["csrfToken"].(string); ok && strings.TrimSpace(token) != "" {
			return token, true
		}
		if token, ok := v["token"].(string); ok && containsCSRF(token) {
			return token, true
		}
		for _, key := range sortedKeys(v) {
			if containsCSRF(key) {
				if token, ok := scalarToken(v[key]); ok {
					return token, true
				}
			}
			if token, ok := searchState(v[key], depth+1); ok {
				return token, true
			}
		}
	case []any:
		for _, item := range v {
			if token, ok := searchState(item, depth+1); ok {
				return token, true
			}
		}
	}

	return "", false
}

func inlineScriptToken(s PageSnapshot) (string, bool) {
	for _, key := range windowTokenKeys {
		if token := strings.TrimSpace(s.WindowTokens[key]); token != "" {
			return token, true
		}
	}

	for _, script := range s.Scripts {
		for _, pattern := range scriptTokenPatterns {
			if m := pattern.FindStringSubmatch(script); m != nil {
				return m[1], true
			}
		}
	}

	return "", false
}

// webStorageToken checks local and session storage, then the store globals,
// then whatever window.getCsrfToken() returned.
func webStorageToken(s PageSnapshot) (string, bool) {
	for _, storage := range []map[string]string{s.LocalStorage, s.SessionStorage} {
		for _, key := range sortedKeys(storage) {
			raw := strings.TrimSpace(storage[key])
			if !usableValue(raw) {
				continue
			}
			if containsCSRF(key) && !strings.HasPrefix(raw, "{") {
				return strings.Trim(raw, `"`), true
			}
			parsed, ok := parseJSONValue(raw)
			if !ok {
				continue
			}
			if token, ok := searchStorage(parsed, 0); ok {
				return token, true
			}
		}
	}

	for _, name := range storeGlobals {
		if token, ok := searchStorage(s.Globals[name], 0); ok {
			return token, true
		}
	}

	if token := strings.TrimSpace(s.WindowTokens["getCsrfToken"]); usableValue(token) {
		return token, true
	}

	return "", false
}

// searchStorage only follows csrfToken, token and csrf-named keys.
func searchStorage(value any, depth int) (string, bool) {
	if value == nil || depth > storageSearchDepth {
		return "", false
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return "", false
	}

	for _, key := range []string{"csrfToken", "token"} {
		if token, ok := obj[key].(string); ok && usableValue(strings.TrimSpace(token)) {
			return strings.TrimSpace(token), true
		}
	}
	for _, key := range sortedKeys(obj) {
		if !containsCSRF(key) {
			continue
		}
		if token, ok := scalarToken(obj[key]); ok {
			return token, true
		}
		if token, ok := searchStorage(obj[key], depth+1); ok {
			return token, true
		}
	}

	return "", false
}

func documentCookieToken(s PageSnapshot) (string, bool) {
	for _, part := range strings.Split(s.DocumentCookie, ";") {
		part = strings.TrimSpace(part)
		if part == "" || !containsCSRF(part) {
			continue
		}
		_, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		if value = strings.TrimSpace(value); usableValue(value) {
			return value, true
		}
	}

	return "", false
}

func sessionCookieToken(s PageSnapshot) (string, bool) {
	for _, c := range s.Cookies {
		if containsCSRF(c.Name) && strings.TrimSpace(c.Value) != "" {
			return c.Value, true
		}
	}

	return "", false
}

func scalarToken(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		v = strings.TrimSpace(v)
		return v, usableValue(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}

	return "", false
}

func usableValue(v string) bool {
	return v != "" && v != "null" && v != "undefined"
}

func containsCSRF(s string) bool {
	return strings.Contains(strings.ToLower(s), "csrf")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
