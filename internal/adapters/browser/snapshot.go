package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// snapshotJS serializes the token-bearing parts of the page. Page state can
// be cyclic, so globals are cloned with a visited set and a depth cap.
const snapshotJS = `() => {
  const visited = new WeakSet();
  const clone = (value, depth) => {
    if (value === null || value === undefined || depth > 10) return null;
    const kind = typeof value;
    if (kind === "string" || kind === "number" || kind === "boolean") return value;
    if (kind !== "object") return null;
    if (visited.has(value)) return null;
    visited.add(value);
    if (Array.isArray(value)) return value.map((item) => clone(item, depth + 1));
    const out = {};
    for (const [key, nested] of Object.entries(value)) {
      try { out[key] = clone(nested, depth + 1); } catch { out[key] = null; }
    }
    return out;
  };
  const readStorage = (storage) => {
    const out = {};
    if (!storage) return out;
    for (let i = 0; i < storage.length; i += 1) {
      const key = storage.key(i);
      try { out[key] = storage.getItem(key) || ""; } catch { continue; }
    }
    return out;
  };
  const asString = (value) => (value === null || value === undefined ? "" : String(value));
  const globals = {};
  for (const name of ["__SMARTPLACE_INIT_STATE__", "__APOLLO_STATE__", "__NUXT__", "__SMARTPLACE_STORE__"]) {
    try { globals[name] = clone(window[name], 0); } catch { globals[name] = null; }
  }
  const tokens = {
    csrfToken: asString(window.csrfToken),
    _csrf: asString(window._csrf),
    __CSRF_TOKEN__: asString(window.__CSRF_TOKEN__),
    getCsrfToken: "",
  };
  if (typeof window.getCsrfToken === "function") {
    try { tokens.getCsrfToken = asString(window.getCsrfToken()); } catch { tokens.getCsrfToken = ""; }
  }
  const meta = document.querySelector('meta[name="csrf-token"]');
  let localStorageItems = {};
  let sessionStorageItems = {};
  try { localStorageItems = readStorage(window.localStorage); } catch { localStorageItems = {}; }
  try { sessionStorageItems = readStorage(window.sessionStorage); } catch { sessionStorageItems = {}; }
  return JSON.stringify({
    meta: meta ? (meta.getAttribute("content") || "") : "",
    globals,
    window: tokens,
    scripts: Array.from(document.querySelectorAll("script")).map((s) => s.textContent || "").filter(Boolean),
    localStorage: localStorageItems,
    sessionStorage: sessionStorageItems,
    documentCookie: document.cookie || "",
  });
}`

// warmupJS posts an empty GraphQL request so the server sets its csrf cookie.
const warmupJS = `async (url, timeoutMs) => {
  const controller = new AbortController();
  const timer = setTimeout(() => controller.abort(), timeoutMs);
  try {
    const response = await fetch(url, {
      method: "POST",
      headers: {
        "content-type": "application/json",
        "accept": "*/*",
        "x-requested-with": "XMLHttpRequest",
      },
      credentials: "include",
      body: JSON.stringify({
        operationName: "WarmupCSRF",
        query: "query WarmupCSRF { __typename }",
        variables: {},
      }),
      signal: controller.signal,
    });
    const text = await response.text();
    return JSON.stringify({ ok: response.ok, text });
  } catch (error) {
    return JSON.stringify({ ok: false, text: "", error: String(error) });
  } finally {
    clearTimeout(timer);
  }
}`

const warmupTimeout = 5 * time.Second

func captureSnapshot(ctx context.Context, page Page) (PageSnapshot, error) {
	raw, err := page.Eval(ctx, snapshotJS)
	if err != nil {
		return PageSnapshot{}, fmt.Errorf("capture page snapshot: %w", err)
	}

	var snapshot PageSnapshot
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
			return PageSnapshot{}, fmt.Errorf("decode page snapshot: %w", err)
		}
	}

	cookies, err := page.Cookies()
	if err != nil {
		return PageSnapshot{}, err
	}
	snapshot.Cookies = cookies

	return snapshot, nil
}

type warmupResult struct {
	OK    bool   `json:"ok"`
	Text  string `json:"text"`
	Error string `json:"error"`
}

// tokenFromWarmupBody accepts csrfToken or token at the top level, or a
// csrfToken on any nested object, as long as it looks like a csrf token.
func tokenFromWarmupBody(body string) (string, bool) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return "", false
	}

	token, _ := payload["csrfToken"].(string)
	if token == "" {
		token, _ = payload["token"].(string)
	}
	if token == "" {
		for _, key := range sortedKeys(payload) {
			nested, ok := payload[key].(map[string]any)
			if !ok {
				continue
			}
			if t, ok := nested["csrfToken"].(string); ok && t != "" {
				token = t
				break
			}
		}
	}

	token = strings.TrimSpace(token)
	if len(token) <= minFreeTokenLength || !containsCSRF(token) {
		return "", false
	}

	return token, true
}

func parseJSONValue(raw string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, false
	}

	return v, true
}
