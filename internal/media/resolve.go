// Package media resolves the asset paths stored by the download pipeline
// into URLs a browser can load. Paths come in three flavors: bare
// filesystem-relative paths, absolute URLs on the public object-storage
// host, and absolute URLs carrying internal hostnames that are only
// resolvable inside the pipeline's network.
package media

import (
	"net/url"
	"strings"
)

const defaultPublicBase = "http://127.0.0.1:9000"

// Hostnames that only resolve inside the pipeline network. URLs pointing at
// them are remapped onto the request-visible base.
var internalHosts = map[string]struct{}{
	"cres":     {},
	"minio":    {},
	"minio-ci": {},
}

// Resolver rewrites stored media paths into request-visible URLs.
type Resolver struct {
	// PublicBase is the object-storage endpoint visible to browsers.
	// Falls back to the local MinIO default when empty.
	PublicBase string
}

// Resolve normalizes a stored path or URL. Relative paths get the legacy
// test_downloads prefix rewritten, a leading slash, and per-segment URI
// encoding. Absolute URLs get internal hosts remapped and every path
// segment decoded then re-encoded, so already-encoded input survives
// without double encoding.
func (r Resolver) Resolve(raw string) string {
	raw = repairScheme(strings.TrimSpace(raw))
	if raw == "" {
		return ""
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		p := strings.Replace(raw, "test_downloads/", "downloads/", 1)
		p = "/" + strings.TrimLeft(p, "/")
		return encodePath(p)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	if _, internal := internalHosts[strings.ToLower(u.Hostname())]; internal {
		mapped := u.EscapedPath()
		if strings.ToLower(u.Hostname()) == "cres" && !strings.HasPrefix(mapped, "/cres/") {
			if !strings.HasPrefix(mapped, "/") {
				mapped = "/" + mapped
			}
			mapped = "/cres" + mapped
		}
		remapped, err := url.Parse(r.base() + mapped)
		if err != nil {
			return raw
		}
		u = remapped
	}

	out := u.Scheme + "://" + u.Host + encodePath(u.EscapedPath())
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		out += "#" + u.EscapedFragment()
	}
	return out
}

func (r Resolver) base() string {
	base := strings.TrimRight(strings.TrimSpace(r.PublicBase), "/")
	if base == "" {
		return defaultPublicBase
	}
	return base
}

// repairScheme fixes the single-slash scheme mangling some stored paths
// carry ("http:/host/...").
func repairScheme(raw string) string {
	switch {
	case strings.HasPrefix(raw, "http:/") && !strings.HasPrefix(raw, "http://"):
		return "http://" + strings.TrimPrefix(raw, "http:/")
	case strings.HasPrefix(raw, "https:/") && !strings.HasPrefix(raw, "https://"):
		return "https://" + strings.TrimPrefix(raw, "https:/")
	}
	return raw
}

// encodePath re-encodes every path segment, decoding first so segments that
// are already percent-encoded do not get encoded twice.
func encodePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		if part == "" {
			continue
		}
		decoded, err := url.PathUnescape(part)
		if err != nil {
			decoded = part
		}
		parts[i] = url.PathEscape(decoded)
	}
	return strings.Join(parts, "/")
}
