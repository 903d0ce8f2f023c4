package handler

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/velizhask/KADA-Connect/internal/imageref"
)

// ImageProxyHandler streams remote images through the API. Browsers block
// direct Google Drive embeds on cross-origin pages; routing them through
// this endpoint sidesteps that. Only Google Drive plus explicitly listed
// hosts are fetched, so the endpoint cannot be used to reach arbitrary or
// internal addresses.
type ImageProxyHandler struct {
	client   *http.Client
	maxBytes int64
	allowed  map[string]struct{}
}

// NewImageProxyHandler builds a proxy using the supplied HTTP client.
// extraHosts widens the allowlist beyond Google Drive.
func NewImageProxyHandler(client *http.Client, maxBytes int64, extraHosts ...string) *ImageProxyHandler {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	allowed := make(map[string]struct{}, len(extraHosts))
	for _, host := range extraHosts {
		allowed[strings.ToLower(host)] = struct{}{}
	}
	return &ImageProxyHandler{client: client, maxBytes: maxBytes, allowed: allowed}
}

// Fetch handles GET /proxy/image requests.
func (h *ImageProxyHandler) Fetch(c echo.Context) error {
	raw := c.QueryParam("url")
	resolved, ok := imageref.Resolve(raw)
	if !ok {
		return Error(c, http.StatusBadRequest, "unresolvable image reference")
	}
	if !h.hostAllowed(resolved) {
		return Error(c, http.StatusForbidden, "image host not allowed")
	}

	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, resolved, nil)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid image url")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return Error(c, http.StatusBadGateway, "failed to fetch image")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Error(c, http.StatusBadGateway, "upstream returned an error")
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return Error(c, http.StatusBadGateway, "upstream did not return an image")
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Stream(http.StatusOK, contentType, io.LimitReader(resp.Body, h.maxBytes))
}

func (h *ImageProxyHandler) hostAllowed(resolved string) bool {
	if imageref.IsDrive(resolved) {
		return true
	}
	parsed, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	_, ok := h.allowed[strings.ToLower(parsed.Host)]
	return ok
}
