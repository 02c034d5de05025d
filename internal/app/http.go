package app

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"time"
)

// maxRedirects caps redirect following to avoid loops.
const maxRedirects = 5

// newHTTPClient returns the client used for search requests. Request
// deadlines are applied per call by the search client, so no overall
// Timeout is set here.
func newHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConnsPerHost:   1, // requests are strictly sequential
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Transport:     transport,
		CheckRedirect: checkRedirect,
	}
}

func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return errors.New("too many redirects")
	}
	if req.URL == nil {
		return errors.New("redirect without URL")
	}
	scheme := strings.ToLower(req.URL.Scheme)
	if scheme != "http" && scheme != "https" {
		return errors.New("redirect to unsupported scheme")
	}
	return nil
}
