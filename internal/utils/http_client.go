package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every outbound request.
const UserAgent = "ana-muslim-newtab"

// HTTPClient embeds *resty.Client so all of its methods are available.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with the given request timeout.
// A zero timeout leaves requests unbounded.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	c := resty.New().
		SetHeader("User-Agent", UserAgent).
		SetTimeout(timeout)

	return &HTTPClient{Client: c}
}
