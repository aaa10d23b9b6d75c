package utils

import (
	"github.com/go-resty/resty/v2"
)

// TraceIDHeader carries the sync round id from device to server.
const TraceIDHeader = "X-Trace-ID"

// HTTPClient is the resty client the device uses to talk to the server.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client that copies the round id of
// the request context into [TraceIDHeader].
func NewHTTPClient() *HTTPClient {
	client := resty.New()
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if traceID := TraceIDFromContext(req.Context()); traceID != "" {
			req.SetHeader(TraceIDHeader, traceID)
		}
		return nil
	})
	return &HTTPClient{Client: client}
}
