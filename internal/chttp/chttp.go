// Copyright (c) 2026 hkopenai and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package chttp (Cooked HTTP) provides a wrapper around http.Client that
// identifies itself to the remote server.
package chttp

import (
	"net/http"
	"time"
)

// DefUserAgent is sent with every request unless overridden.
const DefUserAgent = "hkmisc/1.0 (+https://github.com/hkopenai/hkmisc)"

// NewWithTransport inits the HTTP client with the request timeout and user
// agent.  It allows to use the custom Transport.  Zero timeout means no
// timeout.
func NewWithTransport(userAgent string, timeout time.Duration, rt http.RoundTripper) *http.Client {
	if rt == nil {
		rt = http.DefaultTransport
	}
	if userAgent == "" {
		userAgent = DefUserAgent
	}
	cl := http.Client{
		Timeout:   timeout,
		Transport: &uaTransport{userAgent: userAgent, rt: rt},
	}
	return &cl
}

// New returns the HTTP client with the default transport.
func New(userAgent string, timeout time.Duration) *http.Client {
	return NewWithTransport(userAgent, timeout, nil)
}

type uaTransport struct {
	userAgent string
	rt        http.RoundTripper
}

func (t *uaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.rt.RoundTrip(req)
	}
	// RoundTrippers must not modify the request.
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.rt.RoundTrip(r)
}
