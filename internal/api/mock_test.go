package api

import (
	"io"
	"net/url"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/bogdanfinn/tls-client/bandwidth"
)

// MockResponseBody is a ReadCloser that simulates reading response data
type MockResponseBody struct {
	data   []byte
	pos    int
	err    error
	closed bool
}

// NewMockResponseBody creates a new MockResponseBody with the given data
func NewMockResponseBody(data []byte) *MockResponseBody {
	return &MockResponseBody{data: data}
}

// Read implements the io.Reader interface. Once the data is exhausted it
// returns the configured error, or io.EOF.
func (m *MockResponseBody) Read(p []byte) (n int, err error) {
	if m.pos >= len(m.data) {
		if m.err != nil {
			return 0, m.err
		}
		return 0, io.EOF
	}
	n = copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

// Close implements the io.Closer interface
func (m *MockResponseBody) Close() error {
	m.closed = true
	return nil
}

// MockHttpClient is a mock implementation of tls_client.HttpClient for testing
type MockHttpClient struct {
	Response *fhttp.Response
	Err      error

	// Requests records every request passed to Do
	Requests []*fhttp.Request
	// Bodies records the body of every request passed to Do
	Bodies []string

	IdleClosed bool
}

func (m *MockHttpClient) GetCookies(u *url.URL) []*fhttp.Cookie { return nil }

func (m *MockHttpClient) SetCookies(u *url.URL, cookies []*fhttp.Cookie) {}

func (m *MockHttpClient) SetCookieJar(jar fhttp.CookieJar) {}

func (m *MockHttpClient) GetCookieJar() fhttp.CookieJar { return nil }

func (m *MockHttpClient) SetProxy(proxyUrl string) error { return nil }

func (m *MockHttpClient) GetProxy() string { return "" }

func (m *MockHttpClient) SetFollowRedirect(followRedirect bool) {}

func (m *MockHttpClient) GetFollowRedirect() bool { return false }

func (m *MockHttpClient) CloseIdleConnections() { m.IdleClosed = true }

// Do records the request and returns the canned response
func (m *MockHttpClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	m.Requests = append(m.Requests, req)
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		m.Bodies = append(m.Bodies, string(data))
	} else {
		m.Bodies = append(m.Bodies, "")
	}
	return m.Response, m.Err
}

func (m *MockHttpClient) Get(url string) (*fhttp.Response, error) { return m.Response, m.Err }

func (m *MockHttpClient) Head(url string) (*fhttp.Response, error) { return m.Response, m.Err }

func (m *MockHttpClient) Post(url, contentType string, body io.Reader) (*fhttp.Response, error) {
	return m.Response, m.Err
}

func (m *MockHttpClient) GetBandwidthTracker() bandwidth.BandwidthTracker { return nil }

// NewMockHttpClient creates a new MockHttpClient with a canned response
func NewMockHttpClient(body []byte, statusCode int) *MockHttpClient {
	return &MockHttpClient{
		Response: &fhttp.Response{
			StatusCode: statusCode,
			Body:       NewMockResponseBody(body),
			Header:     make(fhttp.Header),
		},
	}
}

// NewMockHttpClientWithError creates a new MockHttpClient that returns an error
func NewMockHttpClientWithError(err error) *MockHttpClient {
	return &MockHttpClient{
		Response: nil,
		Err:      err,
	}
}
