package api

import (
	"bytes"
	"io"
	"net/url"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/bogdanfinn/tls-client/bandwidth"
)

// fakeHTTPClient implements tls_client.HttpClient for testing
type fakeHTTPClient struct {
	doFunc     func(req *fhttp.Request) (*fhttp.Response, error)
	closedIdle bool
}

func (m *fakeHTTPClient) GetCookies(u *url.URL) []*fhttp.Cookie          { return nil }
func (m *fakeHTTPClient) SetCookies(u *url.URL, cookies []*fhttp.Cookie) {}
func (m *fakeHTTPClient) SetCookieJar(jar fhttp.CookieJar)               {}
func (m *fakeHTTPClient) GetCookieJar() fhttp.CookieJar                  { return nil }
func (m *fakeHTTPClient) SetProxy(proxyUrl string) error                 { return nil }
func (m *fakeHTTPClient) GetProxy() string                               { return "" }
func (m *fakeHTTPClient) SetFollowRedirect(followRedirect bool)          {}
func (m *fakeHTTPClient) GetFollowRedirect() bool                        { return false }
func (m *fakeHTTPClient) CloseIdleConnections()                          { m.closedIdle = true }
func (m *fakeHTTPClient) Get(url string) (*fhttp.Response, error)        { return nil, nil }
func (m *fakeHTTPClient) Head(url string) (*fhttp.Response, error)       { return nil, nil }
func (m *fakeHTTPClient) Post(url, contentType string, body io.Reader) (*fhttp.Response, error) {
	return nil, nil
}
func (m *fakeHTTPClient) GetBandwidthTracker() bandwidth.BandwidthTracker { return nil }

func (m *fakeHTTPClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	if m.doFunc != nil {
		return m.doFunc(req)
	}
	return jsonResponse(200, `{}`), nil
}

// jsonResponse builds a canned backend reply
func jsonResponse(status int, body string) *fhttp.Response {
	return &fhttp.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     fhttp.Header{"Content-Type": []string{"application/json"}},
	}
}

// newTestClient returns a Client wired to a fake transport
func newTestClient(t interface{ Fatalf(string, ...any) }, do func(req *fhttp.Request) (*fhttp.Response, error)) (*Client, *fakeHTTPClient) {
	fake := &fakeHTTPClient{doFunc: do}
	client, err := NewClient("http://127.0.0.1:5000", WithHTTPClient(fake))
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}
	return client, fake
}
