// pkg/utils/proxy_client.go
package utils

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	utls "github.com/refraction-networking/utls"
	"go.uber.org/zap"
	proxy "golang.org/x/net/proxy"
)

var clientHelloIDs = []utls.ClientHelloID{
	utls.HelloChrome_Auto,
	utls.HelloFirefox_Auto,
	utls.HelloSafari_Auto,
	utls.HelloEdge_Auto,
}

// ClientOptions configures a RetryableClient.
type ClientOptions struct {
	ProxyURLs      []string
	MaxRetries     int
	Backoff        time.Duration
	UserAgent      string
	Timeout        time.Duration
	TLSFingerprint bool
	Logger         *zap.Logger
}

type ProxyRotator struct {
	parsedURLs []*url.URL
	currentIdx uint32
}

func NewProxyRotator(proxyURLs []string) (*ProxyRotator, error) {
	rotator := &ProxyRotator{}

	for _, rawURL := range proxyURLs {
		if rawURL == "" {
			continue
		}
		parsedURL, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse proxy URL %s: %w", MaskProxyURL(rawURL), err)
		}
		rotator.parsedURLs = append(rotator.parsedURLs, parsedURL)
	}

	return rotator, nil
}

// Len reports how many proxies are in rotation.
func (r *ProxyRotator) Len() int {
	return len(r.parsedURLs)
}

// NextProxy returns the next proxy in round-robin order, or nil for direct connections.
func (r *ProxyRotator) NextProxy() *url.URL {
	if len(r.parsedURLs) == 0 {
		return nil
	}

	idx := (atomic.AddUint32(&r.currentIdx, 1) - 1) % uint32(len(r.parsedURLs))
	return r.parsedURLs[idx]
}

// FingerprintingDialer performs the TLS handshake with a browser ClientHello,
// optionally tunnelling through a proxy first.
type FingerprintingDialer struct {
	rotator *ProxyRotator
}

func NewFingerprintingDialer(rotator *ProxyRotator) *FingerprintingDialer {
	return &FingerprintingDialer{rotator: rotator}
}

func (d *FingerprintingDialer) DialTLSContext(ctx context.Context, network, addr string) (net.Conn, error) {
	conn, err := dialVia(ctx, d.rotator.NextProxy(), network, addr)
	if err != nil {
		return nil, err
	}

	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}

	helloID := clientHelloIDs[rand.Intn(len(clientHelloIDs))]
	uconn, err := newHTTP1UClient(conn, host, helloID)
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := uconn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("uTLS handshake: %w", err)
	}

	return uconn, nil
}

// newHTTP1UClient parrots helloID but only offers http/1.1 in ALPN, since the
// connection is handed back to net/http's HTTP/1 transport.
func newHTTP1UClient(conn net.Conn, host string, helloID utls.ClientHelloID) (*utls.UConn, error) {
	config := &utls.Config{ServerName: host}

	spec, err := utls.UTLSIdToSpec(helloID)
	if err != nil {
		return nil, fmt.Errorf("build ClientHello spec for %s: %w", helloID.Str(), err)
	}
	for _, ext := range spec.Extensions {
		if alpn, ok := ext.(*utls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
		}
	}

	uconn := utls.UClient(conn, config, utls.HelloCustom)
	if err := uconn.ApplyPreset(&spec); err != nil {
		return nil, fmt.Errorf("apply ClientHello spec: %w", err)
	}

	return uconn, nil
}

func dialVia(ctx context.Context, proxyURL *url.URL, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	if proxyURL == nil {
		conn, err := dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, fmt.Errorf("direct dial: %w", err)
		}
		return conn, nil
	}

	switch proxyURL.Scheme {
	case "http", "https":
		conn, err := dialer.DialContext(ctx, "tcp", proxyURL.Host)
		if err != nil {
			return nil, fmt.Errorf("dial via HTTP proxy: %w", err)
		}
		if err := connectTunnel(conn, proxyURL, addr); err != nil {
			conn.Close()
			return nil, err
		}
		return conn, nil

	case "socks5":
		var auth *proxy.Auth
		if proxyURL.User != nil {
			auth = &proxy.Auth{User: proxyURL.User.Username()}
			if password, ok := proxyURL.User.Password(); ok {
				auth.Password = password
			}
		}

		socks, err := proxy.SOCKS5("tcp", proxyURL.Host, auth, dialer)
		if err != nil {
			return nil, fmt.Errorf("create SOCKS5 dialer: %w", err)
		}

		if cd, ok := socks.(proxy.ContextDialer); ok {
			conn, err := cd.DialContext(ctx, network, addr)
			if err != nil {
				return nil, fmt.Errorf("dial via SOCKS5 proxy: %w", err)
			}
			return conn, nil
		}

		conn, err := socks.Dial(network, addr)
		if err != nil {
			return nil, fmt.Errorf("dial via SOCKS5 proxy: %w", err)
		}
		return conn, nil

	default:
		return nil, fmt.Errorf("unsupported proxy scheme: %s", proxyURL.Scheme)
	}
}

func connectTunnel(conn net.Conn, proxyURL *url.URL, addr string) error {
	req := &http.Request{
		Method: http.MethodConnect,
		URL:    &url.URL{Opaque: addr},
		Host:   addr,
		Header: make(http.Header),
	}

	if proxyURL.User != nil {
		password, _ := proxyURL.User.Password()
		creds := base64.StdEncoding.EncodeToString([]byte(proxyURL.User.Username() + ":" + password))
		req.Header.Set("Proxy-Authorization", "Basic "+creds)
	}

	if err := req.Write(conn); err != nil {
		return fmt.Errorf("write CONNECT request: %w", err)
	}

	resp, err := http.ReadResponse(bufio.NewReader(conn), req)
	if err != nil {
		return fmt.Errorf("read CONNECT response: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("proxy CONNECT failed: %s", resp.Status)
	}

	return nil
}

func newTransport(rotator *ProxyRotator, fingerprint bool) http.RoundTripper {
	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
	}

	if fingerprint {
		// The dialer tunnels through the proxy itself.
		transport.DialTLSContext = NewFingerprintingDialer(rotator).DialTLSContext
		return transport
	}

	if rotator.Len() > 0 {
		transport.Proxy = func(*http.Request) (*url.URL, error) {
			return rotator.NextProxy(), nil
		}
	}
	transport.ForceAttemptHTTP2 = true

	return transport
}

func MaskProxyURL(proxyURL string) string {
	if !strings.Contains(proxyURL, "@") {
		return proxyURL
	}

	parsedURL, err := url.Parse(proxyURL)
	if err != nil {
		parts := strings.SplitN(proxyURL, "@", 2)
		auth := strings.SplitN(parts[0], "://", 2)
		protocol := ""
		if len(auth) > 1 {
			protocol = auth[0] + "://"
			auth[0] = auth[1]
		}
		if user, _, ok := strings.Cut(auth[0], ":"); ok {
			return protocol + user + ":****@" + parts[1]
		}
		return "[masked]"
	}

	if parsedURL.User != nil {
		username := parsedURL.User.Username()
		return strings.Replace(proxyURL, parsedURL.User.String(), username+":****", 1)
	}

	return proxyURL
}

// RetryableClient issues HTTP requests and retries transport failures only.
// HTTP error statuses are returned to the caller untouched.
type RetryableClient struct {
	client     *http.Client
	maxRetries int
	backoff    time.Duration
	userAgent  string
	logger     *zap.Logger
}

func NewRetryableClient(opts ClientOptions) (*RetryableClient, error) {
	rotator, err := NewProxyRotator(opts.ProxyURLs)
	if err != nil {
		return nil, fmt.Errorf("failed to create proxy rotator: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for i, p := range opts.ProxyURLs {
		logger.Debug("proxy configured", zap.Int("index", i+1), zap.String("proxy", MaskProxyURL(p)))
	}

	maxRetries := opts.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	logger.Debug("http client created",
		zap.Int("proxies", rotator.Len()),
		zap.Bool("tls_fingerprint", opts.TLSFingerprint),
		zap.Int("max_attempts", maxRetries),
		zap.Duration("timeout", timeout))

	return &RetryableClient{
		client: &http.Client{
			Transport: newTransport(rotator, opts.TLSFingerprint),
			Timeout:   timeout,
		},
		maxRetries: maxRetries,
		backoff:    opts.Backoff,
		userAgent:  opts.UserAgent,
		logger:     logger,
	}, nil
}

// Do sends req and returns the response with its fully read body.
func (c *RetryableClient) Do(req *http.Request) (*http.Response, []byte, error) {
	if req.Header.Get("User-Agent") == "" && c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	var reqBody []byte
	if req.Body != nil {
		var err error
		reqBody, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, nil, fmt.Errorf("reading request body: %w", err)
		}
		req.Body.Close()
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := c.backoff * time.Duration(1<<uint(attempt-1))
			c.logger.Debug("retrying request",
				zap.Int("attempt", attempt+1),
				zap.Duration("wait", wait),
				zap.Error(lastErr))

			select {
			case <-req.Context().Done():
				return nil, nil, fmt.Errorf("request canceled: %w", req.Context().Err())
			case <-time.After(wait):
			}
		}

		if reqBody != nil {
			req.Body = io.NopCloser(bytes.NewReader(reqBody))
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		bodyBytes, err := readBody(resp)
		if err != nil {
			lastErr = err
			continue
		}

		resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		return resp, bodyBytes, nil
	}

	return nil, nil, fmt.Errorf("all %d attempts failed: %w", c.maxRetries, lastErr)
}

func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress gzip response: %w", err)
		}
		defer gr.Close()
		reader = gr
	}

	bodyBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return bodyBytes, nil
}
