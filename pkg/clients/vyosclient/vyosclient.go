package vyosclient

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/vitistack/common/pkg/loggers/vlog"
	"github.com/vitistack/common/pkg/serialize"
	"github.com/vitistack/vyos-dhcp-operator/pkg/models/vyosmodels"
)

// TrustPolicy describes how the router certificate is verified.
type TrustPolicy string

const (
	TrustVerify   TrustPolicy = "verify"
	TrustPinned   TrustPolicy = "pinned"
	TrustInsecure TrustPolicy = "insecure"
)

type vyosClient struct {
	BaseUrl    string
	ApiKey     string
	HttpClient *http.Client

	// TLS options
	CACertPath         string
	CACertPEM          []byte
	InsecureSkipVerify bool
	PinnedSHA256       string
	ServerName         string

	Timeout time.Duration

	customHTTPClient bool
}

// NewVyosClient creates a client for the router API at baseUrl using the pre-shared key.
func NewVyosClient(baseUrl, apiKey string) (*vyosClient, error) {
	return NewVyosClientWithOptions(OptionBaseURL(baseUrl), OptionAPIKey(apiKey))
}

// NewVyosClientWithOptions creates a client using functional options. A missing
// base URL or key is reported as a ConfigurationMissing error.
func NewVyosClientWithOptions(opts ...VyosOption) (*vyosClient, error) {
	vc := getDefaultVyosConnectionConfig()
	vc.applyOptions(opts...)
	if err := vc.validate(); err != nil {
		return nil, err
	}
	if err := vc.buildHTTPClient(); err != nil {
		return nil, vyosmodels.NewError(vyosmodels.KindConfigurationMissing, err.Error())
	}
	return vc, nil
}

// NewVyosClientFromEnv builds a client using environment variables.
// Supported env vars:
//
//	VYOS_API_URL (e.g. https://192.168.0.1), VYOS_API_KEY
//	VYOS_TLS_CA_FILE, VYOS_TLS_SERVER_NAME
//	VYOS_TLS_INSECURE (true/false), VYOS_TLS_PINNED_SHA256
//	VYOS_TIMEOUT_SECONDS (default 10)
func NewVyosClientFromEnv(opts ...VyosOption) (*vyosClient, error) {
	return NewVyosClientWithOptions(append([]VyosOption{OptionFromEnv()}, opts...)...)
}

func getDefaultVyosConnectionConfig() *vyosClient {
	vc := &vyosClient{}
	vc.applyDefaults()
	return vc
}

func (vc *vyosClient) applyOptions(options ...VyosOption) {
	for _, opt := range options {
		opt.apply(vc)
	}
}

func (vc *vyosClient) applyDefaults() {
	vc.Timeout = 10 * time.Second
}

func (vc *vyosClient) validate() error {
	if strings.TrimSpace(vc.BaseUrl) == "" || vc.ApiKey == "" {
		return vyosmodels.NewError(vyosmodels.KindConfigurationMissing, "VYOS_API_URL and VYOS_API_KEY must be set")
	}
	if _, err := vc.buildBaseURL(); err != nil {
		return vyosmodels.NewError(vyosmodels.KindConfigurationMissing, fmt.Sprintf("invalid VYOS_API_URL: %v", err))
	}
	return nil
}

// TrustPolicy reports the effective certificate verification policy.
func (vc *vyosClient) TrustPolicy() TrustPolicy {
	switch {
	case vc.PinnedSHA256 != "":
		return TrustPinned
	case vc.InsecureSkipVerify:
		return TrustInsecure
	default:
		return TrustVerify
	}
}

// Send posts payload as form fields key=<api key>&data=<json> to endpoint. It is
// a single attempt and never returns an error: any failure is folded into a
// Response with Success=false.
func (vc *vyosClient) Send(ctx context.Context, endpoint vyosmodels.Endpoint, payload any) vyosmodels.Response {
	start := time.Now()
	resp, err := vc.send(ctx, endpoint, payload)
	observeRequest(endpoint, resp, err, time.Since(start))
	if err != nil {
		vlog.Error("vyos api request failed", "endpoint", string(endpoint), "error", err)
		return vyosmodels.Response{
			Success: false,
			Error:   err.Error(),
			Kind:    vyosmodels.KindTransportFailure,
		}
	}
	return resp
}

func (vc *vyosClient) send(ctx context.Context, endpoint vyosmodels.Endpoint, payload any) (vyosmodels.Response, error) {
	if vc == nil || vc.HttpClient == nil || vc.BaseUrl == "" || vc.ApiKey == "" {
		return vyosmodels.Response{}, errors.New("VyOS API configuration is missing")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	base, err := vc.buildBaseURL()
	if err != nil {
		return vyosmodels.Response{}, err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return vyosmodels.Response{}, fmt.Errorf("failed to encode payload: %w", err)
	}
	vlog.Debug("vyos api request", "endpoint", string(endpoint), "payload", serialize.JSON(payload))

	form := url.Values{}
	form.Set("key", vc.ApiKey)
	form.Set("data", string(data))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+string(endpoint), bytes.NewBufferString(form.Encode()))
	if err != nil {
		return vyosmodels.Response{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := vc.HttpClient.Do(req)
	if err != nil {
		return vyosmodels.Response{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			vlog.Error("failed to close response body", "error", cerr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return vyosmodels.Response{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return vyosmodels.Response{}, fmt.Errorf("HTTP error! status: %d, body: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out vyosmodels.Response
	if err := json.Unmarshal(body, &out); err != nil {
		return vyosmodels.Response{}, fmt.Errorf("failed to parse response as JSON: %s", strings.TrimSpace(string(body)))
	}
	return out, nil
}

// buildBaseURL normalizes the base URL: https is assumed when no scheme is
// given and trailing slashes are removed.
func (vc *vyosClient) buildBaseURL() (string, error) {
	s := strings.TrimSpace(vc.BaseUrl)
	if s == "" {
		return "", errors.New("base URL is empty")
	}
	s = strings.TrimRight(s, "/")
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("missing host in %q", vc.BaseUrl)
	}
	return u.String(), nil
}

// buildHTTPClient builds the HTTP client once, applying the trust policy.
func (vc *vyosClient) buildHTTPClient() error {
	if vc.customHTTPClient {
		return nil
	}

	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if vc.ServerName != "" {
		tlsCfg.ServerName = vc.ServerName
	}

	if vc.CACertPath != "" || len(vc.CACertPEM) > 0 {
		pool, err := x509.SystemCertPool()
		if err != nil || pool == nil {
			pool = x509.NewCertPool()
		}
		if vc.CACertPath != "" {
			caPEM, err := os.ReadFile(vc.CACertPath)
			if err != nil {
				return fmt.Errorf("read CA file: %w", err)
			}
			if !pool.AppendCertsFromPEM(caPEM) {
				return fmt.Errorf("no certificates found in %s", vc.CACertPath)
			}
		}
		if len(vc.CACertPEM) > 0 && !pool.AppendCertsFromPEM(vc.CACertPEM) {
			return errors.New("no certificates found in CA PEM")
		}
		tlsCfg.RootCAs = pool
	}

	switch vc.TrustPolicy() {
	case TrustPinned:
		// Chain verification is replaced by the fingerprint check.
		// #nosec G402
		tlsCfg.InsecureSkipVerify = true
		tlsCfg.VerifyConnection = pinnedVerifier(vc.PinnedSHA256)
	case TrustInsecure:
		vlog.Warn("TLS certificate verification disabled for VyOS API", "url", vc.BaseUrl)
		// #nosec G402 -- explicitly requested through VYOS_TLS_INSECURE.
		tlsCfg.InsecureSkipVerify = true
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsCfg
	vc.HttpClient = &http.Client{Transport: transport, Timeout: vc.Timeout}
	return nil
}

func pinnedVerifier(fingerprint string) func(tls.ConnectionState) error {
	return func(cs tls.ConnectionState) error {
		if len(cs.PeerCertificates) == 0 {
			return errors.New("router presented no certificate")
		}
		sum := sha256.Sum256(cs.PeerCertificates[0].Raw)
		if got := hex.EncodeToString(sum[:]); got != fingerprint {
			return fmt.Errorf("router certificate fingerprint %s does not match pinned value", got)
		}
		return nil
	}
}
