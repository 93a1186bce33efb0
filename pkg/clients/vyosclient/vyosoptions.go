package vyosclient

import (
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/vitistack/vyos-dhcp-operator/internal/consts"
)

type VyosOption interface {
	apply(*vyosClient)
}

type optionFunc func(*vyosClient)

func (of optionFunc) apply(cfg *vyosClient) { of(cfg) }

// OptionBaseURL sets the router API base address, e.g. https://192.168.0.1.
func OptionBaseURL(baseURL string) VyosOption {
	return optionFunc(func(cfg *vyosClient) {
		cfg.BaseUrl = baseURL
	})
}

// OptionAPIKey sets the pre-shared key sent with every request.
func OptionAPIKey(key string) VyosOption {
	return optionFunc(func(cfg *vyosClient) {
		cfg.ApiKey = key
	})
}

// TLS and HTTP options
func OptionCACert(caFile string) VyosOption {
	return optionFunc(func(cfg *vyosClient) {
		cfg.CACertPath = caFile
	})
}

// OptionCACertPEM trusts the given in-memory PEM bundle in addition to file based CAs.
func OptionCACertPEM(pem []byte) VyosOption {
	return optionFunc(func(cfg *vyosClient) {
		cfg.CACertPEM = pem
	})
}

func OptionInsecureSkipVerify(insecure bool) VyosOption {
	return optionFunc(func(cfg *vyosClient) {
		cfg.InsecureSkipVerify = insecure
	})
}

// OptionPinnedSHA256 accepts only a router certificate whose SHA-256 fingerprint
// matches. Colons and case are ignored.
func OptionPinnedSHA256(fingerprint string) VyosOption {
	return optionFunc(func(cfg *vyosClient) {
		cfg.PinnedSHA256 = normalizeFingerprint(fingerprint)
	})
}

func OptionServerName(serverName string) VyosOption {
	return optionFunc(func(cfg *vyosClient) {
		cfg.ServerName = serverName
	})
}

func OptionTimeout(d time.Duration) VyosOption {
	return optionFunc(func(cfg *vyosClient) {
		cfg.Timeout = d
	})
}

// OptionHTTPClient replaces the HTTP client; TLS options are then ignored.
func OptionHTTPClient(hc *http.Client) VyosOption {
	return optionFunc(func(cfg *vyosClient) {
		cfg.HttpClient = hc
		cfg.customHTTPClient = hc != nil
	})
}

// OptionFromEnv reads connection settings from Viper (see internal/consts).
func OptionFromEnv() VyosOption {
	return optionFunc(func(cfg *vyosClient) {
		bindEnv()
		if v := viper.GetString(consts.VYOS_API_URL); v != "" {
			cfg.BaseUrl = v
		}
		if v := viper.GetString(consts.VYOS_API_KEY); v != "" {
			cfg.ApiKey = v
		}
		cfg.CACertPath = viper.GetString(consts.VYOS_TLS_CA_FILE)
		cfg.InsecureSkipVerify = viper.GetBool(consts.VYOS_TLS_INSECURE)
		cfg.PinnedSHA256 = normalizeFingerprint(viper.GetString(consts.VYOS_TLS_PINNED_SHA256))
		cfg.ServerName = viper.GetString(consts.VYOS_TLS_SERVER_NAME)
		if secs := viper.GetInt(consts.VYOS_TIMEOUT_SECONDS); secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	})
}

func bindEnv() {
	viper.AutomaticEnv()
	_ = viper.BindEnv(consts.VYOS_API_URL)
	_ = viper.BindEnv(consts.VYOS_API_KEY)
	_ = viper.BindEnv(consts.VYOS_TLS_CA_FILE)
	_ = viper.BindEnv(consts.VYOS_TLS_INSECURE)
	_ = viper.BindEnv(consts.VYOS_TLS_PINNED_SHA256)
	_ = viper.BindEnv(consts.VYOS_TLS_SERVER_NAME)
	_ = viper.BindEnv(consts.VYOS_TIMEOUT_SECONDS)
	_ = viper.BindEnv(consts.VYOS_RETRY_MAX_ATTEMPTS)
	_ = viper.BindEnv(consts.VYOS_RETRY_MAX_ELAPSED_SECONDS)
}

func normalizeFingerprint(fp string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(fp), ":", ""))
}
