package settings

import (
	"github.com/spf13/viper"
	"github.com/vitistack/common/pkg/loggers/vlog"
	"github.com/vitistack/common/pkg/settings/dotenv"
	"github.com/vitistack/vyos-dhcp-operator/internal/consts"
)

func Init() {
	viper.SetDefault(consts.JSON_LOGGING, true)
	viper.SetDefault(consts.LOG_LEVEL, "info")
	viper.SetDefault(consts.HTTP_LISTEN, ":8080")
	viper.SetDefault(consts.VYOS_TIMEOUT_SECONDS, 10)
	viper.SetDefault(consts.VYOS_RETRY_MAX_ATTEMPTS, 1)
	viper.SetDefault(consts.VYOS_DEFAULT_SUBNET, "10.0.0.0/16")

	dotenv.LoadDotEnv()

	// Read environment variables automatically
	viper.AutomaticEnv()

	printEnvironmentSettings()
}

func printEnvironmentSettings() {
	settings := []string{
		consts.JSON_LOGGING,
		consts.LOG_LEVEL,
		consts.HTTP_LISTEN,
		consts.VYOS_API_URL,
		consts.VYOS_API_KEY_SECRET_NAME,
		consts.VYOS_API_KEY_SECRET_NAMESPACE,
		consts.VYOS_TLS_CA_FILE,
		consts.VYOS_TLS_INSECURE,
		consts.VYOS_TLS_PINNED_SHA256,
		consts.VYOS_TLS_SERVER_NAME,
		consts.VYOS_TIMEOUT_SECONDS,
		consts.VYOS_RETRY_MAX_ATTEMPTS,
		consts.VYOS_RETRY_MAX_ELAPSED_SECONDS,
		consts.VYOS_DEFAULT_SUBNET,
	}

	for _, s := range settings {
		val := viper.Get(s)
		if val != nil {
			// #nosec G202
			vlog.Debug(s + "=" + viper.GetString(s))
		}
	}
	if viper.GetString(consts.VYOS_API_KEY) != "" {
		vlog.Debug(consts.VYOS_API_KEY + "=<redacted>")
	}
}
