package consts

const (
	JSON_LOGGING = "JSON_LOGGING"
	LOG_LEVEL    = "LOG_LEVEL"
	HTTP_LISTEN  = "HTTP_LISTEN"

	VYOS_API_URL                   = "VYOS_API_URL"
	VYOS_API_KEY                   = "VYOS_API_KEY"                  // #nosec G101
	VYOS_API_KEY_SECRET_NAME       = "VYOS_API_KEY_SECRET_NAME"      // #nosec G101
	VYOS_API_KEY_SECRET_NAMESPACE  = "VYOS_API_KEY_SECRET_NAMESPACE" // #nosec G101
	VYOS_TLS_CA_FILE               = "VYOS_TLS_CA_FILE"
	VYOS_TLS_INSECURE              = "VYOS_TLS_INSECURE"
	VYOS_TLS_PINNED_SHA256         = "VYOS_TLS_PINNED_SHA256" // hex sha256 of the router leaf certificate
	VYOS_TLS_SERVER_NAME           = "VYOS_TLS_SERVER_NAME"
	VYOS_TIMEOUT_SECONDS           = "VYOS_TIMEOUT_SECONDS"
	VYOS_RETRY_MAX_ATTEMPTS        = "VYOS_RETRY_MAX_ATTEMPTS" // 1 disables retries
	VYOS_RETRY_MAX_ELAPSED_SECONDS = "VYOS_RETRY_MAX_ELAPSED_SECONDS"
	VYOS_DEFAULT_SUBNET            = "VYOS_DEFAULT_SUBNET"
)
