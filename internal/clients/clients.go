package clients

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/vitistack/common/pkg/loggers/vlog"
	"github.com/vitistack/vyos-dhcp-operator/internal/consts"
	"github.com/vitistack/vyos-dhcp-operator/pkg/clients/vyosclient"
	"github.com/vitistack/vyos-dhcp-operator/pkg/interfaces/vyosinterface"
	"k8s.io/client-go/kubernetes"
	"sigs.k8s.io/controller-runtime/pkg/client/config"
)

var (
	// VyosClient is the process-wide router client, wrapped with the configured retry policy.
	VyosClient vyosinterface.Transport
)

// InitializeClients builds the router client from environment variables
// (see internal/consts/consts.go). When VYOS_API_KEY_SECRET_NAME is set the
// pre-shared key is read from that Kubernetes secret instead.
func InitializeClients(ctx context.Context) error {
	baseOpts := []vyosclient.VyosOption{vyosclient.OptionFromEnv()}

	var (
		transport vyosinterface.Transport
		err       error
	)
	if secretName := viper.GetString(consts.VYOS_API_KEY_SECRET_NAME); secretName != "" {
		transport, err = buildFromSecret(ctx, secretName, baseOpts...)
	} else {
		transport, err = newFromEnv(baseOpts...)
	}
	if err != nil {
		return err
	}

	VyosClient = vyosclient.WithRetry(transport, vyosclient.RetryPolicyFromEnv())
	vlog.Info("vyos client initialized", "url", viper.GetString(consts.VYOS_API_URL))
	return nil
}

func buildFromSecret(ctx context.Context, secretName string, baseOpts ...vyosclient.VyosOption) (vyosinterface.Transport, error) {
	secretNS := viper.GetString(consts.VYOS_API_KEY_SECRET_NAMESPACE)
	// Default to POD namespace if none provided
	if secretNS == "" {
		if nsBytes, err := os.ReadFile("/var/run/secrets/kubernetes.io/serviceaccount/namespace"); err == nil {
			secretNS = strings.TrimSpace(string(nsBytes))
		}
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}
	kube, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, err
	}
	return BuildVyosClientFromSecret(ctx, kube, secretNS, secretName, baseOpts...)
}

func newFromEnv(opts ...vyosclient.VyosOption) (vyosinterface.Transport, error) {
	vc, err := vyosclient.NewVyosClientWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	return vc, nil
}
