package clients

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vitistack/vyos-dhcp-operator/pkg/clients/vyosclient"
	"github.com/vitistack/vyos-dhcp-operator/pkg/interfaces/vyosinterface"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

const (
	SecretKeyAPIKey = "api-key"
	SecretKeyCACert = "ca.crt"
)

// BuildVyosClientFromSecret fetches a Kubernetes secret and returns a client
// using its "api-key" entry as the pre-shared key and, when present, "ca.crt"
// as an additional trusted CA.
func BuildVyosClientFromSecret(ctx context.Context, kube kubernetes.Interface, namespace, name string, baseOpts ...vyosclient.VyosOption) (vyosinterface.Transport, error) {
	if kube == nil || name == "" {
		return nil, errors.New("kubernetes client and secret name are required")
	}
	sec, err := kube.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("get secret %s/%s: %w", namespace, name, err)
	}
	key := strings.TrimSpace(string(sec.Data[SecretKeyAPIKey]))
	if key == "" {
		return nil, fmt.Errorf("secret %s/%s has no %q entry", namespace, name, SecretKeyAPIKey)
	}
	opts := append(slices.Clone(baseOpts), vyosclient.OptionAPIKey(key))
	if ca := sec.Data[SecretKeyCACert]; len(ca) > 0 {
		opts = append(opts, vyosclient.OptionCACertPEM(ca))
	}
	vc, err := vyosclient.NewVyosClientWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	return vc, nil
}
