package initialchecks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/vitistack/common/pkg/loggers/vlog"
	"github.com/vitistack/vyos-dhcp-operator/internal/util/configpath"
	"github.com/vitistack/vyos-dhcp-operator/pkg/interfaces/vyosinterface"
	"github.com/vitistack/vyos-dhcp-operator/pkg/models/vyosmodels"
)

// Retry a few times to tolerate slow startup/order
const (
	maxRetries    = 3
	perTryTimeout = 5 * time.Second
	retryInterval = 2 * time.Second
)

// InitialChecks verifies that the router API is reachable and accepts the
// configured key before the server starts. Unreachable routers are retried;
// a rejected request fails immediately.
func InitialChecks(ctx context.Context, client vyosinterface.Transport) error {
	return checkRouter(ctx, client, retryInterval)
}

func checkRouter(ctx context.Context, client vyosinterface.Transport, interval time.Duration) error {
	if client == nil {
		return errors.New("vyos client not initialized; check configuration (VYOS_API_URL, VYOS_API_KEY)")
	}

	vlog.Info("checking connectivity to VyOS API")
	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := pingRouter(ctx, client)
		if err == nil {
			return struct{}{}, nil
		}
		if vyosmodels.KindOf(err) != vyosmodels.KindTransportFailure {
			return struct{}{}, backoff.Permanent(err)
		}
		vlog.Warn("vyos connectivity attempt failed", "attempt", attempt, "error", err)
		return struct{}{}, err
	}, backoff.WithBackOff(backoff.NewConstantBackOff(interval)), backoff.WithMaxTries(maxRetries))
	if err != nil {
		vlog.Error("failed to connect to VyOS API", "attempts", attempt, "error", err)
		return fmt.Errorf("vyos api unreachable: %w", err)
	}
	vlog.Info("vyos connectivity OK")
	return nil
}

// pingRouter runs the cheapest read-only query the DHCP API offers.
func pingRouter(ctx context.Context, client vyosinterface.Transport) error {
	ctx, cancel := context.WithTimeout(ctx, perTryTimeout)
	defer cancel()
	resp := client.Send(ctx, vyosmodels.EndpointShow, configpath.BuildShow(vyosmodels.LayoutLeases))
	return resp.Err()
}
