package vyosclient

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/spf13/viper"
	"github.com/vitistack/common/pkg/loggers/vlog"
	"github.com/vitistack/vyos-dhcp-operator/internal/consts"
	"github.com/vitistack/vyos-dhcp-operator/pkg/interfaces/vyosinterface"
	"github.com/vitistack/vyos-dhcp-operator/pkg/models/vyosmodels"
)

// RetryPolicy bounds how often a failed request is repeated. MaxAttempts <= 1
// means a single attempt.
type RetryPolicy struct {
	MaxAttempts     uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// RetryPolicyFromEnv reads VYOS_RETRY_MAX_ATTEMPTS and VYOS_RETRY_MAX_ELAPSED_SECONDS.
func RetryPolicyFromEnv() RetryPolicy {
	bindEnv()
	p := RetryPolicy{InitialInterval: 500 * time.Millisecond, MaxInterval: 5 * time.Second}
	if n := viper.GetInt(consts.VYOS_RETRY_MAX_ATTEMPTS); n > 0 {
		p.MaxAttempts = uint(n)
	}
	if secs := viper.GetInt(consts.VYOS_RETRY_MAX_ELAPSED_SECONDS); secs > 0 {
		p.MaxElapsedTime = time.Duration(secs) * time.Second
	}
	return p
}

type retryingTransport struct {
	next   vyosinterface.Transport
	policy RetryPolicy
}

// WithRetry wraps next so transport failures are retried with exponential
// backoff. Responses rejected by the router are returned without retrying.
func WithRetry(next vyosinterface.Transport, policy RetryPolicy) vyosinterface.Transport {
	if policy.MaxAttempts <= 1 {
		return next
	}
	return &retryingTransport{next: next, policy: policy}
}

func (t *retryingTransport) Send(ctx context.Context, endpoint vyosmodels.Endpoint, payload any) vyosmodels.Response {
	if ctx == nil {
		ctx = context.Background()
	}
	b := backoff.NewExponentialBackOff()
	if t.policy.InitialInterval > 0 {
		b.InitialInterval = t.policy.InitialInterval
	}
	if t.policy.MaxInterval > 0 {
		b.MaxInterval = t.policy.MaxInterval
	}
	opts := []backoff.RetryOption{
		backoff.WithBackOff(b),
		backoff.WithMaxTries(t.policy.MaxAttempts),
	}
	if t.policy.MaxElapsedTime > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(t.policy.MaxElapsedTime))
	}

	var (
		last     vyosmodels.Response
		attempts uint
	)
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempts++
		last = t.next.Send(ctx, endpoint, payload)
		if last.Success {
			return struct{}{}, nil
		}
		if last.Kind != vyosmodels.KindTransportFailure {
			return struct{}{}, backoff.Permanent(last.Err())
		}
		vlog.Warn("vyos api request failed, retrying", "endpoint", string(endpoint), "attempt", attempts, "error", last.Error)
		return struct{}{}, last.Err()
	}, opts...)
	if err == nil {
		return last
	}
	if attempts == 0 || last.Success {
		return vyosmodels.Response{Success: false, Error: err.Error(), Kind: vyosmodels.KindTransportFailure}
	}
	return last
}
