package vyosinterface

import (
	"context"

	"github.com/vitistack/vyos-dhcp-operator/pkg/models/vyosmodels"
)

// Transport posts a payload to a router API endpoint. Implementations never
// return transport errors directly; failures come back as a Response with
// Success=false.
type Transport interface {
	Send(ctx context.Context, endpoint vyosmodels.Endpoint, payload any) vyosmodels.Response
}
