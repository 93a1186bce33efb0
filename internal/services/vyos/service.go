package vyos

import (
	"context"

	"github.com/vitistack/common/pkg/loggers/vlog"
	"github.com/vitistack/vyos-dhcp-operator/internal/util/configpath"
	"github.com/vitistack/vyos-dhcp-operator/internal/util/leasetable"
	"github.com/vitistack/vyos-dhcp-operator/pkg/interfaces/vyosinterface"
	"github.com/vitistack/vyos-dhcp-operator/pkg/models/vyosmodels"
)

// Service wraps the VyOS DHCP operations used by the API handlers and the CLI.
// Errors returned by its methods are always *vyosmodels.Error.
type Service struct {
	Client vyosinterface.Transport
}

func New(client vyosinterface.Transport) *Service {
	return &Service{Client: client}
}

// GetDhcpLeases runs "show dhcp server <kind>" and parses the table with the
// layout implied by kind.
func (s *Service) GetDhcpLeases(ctx context.Context, kind vyosmodels.Layout) ([]vyosmodels.LeaseRecord, error) {
	if _, ok := leasetable.Layouts[kind]; !ok {
		return nil, vyosmodels.NewError(vyosmodels.KindValidationError, "unsupported table "+string(kind))
	}
	resp := s.Client.Send(ctx, vyosmodels.EndpointShow, configpath.BuildShow(kind))
	if err := resp.Err(); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return []vyosmodels.LeaseRecord{}, nil
	}
	raw, ok := resp.DataString()
	if !ok {
		return nil, leasetable.ErrInvalidFormat
	}
	records, err := leasetable.Parse(raw, kind)
	if err != nil {
		return nil, err
	}
	vlog.Debug("parsed dhcp table", "table", string(kind), "records", len(records))
	return records, nil
}

// GetLeases returns the dynamic lease table.
func (s *Service) GetLeases(ctx context.Context) ([]vyosmodels.LeaseRecord, error) {
	return s.GetDhcpLeases(ctx, vyosmodels.LayoutLeases)
}

// GetStaticMappings returns the static-mapping table.
func (s *Service) GetStaticMappings(ctx context.Context) ([]vyosmodels.LeaseRecord, error) {
	return s.GetDhcpLeases(ctx, vyosmodels.LayoutStaticMapping)
}

// SetStaticMapping reserves ip for mac under hostname. Both set operations are
// sent in one configure request.
func (s *Service) SetStaticMapping(ctx context.Context, pool, subnet, hostname, ip, mac string) (vyosmodels.Response, error) {
	resp := s.Client.Send(ctx, vyosmodels.EndpointConfigure, configpath.BuildSet(pool, subnet, hostname, ip, mac))
	if err := resp.Err(); err != nil {
		return resp, err
	}
	vlog.Info("static mapping set", "pool", pool, "subnet", subnet, "hostname", hostname, "ip", ip, "mac", mac)
	return resp, nil
}

// DeleteStaticMapping removes the static mapping for hostname.
func (s *Service) DeleteStaticMapping(ctx context.Context, pool, subnet, hostname string) (vyosmodels.Response, error) {
	resp := s.Client.Send(ctx, vyosmodels.EndpointConfigure, configpath.BuildDelete(pool, subnet, hostname))
	if err := resp.Err(); err != nil {
		return resp, err
	}
	vlog.Info("static mapping deleted", "pool", pool, "subnet", subnet, "hostname", hostname)
	return resp, nil
}
