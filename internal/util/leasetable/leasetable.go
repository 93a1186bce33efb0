package leasetable

import (
	"strings"

	"github.com/vitistack/vyos-dhcp-operator/pkg/models/vyosmodels"
)

// ErrInvalidFormat is returned for tables shorter than header + separator + one row.
var ErrInvalidFormat = vyosmodels.NewError(vyosmodels.KindFormatError, "Invalid response format")

// StaticMappingExpiry is reported for static mappings, which never expire.
const StaticMappingExpiry = "N/A"

const absent = -1

// Columns maps LeaseRecord fields to zero-based token positions of a row.
// ExpiryDate and ExpiryTime are joined with an underscore. MinTokens is the
// shortest row that is mapped at all; shorter rows are dropped.
type Columns struct {
	IPAddress  int
	MACAddress int
	Hostname   int
	Pool       int
	Subnet     int
	ExpiryDate int
	ExpiryTime int
	MinTokens  int
}

// Layouts is the column contract for each table the router returns. Changing
// an offset here changes the wire contract with the router and must come with
// updated tests.
//
// "show dhcp server leases":
//
//	IP Address  MAC address  State  Lease start  Lease expiration  Remaining  Pool  Hostname  Origin
//	0           1            2      3 4          5 6               7          8     9         10
//
// "show dhcp server static-mapping":
//
//	Pool  Subnet  Hostname  IP Address  MAC Address  Description
//	0     1       2         3           4            5
var Layouts = map[vyosmodels.Layout]Columns{
	vyosmodels.LayoutLeases: {
		IPAddress:  0,
		MACAddress: 1,
		ExpiryDate: 5,
		ExpiryTime: 6,
		Pool:       8,
		Hostname:   9,
		Subnet:     absent,
		MinTokens:  4,
	},
	vyosmodels.LayoutStaticMapping: {
		Pool:       0,
		Subnet:     1,
		Hostname:   2,
		IPAddress:  3,
		MACAddress: 4,
		ExpiryDate: absent,
		ExpiryTime: absent,
		MinTokens:  0,
	},
}

// Parse converts a plain-text table into lease records. Line 0 is the header
// and line 1 the separator; blank rows are skipped. Rows without both an IP
// and a MAC address are dropped. Output order follows input order.
func Parse(raw string, layout vyosmodels.Layout) ([]vyosmodels.LeaseRecord, error) {
	cols, ok := Layouts[layout]
	if !ok {
		return nil, vyosmodels.NewError(vyosmodels.KindFormatError, "unknown table layout "+string(layout))
	}

	lines := strings.Split(raw, "\n")
	if len(lines) < 3 {
		return nil, ErrInvalidFormat
	}

	records := make([]vyosmodels.LeaseRecord, 0, len(lines)-2)
	for _, line := range lines[2:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec := parseRow(strings.Fields(line), layout, cols)
		if rec.IPAddress == "" || rec.MACAddress == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(tokens []string, layout vyosmodels.Layout, cols Columns) vyosmodels.LeaseRecord {
	if len(tokens) < cols.MinTokens {
		return vyosmodels.LeaseRecord{}
	}
	rec := vyosmodels.LeaseRecord{
		IPAddress:  tokenAt(tokens, cols.IPAddress),
		MACAddress: tokenAt(tokens, cols.MACAddress),
		Hostname:   tokenAt(tokens, cols.Hostname),
		Pool:       tokenAt(tokens, cols.Pool),
		Subnet:     tokenAt(tokens, cols.Subnet),
	}
	if layout == vyosmodels.LayoutStaticMapping {
		rec.ExpiryTime = StaticMappingExpiry
	} else {
		rec.ExpiryTime = joinTokens(tokens, cols.ExpiryDate, cols.ExpiryTime)
	}
	return rec
}

func tokenAt(tokens []string, i int) string {
	if i < 0 || i >= len(tokens) {
		return ""
	}
	return tokens[i]
}

// joinTokens returns "<a>_<b>", or "" unless both positions are present.
func joinTokens(tokens []string, a, b int) string {
	first, second := tokenAt(tokens, a), tokenAt(tokens, b)
	if first == "" || second == "" {
		return ""
	}
	return first + "_" + second
}
