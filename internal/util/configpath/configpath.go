package configpath

import "github.com/vitistack/vyos-dhcp-operator/pkg/models/vyosmodels"

// StaticMappingPrefix returns the configuration path of a static mapping:
//
//	service dhcp-server shared-network-name <pool> subnet <subnet> static-mapping <hostname>
//
// Segments are not escaped or validated.
func StaticMappingPrefix(pool, subnet, hostname string) []string {
	return []string{
		"service",
		"dhcp-server",
		"shared-network-name",
		pool,
		"subnet",
		subnet,
		"static-mapping",
		hostname,
	}
}

// BuildSet returns the two set operations that make up a static mapping. Both
// are required; a mapping with only one of them is incomplete on the router.
func BuildSet(pool, subnet, hostname, ip, mac string) vyosmodels.ConfigBatch {
	return vyosmodels.ConfigBatch{
		{Op: vyosmodels.OpSet, Path: withLeaf(StaticMappingPrefix(pool, subnet, hostname), "mac", mac)},
		{Op: vyosmodels.OpSet, Path: withLeaf(StaticMappingPrefix(pool, subnet, hostname), "ip-address", ip)},
	}
}

// BuildDelete removes the whole static-mapping subtree for hostname.
func BuildDelete(pool, subnet, hostname string) vyosmodels.ConfigOperation {
	return vyosmodels.ConfigOperation{Op: vyosmodels.OpDelete, Path: StaticMappingPrefix(pool, subnet, hostname)}
}

// BuildShow returns the operational query for a DHCP server table.
func BuildShow(layout vyosmodels.Layout) vyosmodels.ConfigOperation {
	return vyosmodels.ConfigOperation{Op: vyosmodels.OpShow, Path: []string{"dhcp", "server", string(layout)}}
}

func withLeaf(prefix []string, key, value string) []string {
	return append(prefix, key, value)
}
