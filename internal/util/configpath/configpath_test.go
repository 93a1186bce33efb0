package configpath

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/vitistack/vyos-dhcp-operator/pkg/models/vyosmodels"
)

var wantPrefix = []string{"service", "dhcp-server", "shared-network-name", "LAN", "subnet", "10.0.0.0/16", "static-mapping", "host-1"}

func TestBuildSet_TwoOperationsSharingPrefix(t *testing.T) {
	batch := BuildSet("LAN", "10.0.0.0/16", "host-1", "10.0.0.5", "aa:bb:cc:dd:ee:ff")
	if len(batch) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(batch))
	}
	wantSuffixes := [][]string{
		{"mac", "aa:bb:cc:dd:ee:ff"},
		{"ip-address", "10.0.0.5"},
	}
	for i, op := range batch {
		if op.Op != vyosmodels.OpSet {
			t.Fatalf("operation %d: expected set, got %s", i, op.Op)
		}
		if len(op.Path) != len(wantPrefix)+2 {
			t.Fatalf("operation %d: unexpected path length %d", i, len(op.Path))
		}
		if !reflect.DeepEqual(op.Path[:len(wantPrefix)], wantPrefix) {
			t.Fatalf("operation %d: unexpected prefix %v", i, op.Path)
		}
		if !reflect.DeepEqual(op.Path[len(wantPrefix):], wantSuffixes[i]) {
			t.Fatalf("operation %d: unexpected suffix %v", i, op.Path[len(wantPrefix):])
		}
	}
}

func TestBuildSet_PathsDoNotAlias(t *testing.T) {
	batch := BuildSet("LAN", "10.0.0.0/16", "host-1", "10.0.0.5", "aa:bb:cc:dd:ee:ff")
	batch[0].Path[0] = "changed"
	if batch[1].Path[0] != "service" {
		t.Fatalf("operations share backing storage: %v", batch[1].Path)
	}
}

func TestBuildDelete_ExactPrefix(t *testing.T) {
	op := BuildDelete("LAN", "10.0.0.0/16", "host-1")
	if op.Op != vyosmodels.OpDelete {
		t.Fatalf("expected delete, got %s", op.Op)
	}
	if !reflect.DeepEqual(op.Path, wantPrefix) {
		t.Fatalf("unexpected path: %v", op.Path)
	}
}

func TestBuildDelete_MirrorsSetPrefix(t *testing.T) {
	del := BuildDelete("pool a", "192.168.1.0/24", "h")
	for _, op := range BuildSet("pool a", "192.168.1.0/24", "h", "192.168.1.9", "00:11:22:33:44:55") {
		if !reflect.DeepEqual(op.Path[:len(del.Path)], del.Path) {
			t.Fatalf("set path %v does not extend delete path %v", op.Path, del.Path)
		}
	}
}

func TestWireEncoding(t *testing.T) {
	b, err := json.Marshal(BuildShow(vyosmodels.LayoutLeases))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(b); got != `{"op":"show","path":["dhcp","server","leases"]}` {
		t.Fatalf("unexpected show payload: %s", got)
	}
	b, err = json.Marshal(BuildDelete("LAN", "10.0.0.0/16", "host-1"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"op":"delete","path":["service","dhcp-server","shared-network-name","LAN","subnet","10.0.0.0/16","static-mapping","host-1"]}`
	if string(b) != want {
		t.Fatalf("unexpected delete payload: %s", b)
	}
}
