package leasetable_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vitistack/vyos-dhcp-operator/internal/util/leasetable"
	"github.com/vitistack/vyos-dhcp-operator/pkg/models/vyosmodels"
)

const leasesTable = `IP Address    MAC address        State    Lease start          Lease expiration     Remaining    Pool    Hostname    Origin
------------  -----------------  -------  -------------------  -------------------  -----------  ------  ----------  --------
10.0.0.5      aa:bb:cc:dd:ee:ff  active   2024/01/01 11:00:00  2024/01/01 12:00:00  0:59:59      LAN     host-1      local
10.0.0.6      aa:bb:cc:dd:ee:01  active   2024/01/01 11:05:00  2024/01/01 12:05:00  1:04:59      LAN     printer     local
`

const staticTable = `Pool    Subnet        Name      IP Address    MAC Address        Description
------  ------------  --------  ------------  -----------------  -------------
LAN     10.0.0.0/16   nas       10.0.0.10     00:11:22:33:44:55  storage
LAN     10.0.0.0/16   tv        10.0.0.11     00:11:22:33:44:66
`

var _ = Describe("Parse", func() {
	Context("with the leases layout", func() {
		It("maps the fixed column offsets", func() {
			records, err := leasetable.Parse(leasesTable, vyosmodels.LayoutLeases)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(Equal([]vyosmodels.LeaseRecord{
				{IPAddress: "10.0.0.5", MACAddress: "aa:bb:cc:dd:ee:ff", Hostname: "host-1", Pool: "LAN", ExpiryTime: "2024/01/01_12:00:00"},
				{IPAddress: "10.0.0.6", MACAddress: "aa:bb:cc:dd:ee:01", Hostname: "printer", Pool: "LAN", ExpiryTime: "2024/01/01_12:05:00"},
			}))
		})

		It("parses tab separated rows", func() {
			raw := "IP\tMAC\n----\n10.0.0.5\taa:bb:cc:dd:ee:ff\tactive\t2024-01-01\t11:00\t2024-01-01\t12:00\t0:59\tLAN\thost-1\n"
			records, err := leasetable.Parse(raw, vyosmodels.LayoutLeases)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(ConsistOf(vyosmodels.LeaseRecord{
				IPAddress:  "10.0.0.5",
				MACAddress: "aa:bb:cc:dd:ee:ff",
				Pool:       "LAN",
				Hostname:   "host-1",
				ExpiryTime: "2024-01-01_12:00",
			}))
		})

		It("takes ip and mac from the first two tokens of any row with at least four tokens", func() {
			raw := "h\ns\n192.168.1.2 de:ad:be:ef:00:01 x y\n"
			records, err := leasetable.Parse(raw, vyosmodels.LayoutLeases)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].IPAddress).To(Equal("192.168.1.2"))
			Expect(records[0].MACAddress).To(Equal("de:ad:be:ef:00:01"))
			Expect(records[0].ExpiryTime).To(BeEmpty())
			Expect(records[0].Pool).To(BeEmpty())
		})

		It("drops rows shorter than four tokens", func() {
			raw := "h\ns\n10.0.0.7 aa:aa:aa:aa:aa:aa active\n10.0.0.5 aa:bb:cc:dd:ee:ff a b\n"
			records, err := leasetable.Parse(raw, vyosmodels.LayoutLeases)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].IPAddress).To(Equal("10.0.0.5"))
		})

		It("skips blank rows and keeps input order", func() {
			raw := "h\ns\n\n10.0.0.9 m9 a b\n   \n10.0.0.1 m1 a b\n"
			records, err := leasetable.Parse(raw, vyosmodels.LayoutLeases)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0].IPAddress).To(Equal("10.0.0.9"))
			Expect(records[1].IPAddress).To(Equal("10.0.0.1"))
		})
	})

	Context("with the static-mapping layout", func() {
		It("maps the fixed column offsets and never expires", func() {
			records, err := leasetable.Parse(staticTable, vyosmodels.LayoutStaticMapping)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(Equal([]vyosmodels.LeaseRecord{
				{IPAddress: "10.0.0.10", MACAddress: "00:11:22:33:44:55", Hostname: "nas", Pool: "LAN", Subnet: "10.0.0.0/16", ExpiryTime: "N/A"},
				{IPAddress: "10.0.0.11", MACAddress: "00:11:22:33:44:66", Hostname: "tv", Pool: "LAN", Subnet: "10.0.0.0/16", ExpiryTime: "N/A"},
			}))
		})

		It("reports N/A expiry for every row", func() {
			records, err := leasetable.Parse(staticTable, vyosmodels.LayoutStaticMapping)
			Expect(err).NotTo(HaveOccurred())
			for _, r := range records {
				Expect(r.ExpiryTime).To(Equal(leasetable.StaticMappingExpiry))
			}
		})

		It("drops rows missing the mac column", func() {
			raw := "h\ns\nLAN 10.0.0.0/16 nas 10.0.0.10\n"
			records, err := leasetable.Parse(raw, vyosmodels.LayoutStaticMapping)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())
		})
	})

	DescribeTable("rejects tables shorter than three lines",
		func(raw string, layout vyosmodels.Layout) {
			records, err := leasetable.Parse(raw, layout)
			Expect(records).To(BeNil())
			Expect(err).To(MatchError("Invalid response format"))
			Expect(vyosmodels.KindOf(err)).To(Equal(vyosmodels.KindFormatError))
		},
		Entry("empty", "", vyosmodels.LayoutLeases),
		Entry("header only", "IP MAC", vyosmodels.LayoutLeases),
		Entry("header and separator", "Pool Subnet\n----", vyosmodels.LayoutStaticMapping),
	)

	It("returns an empty list for a header with a trailing newline", func() {
		records, err := leasetable.Parse("h\ns\n", vyosmodels.LayoutLeases)
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	It("rejects unknown layouts", func() {
		_, err := leasetable.Parse(leasesTable, vyosmodels.Layout("pools"))
		Expect(vyosmodels.KindOf(err)).To(Equal(vyosmodels.KindFormatError))
	})

	It("never surfaces records without ip and mac", func() {
		rows := []string{"h", "s", "only-one-token", "a b", "x", strings.Repeat(" ", 4)}
		for _, layout := range []vyosmodels.Layout{vyosmodels.LayoutLeases, vyosmodels.LayoutStaticMapping} {
			records, err := leasetable.Parse(strings.Join(rows, "\n"), layout)
			Expect(err).NotTo(HaveOccurred())
			for _, r := range records {
				Expect(r.IPAddress).NotTo(BeEmpty())
				Expect(r.MACAddress).NotTo(BeEmpty())
			}
		}
	})
})
