// Package fixture loads YAML-described attribute-value-pair lists and
// resolves them against a small built-in raddict dictionary, for use by
// cmd/radencode and cmd/radencodectl.
package fixture

import "github.com/dantte-lp/goradius/internal/raddict"

// dictionary is the set of named attributes the fixture format can
// reference by name. Real deployments bring their own resolved
// raddict.Attribute trees; this table exists only to give the
// CLI entrypoints something concrete to encode.
var dictionary = buildDictionary()

func buildDictionary() map[string]*raddict.Attribute {
	ciscoVSA := &raddict.Attribute{Attr: 26, Kind: raddict.KindVSA, Name: "Vendor-Specific"}
	ciscoVendor := &raddict.Attribute{
		Attr: 9, Vendor: 9, Kind: raddict.KindVendor, Parent: ciscoVSA, Depth: 1, Name: "Cisco",
	}
	ciscoAVPair := &raddict.Attribute{
		Attr: 1, Vendor: 9, Kind: raddict.KindLeaf, ValueKind: raddict.ValueString,
		Parent: ciscoVendor, Depth: 2, Name: "Cisco-AVPair",
	}

	wimaxVSA := &raddict.Attribute{
		Attr: 26, Kind: raddict.KindVSA, Flags: raddict.Flags{WiMAX: true}, Name: "Vendor-Specific",
	}
	wimaxVendor := &raddict.Attribute{
		Attr: raddict.WiMAXEnterpriseNumber, Vendor: raddict.WiMAXEnterpriseNumber,
		Kind: raddict.KindVendor, Parent: wimaxVSA, Depth: 1, Name: "WiMAX",
	}
	wimaxCapability := &raddict.Attribute{
		Attr: 1, Vendor: raddict.WiMAXEnterpriseNumber, Kind: raddict.KindLeaf,
		ValueKind: raddict.ValueOctets, Parent: wimaxVendor, Depth: 2, Name: "WiMAX-Capability",
	}

	return map[string]*raddict.Attribute{
		"User-Name": {
			Attr: 1, Kind: raddict.KindLeaf, ValueKind: raddict.ValueString, Name: "User-Name",
		},
		"User-Password": {
			Attr: 2, Kind: raddict.KindLeaf, ValueKind: raddict.ValueOctets,
			Flags: raddict.Flags{Encrypt: raddict.EncryptUserPassword}, Name: "User-Password",
		},
		"NAS-IP-Address": {
			Attr: 4, Kind: raddict.KindLeaf, ValueKind: raddict.ValueIPv4Addr, Name: "NAS-IP-Address",
		},
		"NAS-Port": {
			Attr: 5, Kind: raddict.KindLeaf, ValueKind: raddict.ValueInteger, Name: "NAS-Port",
		},
		"Filter-Id": {
			Attr: 11, Kind: raddict.KindLeaf, ValueKind: raddict.ValueString,
			Flags: raddict.Flags{Concat: true}, Name: "Filter-Id",
		},
		"Tunnel-Password": {
			Attr: 69, Kind: raddict.KindLeaf, ValueKind: raddict.ValueOctets,
			Flags: raddict.Flags{HasTag: true, Encrypt: raddict.EncryptTunnelPassword},
			Name:  "Tunnel-Password",
		},
		"Chargeable-User-Identity": {
			Attr: 89, Kind: raddict.KindLeaf, ValueKind: raddict.ValueOctets, Name: "Chargeable-User-Identity",
		},
		"Cisco-AVPair": ciscoAVPair,
		"WiMAX-Capability": wimaxCapability,
	}
}

// Lookup resolves a fixture attribute name to its dictionary node.
func Lookup(name string) (*raddict.Attribute, bool) {
	attr, ok := dictionary[name]
	return attr, ok
}
