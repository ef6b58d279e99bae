package fixture

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dantte-lp/goradius/internal/raddict"
	"github.com/dantte-lp/goradius/internal/radius"
)

// Errors returned while resolving a fixture against the dictionary.
var (
	// ErrUnknownAttribute indicates a fixture referenced an attribute name
	// not present in the built-in dictionary.
	ErrUnknownAttribute = errors.New("unknown fixture attribute")

	// ErrInvalidValue indicates a fixture's value string could not be
	// parsed for its attribute's ValueKind.
	ErrInvalidValue = errors.New("invalid fixture value")
)

// AttrSpec is one attribute entry in a fixture file.
type AttrSpec struct {
	// Name references a dictionary entry, e.g. "User-Name", "Cisco-AVPair".
	Name string `yaml:"name"`
	// Value is the textual form of the attribute's value: a plain string
	// for String/Octets attributes, a dotted-quad for IPv4Addr, or a
	// decimal number for Integer-shaped attributes.
	Value string `yaml:"value"`
	// Tag is used only for attributes with Flags.HasTag (Tunnel-Password).
	Tag uint8 `yaml:"tag"`
}

// JobSpec is one independent encode job: a packet context and its
// attribute list.
type JobSpec struct {
	// Code is the RADIUS packet code (Access-Request=1, ...).
	Code uint8 `yaml:"code"`
	// Secret is the shared secret for this job's encryption kernels.
	Secret string `yaml:"secret"`
	// Attributes is the ordered attribute list to encode.
	Attributes []AttrSpec `yaml:"attributes"`
}

// Load reads a YAML fixture file containing a list of jobs.
func Load(path string) ([]JobSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}

	var jobs []JobSpec
	if err := yaml.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}

	return jobs, nil
}

// Build resolves a JobSpec against the built-in dictionary, returning a
// PacketCtx and the head of the linked AVP list ready for
// internal/radius.EncodePair or EncodeBatch.
func (j JobSpec) Build() (*radius.PacketCtx, *radius.AVP, error) {
	pkt := &radius.PacketCtx{Code: j.Code, Secret: j.Secret}

	var head, tail *radius.AVP
	for i, spec := range j.Attributes {
		avp, err := buildAVP(spec)
		if err != nil {
			return nil, nil, fmt.Errorf("attribute[%d] %q: %w", i, spec.Name, err)
		}
		if head == nil {
			head = avp
		} else {
			tail.Next = avp
		}
		tail = avp
	}

	return pkt, head, nil
}

// buildAVP resolves one AttrSpec into an AVP against the dictionary.
func buildAVP(spec AttrSpec) (*radius.AVP, error) {
	descriptor, ok := Lookup(spec.Name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", spec.Name, ErrUnknownAttribute)
	}

	avp := &radius.AVP{Descriptor: descriptor, Tag: spec.Tag}

	switch descriptor.ValueKind {
	case raddict.ValueIPv4Addr:
		ip := net.ParseIP(spec.Value).To4()
		if ip == nil {
			return nil, fmt.Errorf("%q: %w", spec.Value, ErrInvalidValue)
		}
		avp.Raw = []byte(ip)
	case raddict.ValueByte, raddict.ValueShort, raddict.ValueInteger, raddict.ValueInteger64, raddict.ValueDate:
		n, err := strconv.ParseUint(spec.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", spec.Value, ErrInvalidValue)
		}
		avp.Uint = n
	case raddict.ValueSigned:
		n, err := strconv.ParseInt(spec.Value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", spec.Value, ErrInvalidValue)
		}
		avp.Int = int32(n)
	case raddict.ValueBoolean:
		avp.Bool = spec.Value == "true"
	default: // ValueString, ValueOctets, and other octet-string-shaped kinds.
		avp.Raw = []byte(spec.Value)
	}

	return avp, nil
}
