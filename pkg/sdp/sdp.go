// Package sdp contains a SDP (RFC 4566) decoder and encoder that works on a
// strongly-typed session model and preserves unknown extensions.
package sdp

import (
	"strconv"
	"strings"
)

// Origin is the o= field.
type Origin struct {
	Username       string
	SessionID      uint64
	SessionVersion uint64
	NetworkType    string
	AddressType    string
	UnicastAddress string
}

// String returns the value of the field.
func (o Origin) String() string {
	return o.Username + " " +
		strconv.FormatUint(o.SessionID, 10) + " " +
		strconv.FormatUint(o.SessionVersion, 10) + " " +
		o.NetworkType + " " +
		o.AddressType + " " +
		o.UnicastAddress
}

// Connection is the c= field.
type Connection struct {
	NetworkType string
	AddressType string
	Address     string

	// TTL and Count are only present for multicast addresses,
	// where they are written as /-separated suffixes of the address.
	TTL   *int
	Count *int
}

// String returns the value of the field.
func (c Connection) String() string {
	var b strings.Builder
	b.WriteString(c.NetworkType)
	b.WriteByte(' ')
	b.WriteString(c.AddressType)
	b.WriteByte(' ')
	b.WriteString(c.Address)

	if c.TTL != nil {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(*c.TTL))
	}

	if c.Count != nil {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(*c.Count))
	}

	return b.String()
}

// Bandwidth is a b= field.
type Bandwidth struct {
	Type  string
	Value uint64
}

// String returns the value of the field.
func (b Bandwidth) String() string {
	return b.Type + ":" + strconv.FormatUint(b.Value, 10)
}

// Timing is the t= field.
// Values are NTP seconds.
type Timing struct {
	Start uint64
	Stop  uint64
}

// IsUnbounded returns whether the session is permanent.
// RFC 4566 gives "0 0" this meaning, which differs from an
// immediate start (Start == 0) or an open end (Stop == 0) alone.
func (t Timing) IsUnbounded() bool {
	return t.Start == 0 && t.Stop == 0
}

// Media is a media section, introduced by a m= line.
type Media struct {
	// media type (audio, video, application, ...).
	Type string

	Port int

	// number of contiguous ports. It is 1 unless written as port/count.
	PortCount int

	Protocol string

	// formats in the order they were written.
	// The first one is usually the preferred codec.
	Formats []string

	Connection *Connection
	Bandwidths []Bandwidth
	Attributes []Attribute
}

// Attribute returns the first attribute with the given name.
func (m Media) Attribute(name string) (Attribute, bool) {
	return findAttribute(m.Attributes, name)
}

// AttributesNamed returns all attributes with the given name, in order.
func (m Media) AttributesNamed(name string) []Attribute {
	return filterAttributes(m.Attributes, name)
}

// Session is a session description.
type Session struct {
	Version     int
	Origin      Origin
	SessionName string
	Information *string
	URI         *string
	Emails      []string
	Phones      []string
	Connection  *Connection
	Bandwidths  []Bandwidth
	Timing      Timing
	Attributes  []Attribute
	Media       []Media
}

// Attribute returns the first session-level attribute with the given name.
func (s Session) Attribute(name string) (Attribute, bool) {
	return findAttribute(s.Attributes, name)
}

// AttributesNamed returns all session-level attributes with the given name, in order.
func (s Session) AttributesNamed(name string) []Attribute {
	return filterAttributes(s.Attributes, name)
}

func findAttribute(attributes []Attribute, name string) (Attribute, bool) {
	for _, attr := range attributes {
		if strings.EqualFold(attr.Name(), name) {
			return attr, true
		}
	}
	return nil, false
}

func filterAttributes(attributes []Attribute, name string) []Attribute {
	var ret []Attribute
	for _, attr := range attributes {
		if strings.EqualFold(attr.Name(), name) {
			ret = append(ret, attr)
		}
	}
	return ret
}
