package sdp

import (
	"net/url"
	"strings"

	psdp "github.com/pion/sdp/v3"
)

func connectionToPion(c *Connection) *psdp.ConnectionInformation {
	if c == nil {
		return nil
	}

	return &psdp.ConnectionInformation{
		NetworkType: c.NetworkType,
		AddressType: c.AddressType,
		Address: &psdp.Address{
			Address: c.Address,
			TTL:     c.TTL,
			Range:   c.Count,
		},
	}
}

func connectionFromPion(ci *psdp.ConnectionInformation) *Connection {
	if ci == nil {
		return nil
	}

	if ci.Address == nil {
		return &Connection{
			NetworkType: ci.NetworkType,
			AddressType: ci.AddressType,
		}
	}

	// pion keeps "/ttl/range" suffixes inside the address when decoding.
	if ci.Address.TTL == nil && ci.Address.Range == nil && strings.Contains(ci.Address.Address, "/") {
		c, err := unmarshalConnection(ci.NetworkType + " " + ci.AddressType + " " + ci.Address.Address)
		if err == nil {
			return c
		}
	}

	return &Connection{
		NetworkType: ci.NetworkType,
		AddressType: ci.AddressType,
		Address:     ci.Address.Address,
		TTL:         ci.Address.TTL,
		Count:       ci.Address.Range,
	}
}

func bandwidthsToPion(bws []Bandwidth) []psdp.Bandwidth {
	var ret []psdp.Bandwidth
	for _, bw := range bws {
		typ, experimental := strings.CutPrefix(bw.Type, "X-")
		ret = append(ret, psdp.Bandwidth{
			Experimental: experimental,
			Type:         typ,
			Bandwidth:    bw.Value,
		})
	}
	return ret
}

func bandwidthsFromPion(bws []psdp.Bandwidth) []Bandwidth {
	var ret []Bandwidth
	for _, bw := range bws {
		typ := bw.Type
		if bw.Experimental {
			typ = "X-" + typ
		}
		ret = append(ret, Bandwidth{
			Type:  typ,
			Value: bw.Bandwidth,
		})
	}
	return ret
}

func attributesToPion(attrs []Attribute) []psdp.Attribute {
	var ret []psdp.Attribute
	for _, attr := range attrs {
		ret = append(ret, psdp.Attribute{
			Key:   attr.Name(),
			Value: attr.Value(),
		})
	}
	return ret
}

func attributesFromPion(attrs []psdp.Attribute) []Attribute {
	var ret []Attribute
	for _, attr := range attrs {
		if attr.Value == "" {
			ret = append(ret, ParseAttribute(attr.Key))
		} else {
			ret = append(ret, ParseAttribute(attr.Key+":"+attr.Value))
		}
	}
	return ret
}

// ToPion converts the session description into a pion/sdp one.
//
// pion/sdp supports a single e= and p= field, therefore only the first
// email and phone are kept. An URI that cannot be parsed is dropped.
func (s Session) ToPion() *psdp.SessionDescription {
	ps := &psdp.SessionDescription{
		Version: psdp.Version(s.Version),
		Origin: psdp.Origin{
			Username:       s.Origin.Username,
			SessionID:      s.Origin.SessionID,
			SessionVersion: s.Origin.SessionVersion,
			NetworkType:    s.Origin.NetworkType,
			AddressType:    s.Origin.AddressType,
			UnicastAddress: s.Origin.UnicastAddress,
		},
		SessionName:           psdp.SessionName(s.SessionName),
		ConnectionInformation: connectionToPion(s.Connection),
		Bandwidth:             bandwidthsToPion(s.Bandwidths),
		TimeDescriptions: []psdp.TimeDescription{{
			Timing: psdp.Timing{
				StartTime: s.Timing.Start,
				StopTime:  s.Timing.Stop,
			},
		}},
		Attributes: attributesToPion(s.Attributes),
	}

	if s.Information != nil {
		v := psdp.Information(*s.Information)
		ps.SessionInformation = &v
	}

	if s.URI != nil {
		if u, err := url.Parse(*s.URI); err == nil {
			ps.URI = u
		}
	}

	if len(s.Emails) != 0 {
		v := psdp.EmailAddress(s.Emails[0])
		ps.EmailAddress = &v
	}

	if len(s.Phones) != 0 {
		v := psdp.PhoneNumber(s.Phones[0])
		ps.PhoneNumber = &v
	}

	for _, m := range s.Media {
		md := &psdp.MediaDescription{
			MediaName: psdp.MediaName{
				Media:   m.Type,
				Port:    psdp.RangedPort{Value: m.Port},
				Protos:  strings.Split(m.Protocol, "/"),
				Formats: m.Formats,
			},
			ConnectionInformation: connectionToPion(m.Connection),
			Bandwidth:             bandwidthsToPion(m.Bandwidths),
			Attributes:            attributesToPion(m.Attributes),
		}

		if m.PortCount > 1 {
			v := m.PortCount
			md.MediaName.Port.Range = &v
		}

		ps.MediaDescriptions = append(ps.MediaDescriptions, md)
	}

	return ps
}

// FromPion converts a pion/sdp session description.
//
// Only the first time description is kept. Repeat times, time zones,
// encryption keys and media titles have no counterpart and are dropped.
// Attributes are decoded with ParseAttribute.
func FromPion(ps *psdp.SessionDescription) Session {
	s := Session{
		Version: int(ps.Version),
		Origin: Origin{
			Username:       ps.Origin.Username,
			SessionID:      ps.Origin.SessionID,
			SessionVersion: ps.Origin.SessionVersion,
			NetworkType:    ps.Origin.NetworkType,
			AddressType:    ps.Origin.AddressType,
			UnicastAddress: ps.Origin.UnicastAddress,
		},
		SessionName: string(ps.SessionName),
		Connection:  connectionFromPion(ps.ConnectionInformation),
		Bandwidths:  bandwidthsFromPion(ps.Bandwidth),
		Attributes:  attributesFromPion(ps.Attributes),
	}

	if ps.SessionInformation != nil {
		v := string(*ps.SessionInformation)
		s.Information = &v
	}

	if ps.URI != nil {
		v := ps.URI.String()
		s.URI = &v
	}

	if ps.EmailAddress != nil {
		s.Emails = []string{string(*ps.EmailAddress)}
	}

	if ps.PhoneNumber != nil {
		s.Phones = []string{string(*ps.PhoneNumber)}
	}

	if len(ps.TimeDescriptions) != 0 {
		s.Timing = Timing{
			Start: ps.TimeDescriptions[0].Timing.StartTime,
			Stop:  ps.TimeDescriptions[0].Timing.StopTime,
		}
	}

	for _, md := range ps.MediaDescriptions {
		m := Media{
			Type:       md.MediaName.Media,
			Port:       md.MediaName.Port.Value,
			PortCount:  1,
			Protocol:   strings.Join(md.MediaName.Protos, "/"),
			Formats:    md.MediaName.Formats,
			Connection: connectionFromPion(md.ConnectionInformation),
			Bandwidths: bandwidthsFromPion(md.Bandwidth),
			Attributes: attributesFromPion(md.Attributes),
		}

		if md.MediaName.Port.Range != nil {
			m.PortCount = *md.MediaName.Port.Range
		}

		s.Media = append(s.Media, m)
	}

	return s
}
