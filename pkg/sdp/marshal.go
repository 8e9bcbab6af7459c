package sdp

import (
	"strconv"
	"strings"
)

func writeLine(b *strings.Builder, key byte, value string) {
	b.WriteByte(key)
	b.WriteByte('=')
	b.WriteString(value)
	b.WriteString("\r\n")
}

func (m Media) marshal(b *strings.Builder) {
	var header strings.Builder
	header.WriteString(m.Type)
	header.WriteByte(' ')
	header.WriteString(strconv.Itoa(m.Port))
	if m.PortCount > 1 {
		header.WriteByte('/')
		header.WriteString(strconv.Itoa(m.PortCount))
	}
	header.WriteByte(' ')
	header.WriteString(m.Protocol)
	for _, f := range m.Formats {
		header.WriteByte(' ')
		header.WriteString(f)
	}
	writeLine(b, 'm', header.String())

	if m.Connection != nil {
		writeLine(b, 'c', m.Connection.String())
	}

	for _, bw := range m.Bandwidths {
		writeLine(b, 'b', bw.String())
	}

	for _, attr := range m.Attributes {
		writeLine(b, 'a', marshalAttribute(attr))
	}
}

// String encodes the session description in text form.
//
// Fields are written in this order:
//
//	v=  (protocol version)
//	o=  (originator and session identifier)
//	s=  (session name)
//	i=* (session information)
//	u=* (URI of description)
//	e=* (email addresses)
//	p=* (phone numbers)
//	c=* (connection information)
//	b=* (bandwidth information lines)
//	t=  (time the session is active)
//	a=* (session attribute lines)
//	media descriptions, each with:
//	m=  (media name and transport address)
//	c=* (connection information)
//	b=* (bandwidth information lines)
//	a=* (media attribute lines)
//
// Every line is terminated by \r\n.
func (s Session) String() string {
	var b strings.Builder

	writeLine(&b, 'v', strconv.Itoa(s.Version))
	writeLine(&b, 'o', s.Origin.String())
	writeLine(&b, 's', s.SessionName)

	if s.Information != nil {
		writeLine(&b, 'i', *s.Information)
	}

	if s.URI != nil {
		writeLine(&b, 'u', *s.URI)
	}

	for _, e := range s.Emails {
		writeLine(&b, 'e', e)
	}

	for _, p := range s.Phones {
		writeLine(&b, 'p', p)
	}

	if s.Connection != nil {
		writeLine(&b, 'c', s.Connection.String())
	}

	for _, bw := range s.Bandwidths {
		writeLine(&b, 'b', bw.String())
	}

	writeLine(&b, 't', strconv.FormatUint(s.Timing.Start, 10)+" "+strconv.FormatUint(s.Timing.Stop, 10))

	for _, attr := range s.Attributes {
		writeLine(&b, 'a', marshalAttribute(attr))
	}

	for _, m := range s.Media {
		m.marshal(&b)
	}

	return b.String()
}

// Marshal encodes the session description.
func (s Session) Marshal() []byte {
	return []byte(s.String())
}
