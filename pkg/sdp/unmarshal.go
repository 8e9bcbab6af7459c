package sdp

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bluenviron/gosdp/pkg/liberrors"
)

var (
	errMissingTokens    = errors.New("missing tokens")
	errMissingColon     = errors.New("missing ':'")
	errInvalidPortCount = errors.New("number of ports must be at least 1")
)

// Decoder decodes session descriptions.
// The zero value is ready to use. A Decoder holds no state between calls
// and can be used by multiple goroutines at once, as long as its callbacks can.
type Decoder struct {
	// called when a line is ignored, because it is malformed or because its
	// field type is not handled in the current scope. Optional.
	OnSkippedLine func(line string)

	// called when a recognized attribute cannot be decoded and is kept
	// as a Generic one. Optional.
	OnAttributeFallback func(attr Generic, err error)
}

// mediaBuilder accumulates the media section that is currently open.
type mediaBuilder struct {
	typ        string
	port       int
	portCount  int
	protocol   string
	formats    []string
	connection *Connection
	bandwidths []Bandwidth
	attributes []Attribute
}

func (b *mediaBuilder) build() Media {
	return Media{
		Type:       b.typ,
		Port:       b.port,
		PortCount:  b.portCount,
		Protocol:   b.protocol,
		Formats:    b.formats,
		Connection: b.connection,
		Bandwidths: b.bandwidths,
		Attributes: b.attributes,
	}
}

type decodeState struct {
	d         *Decoder
	s         Session
	hasOrigin bool
	media     *mediaBuilder
}

func malformed(key byte, val string, err error) error {
	return liberrors.ErrMalformedField{
		Field: key,
		Line:  string(key) + "=" + val,
		Err:   err,
	}
}

func unmarshalOrigin(value string) (*Origin, error) {
	fields := strings.Fields(value)
	if len(fields) < 6 {
		return nil, nil
	}

	sessionID, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return nil, err
	}

	sessionVersion, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return nil, err
	}

	return &Origin{
		Username:       fields[0],
		SessionID:      sessionID,
		SessionVersion: sessionVersion,
		NetworkType:    fields[3],
		AddressType:    fields[4],
		UnicastAddress: fields[5],
	}, nil
}

func unmarshalConnection(value string) (*Connection, error) {
	fields := strings.Fields(value)
	if len(fields) < 3 {
		return nil, errMissingTokens
	}

	c := &Connection{
		NetworkType: fields[0],
		AddressType: fields[1],
		Address:     fields[2],
	}

	if strings.Contains(fields[2], "/") {
		parts := splitSlashes(fields[2])
		if len(parts) == 1 && parts[0] == "" {
			return nil, errMissingTokens
		}
		c.Address = parts[0]

		if len(parts) >= 2 {
			ttl, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, err
			}
			c.TTL = &ttl
		}

		if len(parts) >= 3 {
			count, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, err
			}
			c.Count = &count
		}
	}

	return c, nil
}

// splitSlashes splits value on slashes and drops trailing empty parts.
func splitSlashes(value string) []string {
	parts := strings.Split(value, "/")
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func unmarshalBandwidth(value string) (Bandwidth, error) {
	typ, val, ok := strings.Cut(value, ":")
	if !ok {
		return Bandwidth{}, errMissingColon
	}

	bw, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return Bandwidth{}, err
	}

	return Bandwidth{
		Type:  typ,
		Value: bw,
	}, nil
}

func unmarshalTiming(value string) (Timing, error) {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return Timing{}, errMissingTokens
	}

	start, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return Timing{}, err
	}

	stop, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Timing{}, err
	}

	return Timing{Start: start, Stop: stop}, nil
}

func unmarshalMediaDescription(value string) (*mediaBuilder, error) {
	fields := strings.Fields(value)
	if len(fields) < 4 {
		return nil, errMissingTokens
	}

	b := &mediaBuilder{
		typ:       fields[0],
		portCount: 1,
		protocol:  fields[2],
		formats:   append([]string(nil), fields[3:]...),
	}

	// <port>[/<number of ports>]
	// parts after the number of ports are ignored.
	parts := strings.Split(fields[1], "/")

	var err error
	b.port, err = strconv.Atoi(parts[0])
	if err != nil {
		return nil, err
	}

	if len(parts) >= 2 {
		b.portCount, err = strconv.Atoi(parts[1])
		if err != nil {
			return nil, err
		}

		if b.portCount < 1 {
			return nil, errInvalidPortCount
		}
	}

	return b, nil
}

func (st *decodeState) unmarshalAttribute(value string) Attribute {
	attr, err := unmarshalAttribute(value)
	if err != nil && st.d.OnAttributeFallback != nil {
		st.d.OnAttributeFallback(attr.(Generic), err)
	}
	return attr
}

func (st *decodeState) skip(line string) {
	if st.d.OnSkippedLine != nil {
		st.d.OnSkippedLine(line)
	}
}

func (st *decodeState) finalizeMedia() {
	if st.media != nil {
		st.s.Media = append(st.s.Media, st.media.build())
		st.media = nil
	}
}

func (st *decodeState) unmarshalSession(line string, key byte, val string) error {
	switch key {
	case 'v':
		var err error
		st.s.Version, err = strconv.Atoi(val)
		if err != nil {
			return malformed(key, val, err)
		}

	case 'o':
		origin, err := unmarshalOrigin(val)
		if err != nil {
			return malformed(key, val, err)
		}

		if origin != nil {
			st.s.Origin = *origin
			st.hasOrigin = true
		} else {
			st.s.Origin = Origin{}
			st.hasOrigin = false
		}

	case 's':
		st.s.SessionName = val

	case 'i':
		st.s.Information = &val

	case 'u':
		st.s.URI = &val

	case 'e':
		st.s.Emails = append(st.s.Emails, val)

	case 'p':
		st.s.Phones = append(st.s.Phones, val)

	case 'c':
		conn, err := unmarshalConnection(val)
		if err != nil {
			return malformed(key, val, err)
		}
		st.s.Connection = conn

	case 'b':
		bw, err := unmarshalBandwidth(val)
		if err != nil {
			return malformed(key, val, err)
		}
		st.s.Bandwidths = append(st.s.Bandwidths, bw)

	case 't':
		var err error
		st.s.Timing, err = unmarshalTiming(val)
		if err != nil {
			return malformed(key, val, err)
		}

	case 'a':
		if strings.HasPrefix(val, ":") {
			st.skip(line)
			return nil
		}
		st.s.Attributes = append(st.s.Attributes, st.unmarshalAttribute(val))

	default:
		st.skip(line)
	}

	return nil
}

func (st *decodeState) unmarshalMedia(line string, key byte, val string) error {
	switch key {
	case 'c':
		conn, err := unmarshalConnection(val)
		if err != nil {
			return malformed(key, val, err)
		}
		st.media.connection = conn

	case 'b':
		bw, err := unmarshalBandwidth(val)
		if err != nil {
			return malformed(key, val, err)
		}
		st.media.bandwidths = append(st.media.bandwidths, bw)

	case 'a':
		if strings.HasPrefix(val, ":") {
			st.skip(line)
			return nil
		}
		st.media.attributes = append(st.media.attributes, st.unmarshalAttribute(val))

	default:
		st.skip(line)
	}

	return nil
}

// Decode decodes a session description.
// Lines may be terminated by \r\n or \n. Malformed lines and unknown field
// types are skipped, invalid structural fields abort decoding.
func (d Decoder) Decode(byts []byte) (*Session, error) {
	st := &decodeState{d: &d}

	for _, line := range strings.Split(string(byts), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if len(line) < 3 || line[1] != '=' {
			st.skip(line)
			continue
		}

		key := line[0]
		val := line[2:]

		if key == 'm' {
			st.finalizeMedia()

			media, err := unmarshalMediaDescription(val)
			if err != nil {
				return nil, malformed(key, val, err)
			}
			st.media = media
			continue
		}

		var err error
		if st.media != nil {
			err = st.unmarshalMedia(line, key, val)
		} else {
			err = st.unmarshalSession(line, key, val)
		}
		if err != nil {
			return nil, err
		}
	}

	st.finalizeMedia()

	if !st.hasOrigin {
		return nil, liberrors.ErrMissingOrigin{}
	}

	return &st.s, nil
}

// Unmarshal decodes a session description.
// In case of error, the receiver is left untouched.
func (s *Session) Unmarshal(byts []byte) error {
	tmp, err := Decoder{}.Decode(byts)
	if err != nil {
		return err
	}

	*s = *tmp
	return nil
}

// Parse decodes a session description from text.
func Parse(text string) (*Session, error) {
	return Decoder{}.Decode([]byte(text))
}
