package sdp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Attribute is an a= field.
// It is implemented by Generic and by the typed attributes of this package;
// consumers are expected to use a type switch.
type Attribute interface {
	// Name returns the attribute name.
	Name() string

	// Value returns the attribute value, or an empty string for flag attributes.
	Value() string

	isAttribute()
}

func marshalAttribute(attr Attribute) string {
	v := attr.Value()
	if v == "" {
		return attr.Name()
	}
	return attr.Name() + ":" + v
}

// Generic is an attribute that is not recognized, or that could not be decoded
// into its typed form. Name and value are kept as they were written.
type Generic struct {
	Key      string
	RawValue string
}

// Name implements Attribute.
func (a Generic) Name() string { return a.Key }

// Value implements Attribute.
func (a Generic) Value() string { return a.RawValue }

func (Generic) isAttribute() {}

// Rtpmap is the rtpmap attribute.
//
//	a=rtpmap:<payload type> <encoding name>/<clock rate>[/<encoding parameters>]
type Rtpmap struct {
	PayloadType    uint8
	EncodingName   string
	ClockRate      int
	EncodingParams string
}

// Name implements Attribute.
func (Rtpmap) Name() string { return "rtpmap" }

// Value implements Attribute.
func (a Rtpmap) Value() string {
	v := strconv.FormatUint(uint64(a.PayloadType), 10) + " " + a.EncodingName + "/" + strconv.Itoa(a.ClockRate)
	if a.EncodingParams != "" {
		v += "/" + a.EncodingParams
	}
	return v
}

func (Rtpmap) isAttribute() {}

// Fmtp is the fmtp attribute.
//
//	a=fmtp:<payload type> <format specific parameters>
type Fmtp struct {
	PayloadType uint8
	Params      string
}

// Name implements Attribute.
func (Fmtp) Name() string { return "fmtp" }

// Value implements Attribute.
func (a Fmtp) Value() string {
	v := strconv.FormatUint(uint64(a.PayloadType), 10)
	if a.Params != "" {
		v += " " + a.Params
	}
	return v
}

func (Fmtp) isAttribute() {}

// Mid is the mid attribute (RFC 5888).
type Mid struct {
	ID string
}

// Name implements Attribute.
func (Mid) Name() string { return "mid" }

// Value implements Attribute.
func (a Mid) Value() string { return a.ID }

func (Mid) isAttribute() {}

// Msid is the msid attribute (RFC 8830).
//
//	a=msid:<stream id> [<track id>]
type Msid struct {
	StreamID string
	TrackID  string
}

// Name implements Attribute.
func (Msid) Name() string { return "msid" }

// Value implements Attribute.
func (a Msid) Value() string {
	if a.TrackID == "" {
		return a.StreamID
	}
	return a.StreamID + " " + a.TrackID
}

func (Msid) isAttribute() {}

// Ssrc is the ssrc attribute (RFC 5576).
//
//	a=ssrc:<ssrc id> <attribute>[:<value>]
type Ssrc struct {
	SSRC           uint32
	AttributeName  string
	AttributeValue string
}

// Name implements Attribute.
func (Ssrc) Name() string { return "ssrc" }

// Value implements Attribute.
func (a Ssrc) Value() string {
	v := strconv.FormatUint(uint64(a.SSRC), 10)
	if a.AttributeName != "" || a.AttributeValue != "" {
		v += " " + a.AttributeName
	}
	if a.AttributeValue != "" {
		v += ":" + a.AttributeValue
	}
	return v
}

func (Ssrc) isAttribute() {}

// IceUfrag is the ice-ufrag attribute.
type IceUfrag struct {
	Ufrag string
}

// Name implements Attribute.
func (IceUfrag) Name() string { return "ice-ufrag" }

// Value implements Attribute.
func (a IceUfrag) Value() string { return a.Ufrag }

func (IceUfrag) isAttribute() {}

// IcePwd is the ice-pwd attribute.
type IcePwd struct {
	Password string
}

// Name implements Attribute.
func (IcePwd) Name() string { return "ice-pwd" }

// Value implements Attribute.
func (a IcePwd) Value() string { return a.Password }

func (IcePwd) isAttribute() {}

// Fingerprint is the fingerprint attribute (RFC 8122).
//
//	a=fingerprint:<hash function> <fingerprint>
type Fingerprint struct {
	HashFunction string
	Fingerprint  string
}

// Name implements Attribute.
func (Fingerprint) Name() string { return "fingerprint" }

// Value implements Attribute.
func (a Fingerprint) Value() string { return a.HashFunction + " " + a.Fingerprint }

func (Fingerprint) isAttribute() {}

// Setup is the setup attribute (RFC 4145).
type Setup struct {
	Role string
}

// Name implements Attribute.
func (Setup) Name() string { return "setup" }

// Value implements Attribute.
func (a Setup) Value() string { return a.Role }

func (Setup) isAttribute() {}

var (
	errAttributeMissingTokens = errors.New("missing tokens")
	errAttributeTooManyTokens = errors.New("too many tokens")
)

// splitFirst splits value at the first whitespace and drops the whitespace that follows it.
func splitFirst(value string) (string, string) {
	i := strings.IndexFunc(value, unicode.IsSpace)
	if i < 0 {
		return value, ""
	}
	return value[:i], strings.TrimLeftFunc(value[i:], unicode.IsSpace)
}

func parsePayloadType(value string) (uint8, error) {
	tmp, err := strconv.ParseUint(value, 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(tmp), nil
}

func unmarshalRtpmap(value string) (Attribute, error) {
	pt, rest := splitFirst(value)
	if rest == "" {
		return nil, errAttributeMissingTokens
	}

	payloadType, err := parsePayloadType(pt)
	if err != nil {
		return nil, err
	}

	parts := strings.SplitN(rest, "/", 3)
	if len(parts) < 2 {
		return nil, errAttributeMissingTokens
	}

	clockRate, err := strconv.ParseUint(parts[1], 10, 31)
	if err != nil {
		return nil, err
	}

	a := Rtpmap{
		PayloadType:  payloadType,
		EncodingName: parts[0],
		ClockRate:    int(clockRate),
	}

	if len(parts) == 3 {
		a.EncodingParams = parts[2]
	}

	return a, nil
}

func unmarshalFmtp(value string) (Attribute, error) {
	pt, rest := splitFirst(value)

	payloadType, err := parsePayloadType(pt)
	if err != nil {
		return nil, err
	}

	return Fmtp{
		PayloadType: payloadType,
		Params:      rest,
	}, nil
}

func unmarshalMsid(value string) (Attribute, error) {
	fields := strings.Fields(value)

	switch len(fields) {
	case 0:
		return nil, errAttributeMissingTokens

	case 1:
		return Msid{StreamID: fields[0]}, nil

	case 2:
		return Msid{StreamID: fields[0], TrackID: fields[1]}, nil
	}

	return nil, errAttributeTooManyTokens
}

func unmarshalSsrc(value string) (Attribute, error) {
	id, rest := splitFirst(value)

	tmp, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return nil, err
	}

	a := Ssrc{SSRC: uint32(tmp)}
	a.AttributeName, a.AttributeValue, _ = strings.Cut(rest, ":")

	return a, nil
}

func unmarshalFingerprint(value string) (Attribute, error) {
	hash, rest := splitFirst(value)
	if hash == "" || rest == "" {
		return nil, errAttributeMissingTokens
	}

	return Fingerprint{
		HashFunction: hash,
		Fingerprint:  rest,
	}, nil
}

// unmarshalAttribute decodes the value of an a= line.
// It always returns an attribute; when a recognized attribute cannot be decoded,
// a Generic one is returned together with the reason.
func unmarshalAttribute(raw string) (Attribute, error) {
	name, value, _ := strings.Cut(raw, ":")

	var attr Attribute
	var err error

	switch strings.ToLower(name) {
	case "rtpmap":
		attr, err = unmarshalRtpmap(value)

	case "fmtp":
		attr, err = unmarshalFmtp(value)

	case "mid":
		attr = Mid{ID: value}

	case "msid":
		attr, err = unmarshalMsid(value)

	case "ssrc":
		attr, err = unmarshalSsrc(value)

	case "ice-ufrag":
		attr = IceUfrag{Ufrag: value}

	case "ice-pwd":
		attr = IcePwd{Password: value}

	case "fingerprint":
		attr, err = unmarshalFingerprint(value)

	case "setup":
		attr = Setup{Role: value}

	default:
		attr = Generic{Key: name, RawValue: value}
	}

	if err != nil {
		return Generic{Key: name, RawValue: value}, fmt.Errorf("invalid %s attribute: %w", name, err)
	}

	return attr, nil
}

// ParseAttribute decodes the value of an a= line (everything after "a=").
// It never fails: attributes that are unknown or that cannot be decoded are
// returned as Generic, preserving name and value.
func ParseAttribute(raw string) Attribute {
	attr, _ := unmarshalAttribute(raw)
	return attr
}
