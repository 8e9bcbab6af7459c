// Package format contains a typed view of the RTP formats of a media section.
package format

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bluenviron/gosdp/pkg/sdp"
)

// static payload types.
// https://datatracker.ietf.org/doc/html/rfc3551#section-6
var staticPayloadTypes = map[uint8]struct {
	codec     string
	clockRate int
	channels  int
}{
	0:  {"pcmu", 8000, 1},
	3:  {"gsm", 8000, 1},
	4:  {"g723", 8000, 1},
	5:  {"dvi4", 8000, 1},
	6:  {"dvi4", 16000, 1},
	7:  {"lpc", 8000, 1},
	8:  {"pcma", 8000, 1},
	9:  {"g722", 8000, 1},
	10: {"l16", 44100, 2},
	11: {"l16", 44100, 1},
	12: {"qcelp", 8000, 1},
	13: {"cn", 8000, 1},
	14: {"mpa", 90000, 0},
	15: {"g728", 8000, 1},
	16: {"dvi4", 11025, 1},
	17: {"dvi4", 22050, 1},
	18: {"g729", 8000, 1},
	25: {"celb", 90000, 0},
	26: {"jpeg", 90000, 0},
	28: {"nv", 90000, 0},
	31: {"h261", 90000, 0},
	32: {"mpv", 90000, 0},
	33: {"mp2t", 90000, 0},
	34: {"h263", 90000, 0},
}

// Format is a RTP format of a media section.
type Format struct {
	PayloadType uint8

	// lower-case encoding name. Empty when unknown.
	Codec string

	// clock rate. Zero when unknown.
	ClockRate int

	// channel count of audio formats. Zero when not specified.
	Channels int

	// format-specific parameters, with lower-case keys.
	FMTP map[string]string

	// decoded from the codec parameters, when present and valid.
	Profile    string
	Width      int
	Height     int
	SampleRate int
}

// String returns a description of the format.
func (f Format) String() string {
	if f.Codec == "" {
		return strconv.FormatUint(uint64(f.PayloadType), 10)
	}

	ret := f.Codec + "/" + strconv.Itoa(f.ClockRate)
	if f.Channels > 1 {
		ret += "/" + strconv.Itoa(f.Channels)
	}
	return ret
}

// FMTPKeys returns the FMTP keys in alphabetical order.
func (f Format) FMTPKeys() []string {
	keys := make([]string, 0, len(f.FMTP))
	for key := range f.FMTP {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func decodeFMTP(enc string) map[string]string {
	if enc == "" {
		return nil
	}

	ret := make(map[string]string)

	for _, kv := range strings.Split(enc, ";") {
		kv = strings.Trim(kv, " ")

		if len(kv) == 0 {
			continue
		}

		tmp := strings.SplitN(kv, "=", 2)
		if len(tmp) != 2 {
			continue
		}

		ret[strings.ToLower(tmp[0])] = tmp[1]
	}

	if len(ret) == 0 {
		return nil
	}

	return ret
}

func findRtpmap(attributes []sdp.Attribute, payloadType uint8) (sdp.Rtpmap, bool) {
	for _, attr := range attributes {
		if rtpmap, ok := attr.(sdp.Rtpmap); ok && rtpmap.PayloadType == payloadType {
			return rtpmap, true
		}
	}
	return sdp.Rtpmap{}, false
}

func findFmtp(attributes []sdp.Attribute, payloadType uint8) (sdp.Fmtp, bool) {
	for _, attr := range attributes {
		if fmtp, ok := attr.(sdp.Fmtp); ok && fmtp.PayloadType == payloadType {
			return fmtp, true
		}
	}
	return sdp.Fmtp{}, false
}

// FromMedia returns the RTP formats of a media section, in the order of the m= line.
// Formats that are not payload types, like the ones of data channels, are skipped.
func FromMedia(m sdp.Media) []Format {
	var ret []Format

	for _, payloadTypeStr := range m.Formats {
		tmp, err := strconv.ParseUint(payloadTypeStr, 10, 8)
		if err != nil {
			continue
		}
		payloadType := uint8(tmp)

		f := Format{PayloadType: payloadType}

		if rtpmap, ok := findRtpmap(m.Attributes, payloadType); ok {
			f.Codec = strings.ToLower(rtpmap.EncodingName)
			f.ClockRate = rtpmap.ClockRate

			if rtpmap.EncodingParams != "" {
				if ch, err := strconv.ParseUint(rtpmap.EncodingParams, 10, 31); err == nil {
					f.Channels = int(ch)
				}
			} else if m.Type == "audio" {
				f.Channels = 1
			}
		} else if static, ok := staticPayloadTypes[payloadType]; ok {
			f.Codec = static.codec
			f.ClockRate = static.clockRate
			f.Channels = static.channels
		}

		if fmtp, ok := findFmtp(m.Attributes, payloadType); ok {
			f.FMTP = decodeFMTP(fmtp.Params)
		}

		f.decodeCodecParams()

		ret = append(ret, f)
	}

	return ret
}
