package sdp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var casesAttribute = []struct {
	name string
	raw  string
	enc  string
	attr Attribute
}{
	{
		"flag",
		"sendonly",
		"sendonly",
		Generic{Key: "sendonly"},
	},
	{
		"generic",
		"control:trackID=1",
		"control:trackID=1",
		Generic{Key: "control", RawValue: "trackID=1"},
	},
	{
		"generic empty value",
		"tool:",
		"tool",
		Generic{Key: "tool"},
	},
	{
		"rtpmap",
		"rtpmap:96 H264/90000",
		"rtpmap:96 H264/90000",
		Rtpmap{PayloadType: 96, EncodingName: "H264", ClockRate: 90000},
	},
	{
		"rtpmap separated by tab",
		"rtpmap:96\tH264/90000",
		"rtpmap:96 H264/90000",
		Rtpmap{PayloadType: 96, EncodingName: "H264", ClockRate: 90000},
	},
	{
		"rtpmap with parameters",
		"rtpmap:111 opus/48000/2",
		"rtpmap:111 opus/48000/2",
		Rtpmap{PayloadType: 111, EncodingName: "opus", ClockRate: 48000, EncodingParams: "2"},
	},
	{
		"rtpmap upper case name",
		"RTPMAP:0 PCMU/8000",
		"rtpmap:0 PCMU/8000",
		Rtpmap{PayloadType: 0, EncodingName: "PCMU", ClockRate: 8000},
	},
	{
		"rtpmap non numeric payload type",
		"rtpmap:bad",
		"rtpmap:bad",
		Generic{Key: "rtpmap", RawValue: "bad"},
	},
	{
		"rtpmap invalid clock rate",
		"rtpmap:96 H264/abc",
		"rtpmap:96 H264/abc",
		Generic{Key: "rtpmap", RawValue: "96 H264/abc"},
	},
	{
		"rtpmap payload type out of range",
		"rtpmap:300 H264/90000",
		"rtpmap:300 H264/90000",
		Generic{Key: "rtpmap", RawValue: "300 H264/90000"},
	},
	{
		"fmtp",
		"fmtp:96 packetization-mode=1; profile-level-id=42e01f",
		"fmtp:96 packetization-mode=1; profile-level-id=42e01f",
		Fmtp{PayloadType: 96, Params: "packetization-mode=1; profile-level-id=42e01f"},
	},
	{
		"fmtp separated by tab",
		"fmtp:97\tapt=96",
		"fmtp:97 apt=96",
		Fmtp{PayloadType: 97, Params: "apt=96"},
	},
	{
		"fmtp without parameters",
		"fmtp:96",
		"fmtp:96",
		Fmtp{PayloadType: 96},
	},
	{
		"fmtp invalid",
		"fmtp:x a=b",
		"fmtp:x a=b",
		Generic{Key: "fmtp", RawValue: "x a=b"},
	},
	{
		"mid",
		"mid:audio",
		"mid:audio",
		Mid{ID: "audio"},
	},
	{
		"msid",
		"msid:stream track",
		"msid:stream track",
		Msid{StreamID: "stream", TrackID: "track"},
	},
	{
		"msid stream only",
		"msid:stream",
		"msid:stream",
		Msid{StreamID: "stream"},
	},
	{
		"msid too many tokens",
		"msid:a b c",
		"msid:a b c",
		Generic{Key: "msid", RawValue: "a b c"},
	},
	{
		"ssrc",
		"ssrc:1234 cname:user@example.com",
		"ssrc:1234 cname:user@example.com",
		Ssrc{SSRC: 1234, AttributeName: "cname", AttributeValue: "user@example.com"},
	},
	{
		"ssrc separated by tab",
		"ssrc:1234\t \tcname:user@example.com",
		"ssrc:1234 cname:user@example.com",
		Ssrc{SSRC: 1234, AttributeName: "cname", AttributeValue: "user@example.com"},
	},
	{
		"ssrc attribute without value",
		"ssrc:1234 label",
		"ssrc:1234 label",
		Ssrc{SSRC: 1234, AttributeName: "label"},
	},
	{
		"ssrc id only",
		"ssrc:1234",
		"ssrc:1234",
		Ssrc{SSRC: 1234},
	},
	{
		"ssrc invalid",
		"ssrc:abc cname:x",
		"ssrc:abc cname:x",
		Generic{Key: "ssrc", RawValue: "abc cname:x"},
	},
	{
		"ice-ufrag",
		"ice-ufrag:F7gI",
		"ice-ufrag:F7gI",
		IceUfrag{Ufrag: "F7gI"},
	},
	{
		"ice-pwd",
		"ice-pwd:x9cml/YzichV2+XlhiMu8g",
		"ice-pwd:x9cml/YzichV2+XlhiMu8g",
		IcePwd{Password: "x9cml/YzichV2+XlhiMu8g"},
	},
	{
		"fingerprint",
		"fingerprint:sha-1 4A:AD:B9:B1:3F:82:18:3B:54:02:12:DF:3E:5D:49:6B:19:E5:7C:AB",
		"fingerprint:sha-1 4A:AD:B9:B1:3F:82:18:3B:54:02:12:DF:3E:5D:49:6B:19:E5:7C:AB",
		Fingerprint{
			HashFunction: "sha-1",
			Fingerprint:  "4A:AD:B9:B1:3F:82:18:3B:54:02:12:DF:3E:5D:49:6B:19:E5:7C:AB",
		},
	},
	{
		"fingerprint without value",
		"fingerprint:sha-1",
		"fingerprint:sha-1",
		Generic{Key: "fingerprint", RawValue: "sha-1"},
	},
	{
		"setup",
		"setup:actpass",
		"setup:actpass",
		Setup{Role: "actpass"},
	},
	{
		"setup flag",
		"setup",
		"setup",
		Setup{},
	},
}

func TestParseAttribute(t *testing.T) {
	for _, c := range casesAttribute {
		t.Run(c.name, func(t *testing.T) {
			attr := ParseAttribute(c.raw)
			require.Equal(t, c.attr, attr)
			require.Equal(t, c.enc, marshalAttribute(attr))
		})
	}
}

func TestAttributeFallbackReason(t *testing.T) {
	attr, err := unmarshalAttribute("rtpmap:96")
	require.EqualError(t, err, "invalid rtpmap attribute: missing tokens")
	require.Equal(t, Generic{Key: "rtpmap", RawValue: "96"}, attr)

	attr, err = unmarshalAttribute("mid:0")
	require.NoError(t, err)
	require.Equal(t, Mid{ID: "0"}, attr)
}

func TestAttributeTypeSwitch(t *testing.T) {
	var payloadTypes []uint8

	for _, attr := range []Attribute{
		Rtpmap{PayloadType: 96, EncodingName: "VP8", ClockRate: 90000},
		Fmtp{PayloadType: 97, Params: "apt=96"},
		Generic{Key: "rtcp-mux"},
	} {
		switch attr := attr.(type) {
		case Rtpmap:
			payloadTypes = append(payloadTypes, attr.PayloadType)
		case Fmtp:
			payloadTypes = append(payloadTypes, attr.PayloadType)
		}
	}

	require.Equal(t, []uint8{96, 97}, payloadTypes)
}
