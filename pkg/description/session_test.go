package description

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluenviron/gosdp/pkg/format"
	"github.com/bluenviron/gosdp/pkg/sdp"
)

var casesSession = []struct {
	name string
	in   string
	out  string
	desc Session
}{
	{
		"one format for each media, absolute",
		"v=0\r\n" +
			"o=- 0 0 IN IP4 10.0.0.131\r\n" +
			"s=Media Presentation\r\n" +
			"i=samsung\r\n" +
			"c=IN IP4 0.0.0.0\r\n" +
			"b=AS:2632\r\n" +
			"t=0 0\r\n" +
			"a=control:rtsp://10.0.100.50/profile5/media.smp\r\n" +
			"a=range:npt=now-\r\n" +
			"m=video 42504 RTP/AVP 97\r\n" +
			"b=AS:2560\r\n" +
			"a=rtpmap:97 H264/90000\r\n" +
			"a=control:rtsp://10.0.100.50/profile5/media.smp/trackID=v\r\n" +
			"a=cliprect:0,0,1080,1920\r\n" +
			"a=framerate:30.0\r\n" +
			"a=fmtp:97 packetization-mode=1;profile-level-id=640028\r\n" +
			"m=audio 42506 RTP/AVP 0\r\n" +
			"b=AS:64\r\n" +
			"a=rtpmap:0 PCMU/8000\r\n" +
			"a=control:rtsp://10.0.100.50/profile5/media.smp/trackID=a\r\n" +
			"a=recvonly\r\n" +
			"m=application 42508 RTP/AVP 107\r\n" +
			"b=AS:8\r\n",
		"v=0\r\n" +
			"o=- 0 0 IN IP4 127.0.0.1\r\n" +
			"s=Media Presentation\r\n" +
			"c=IN IP4 0.0.0.0\r\n" +
			"t=0 0\r\n" +
			"m=video 0 RTP/AVP 97\r\n" +
			"a=control:rtsp://10.0.100.50/profile5/media.smp/trackID=v\r\n" +
			"a=rtpmap:97 H264/90000\r\n" +
			"a=fmtp:97 packetization-mode=1; profile-level-id=640028\r\n" +
			"m=audio 0 RTP/AVP 0\r\n" +
			"a=recvonly\r\n" +
			"a=control:rtsp://10.0.100.50/profile5/media.smp/trackID=a\r\n" +
			"a=rtpmap:0 PCMU/8000\r\n" +
			"m=application 0 RTP/AVP 107\r\n" +
			"a=control\r\n",
		Session{
			Title: "Media Presentation",
			Medias: []*Media{
				{
					Type:      MediaTypeVideo,
					Direction: DirectionSendRecv,
					Control:   "rtsp://10.0.100.50/profile5/media.smp/trackID=v",
					Formats: []format.Format{{
						PayloadType: 97,
						Codec:       "h264",
						ClockRate:   90000,
						FMTP: map[string]string{
							"packetization-mode": "1",
							"profile-level-id":   "640028",
						},
					}},
				},
				{
					Type:      MediaTypeAudio,
					Direction: DirectionRecvOnly,
					Control:   "rtsp://10.0.100.50/profile5/media.smp/trackID=a",
					Formats: []format.Format{{
						PayloadType: 0,
						Codec:       "pcmu",
						ClockRate:   8000,
						Channels:    1,
					}},
				},
				{
					Type:      MediaTypeApplication,
					Direction: DirectionSendRecv,
					Formats:   []format.Format{{PayloadType: 107}},
				},
			},
		},
	},
	{
		"media ids and session direction",
		"v=0\r\n" +
			"o=- 1 1 IN IP4 127.0.0.1\r\n" +
			"s=-\r\n" +
			"t=0 0\r\n" +
			"a=sendonly\r\n" +
			"m=audio 9 RTP/AVP 111\r\n" +
			"a=mid:audio\r\n" +
			"a=rtpmap:111 opus/48000/2\r\n" +
			"m=video 9 RTP/AVP 96\r\n" +
			"a=mid:video\r\n" +
			"a=inactive\r\n" +
			"a=rtpmap:96 VP8/90000\r\n",
		"v=0\r\n" +
			"o=- 0 0 IN IP4 127.0.0.1\r\n" +
			"s=-\r\n" +
			"c=IN IP4 0.0.0.0\r\n" +
			"t=0 0\r\n" +
			"m=audio 0 RTP/AVP 111\r\n" +
			"a=mid:audio\r\n" +
			"a=sendonly\r\n" +
			"a=control\r\n" +
			"a=rtpmap:111 OPUS/48000/2\r\n" +
			"m=video 0 RTP/AVP 96\r\n" +
			"a=mid:video\r\n" +
			"a=inactive\r\n" +
			"a=control\r\n" +
			"a=rtpmap:96 VP8/90000\r\n",
		Session{
			Medias: []*Media{
				{
					Type:      MediaTypeAudio,
					ID:        "audio",
					Direction: DirectionSendOnly,
					Formats: []format.Format{{
						PayloadType: 111,
						Codec:       "opus",
						ClockRate:   48000,
						Channels:    2,
					}},
				},
				{
					Type:      MediaTypeVideo,
					ID:        "video",
					Direction: DirectionInactive,
					Formats: []format.Format{{
						PayloadType: 96,
						Codec:       "vp8",
						ClockRate:   90000,
					}},
				},
			},
		},
	},
}

func TestSessionFromSDP(t *testing.T) {
	for _, ca := range casesSession {
		t.Run(ca.name, func(t *testing.T) {
			sd, err := sdp.Parse(ca.in)
			require.NoError(t, err)

			var desc Session
			err = desc.FromSDP(sd)
			require.NoError(t, err)
			require.Equal(t, ca.desc, desc)
		})
	}
}

func TestSessionToSDP(t *testing.T) {
	for _, ca := range casesSession {
		t.Run(ca.name, func(t *testing.T) {
			require.Equal(t, ca.out, ca.desc.ToSDP(false).String())
		})
	}
}

func TestSessionFromSDPErrors(t *testing.T) {
	for _, ca := range []struct {
		name  string
		media string
		err   string
	}{
		{
			"invalid mid",
			"m=audio 0 RTP/AVP 0\r\n" +
				"a=mid:a-b\r\n",
			"media 1 is invalid: invalid mid: a-b",
		},
		{
			"no formats",
			"m=video 0 RTP/AVP abc\r\n",
			"media 1 is invalid: no formats found",
		},
		{
			"duplicate media ids",
			"m=audio 0 RTP/AVP 0\r\n" +
				"a=mid:1\r\n" +
				"m=audio 0 RTP/AVP 8\r\n" +
				"a=mid:1\r\n",
			"duplicate media IDs",
		},
		{
			"partial media ids",
			"m=audio 0 RTP/AVP 0\r\n" +
				"a=mid:1\r\n" +
				"m=audio 0 RTP/AVP 8\r\n",
			"media IDs sent partially",
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			sd, err := sdp.Parse("v=0\r\n" +
				"o=- 1 1 IN IP4 127.0.0.1\r\n" +
				"s=-\r\n" +
				"t=0 0\r\n" +
				ca.media)
			require.NoError(t, err)

			var desc Session
			err = desc.FromSDP(sd)
			require.EqualError(t, err, ca.err)
		})
	}
}

func TestSessionFindFormat(t *testing.T) {
	desc := casesSession[0].desc

	media := desc.FindFormat("PCMU")
	require.NotNil(t, media)
	require.Equal(t, MediaTypeAudio, media.Type)

	require.Nil(t, desc.FindFormat("opus"))
}
