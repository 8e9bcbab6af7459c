// Package description contains objects to describe streams.
package description

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/bluenviron/gosdp/pkg/format"
	"github.com/bluenviron/gosdp/pkg/sdp"
)

func getAttribute(attributes []sdp.Attribute, key string) (sdp.Attribute, bool) {
	for _, attr := range attributes {
		if strings.EqualFold(attr.Name(), key) {
			return attr, true
		}
	}
	return nil, false
}

func isAlphaNumeric(v string) bool {
	for _, r := range v {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

// MediaType is the type of a media stream.
type MediaType string

// media types.
const (
	MediaTypeVideo       MediaType = "video"
	MediaTypeAudio       MediaType = "audio"
	MediaTypeApplication MediaType = "application"
)

// Direction is the direction of a media stream.
type Direction string

// directions.
const (
	DirectionSendRecv Direction = "sendrecv"
	DirectionSendOnly Direction = "sendonly"
	DirectionRecvOnly Direction = "recvonly"
	DirectionInactive Direction = "inactive"
)

func getDirection(attributes []sdp.Attribute) (Direction, bool) {
	for _, attr := range attributes {
		switch d := Direction(strings.ToLower(attr.Name())); d {
		case DirectionSendRecv, DirectionSendOnly, DirectionRecvOnly, DirectionInactive:
			return d, true
		}
	}
	return "", false
}

// Media is a media stream.
// It contains one or more formats.
type Media struct {
	// Media type.
	Type MediaType

	// Media ID (optional).
	ID string

	// Direction. Inherited from the session when not set.
	Direction Direction

	// Control attribute.
	Control string

	// Formats contained into the media.
	Formats []format.Format
}

// FromSDP decodes the media from a SDP media section.
func (m *Media) FromSDP(md sdp.Media, sessionDirection Direction) error {
	m.Type = MediaType(md.Type)

	m.ID = ""
	if attr, ok := getAttribute(md.Attributes, "mid"); ok {
		m.ID = attr.Value()
		if m.ID != "" && !isAlphaNumeric(m.ID) {
			return fmt.Errorf("invalid mid: %v", m.ID)
		}
	}

	m.Direction = sessionDirection
	if d, ok := getDirection(md.Attributes); ok {
		m.Direction = d
	}

	m.Control = ""
	if attr, ok := getAttribute(md.Attributes, "control"); ok {
		m.Control = attr.Value()
	}

	m.Formats = format.FromMedia(md)
	if m.Formats == nil && strings.Contains(md.Protocol, "RTP") {
		return fmt.Errorf("no formats found")
	}

	return nil
}

// ToSDP encodes the media into a SDP media section.
func (m Media) ToSDP() sdp.Media {
	md := sdp.Media{
		Type:      string(m.Type),
		PortCount: 1,
		Protocol:  "RTP/AVP",
	}

	if m.ID != "" {
		md.Attributes = append(md.Attributes, sdp.Mid{ID: m.ID})
	}

	if m.Direction != "" && m.Direction != DirectionSendRecv {
		md.Attributes = append(md.Attributes, sdp.Generic{Key: string(m.Direction)})
	}

	md.Attributes = append(md.Attributes, sdp.Generic{Key: "control", RawValue: m.Control})

	for _, forma := range m.Formats {
		md.Formats = append(md.Formats, strconv.FormatUint(uint64(forma.PayloadType), 10))

		if forma.Codec != "" {
			rtpmap := sdp.Rtpmap{
				PayloadType:  forma.PayloadType,
				EncodingName: strings.ToUpper(forma.Codec),
				ClockRate:    forma.ClockRate,
			}
			if forma.Channels > 1 {
				rtpmap.EncodingParams = strconv.Itoa(forma.Channels)
			}
			md.Attributes = append(md.Attributes, rtpmap)
		}

		if len(forma.FMTP) != 0 {
			keys := forma.FMTPKeys()
			tmp := make([]string, len(keys))
			for i, key := range keys {
				tmp[i] = key + "=" + forma.FMTP[key]
			}

			md.Attributes = append(md.Attributes, sdp.Fmtp{
				PayloadType: forma.PayloadType,
				Params:      strings.Join(tmp, "; "),
			})
		}
	}

	return md
}

// URL returns the absolute URL of the media.
func (m Media) URL(contentBase *url.URL) (*url.URL, error) {
	if contentBase == nil {
		return nil, fmt.Errorf("content base not provided")
	}

	// no control attribute, use base URL
	if m.Control == "" || m.Control == "*" {
		return contentBase, nil
	}

	// control attribute contains an absolute path
	if strings.HasPrefix(m.Control, "rtsp://") ||
		strings.HasPrefix(m.Control, "rtsps://") {
		ur, err := url.Parse(m.Control)
		if err != nil {
			return nil, err
		}

		// copy host and credentials
		ur.Host = contentBase.Host
		ur.User = contentBase.User
		return ur, nil
	}

	// control attribute contains a relative control attribute
	// insert the control attribute at the end of the URL
	strURL := contentBase.String()
	if m.Control[0] != '?' && !strings.HasSuffix(strURL, "/") {
		strURL += "/"
	}

	return url.Parse(strURL + m.Control)
}

// FindFormat finds the first format with the given codec.
func (m Media) FindFormat(codec string) (format.Format, bool) {
	for _, forma := range m.Formats {
		if strings.EqualFold(forma.Codec, codec) {
			return forma, true
		}
	}
	return format.Format{}, false
}
