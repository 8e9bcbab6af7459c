package description

import (
	"fmt"

	"github.com/bluenviron/gosdp/pkg/sdp"
)

func atLeastOneHasMID(medias []*Media) bool {
	for _, media := range medias {
		if media.ID != "" {
			return true
		}
	}
	return false
}

func atLeastOneDoesntHaveMID(medias []*Media) bool {
	for _, media := range medias {
		if media.ID == "" {
			return true
		}
	}
	return false
}

func hasMediaWithID(medias []*Media, id string) bool {
	for _, media := range medias {
		if media.ID == id {
			return true
		}
	}
	return false
}

// Session is the description of a stream.
type Session struct {
	// title of the stream (optional).
	Title string

	// available media streams.
	Medias []*Media
}

// FindFormat finds the first format with the given codec among all the medias of the stream.
func (d *Session) FindFormat(codec string) *Media {
	for _, media := range d.Medias {
		if _, ok := media.FindFormat(codec); ok {
			return media
		}
	}
	return nil
}

// FromSDP decodes the description from a SDP session.
func (d *Session) FromSDP(ssd *sdp.Session) error {
	d.Title = ssd.SessionName
	if d.Title == "-" {
		d.Title = ""
	}

	sessionDirection := DirectionSendRecv
	if dir, ok := getDirection(ssd.Attributes); ok {
		sessionDirection = dir
	}

	d.Medias = make([]*Media, len(ssd.Media))

	for i, md := range ssd.Media {
		var m Media
		err := m.FromSDP(md, sessionDirection)
		if err != nil {
			return fmt.Errorf("media %d is invalid: %w", i+1, err)
		}

		if m.ID != "" && hasMediaWithID(d.Medias[:i], m.ID) {
			return fmt.Errorf("duplicate media IDs")
		}

		d.Medias[i] = &m
	}

	if atLeastOneHasMID(d.Medias) && atLeastOneDoesntHaveMID(d.Medias) {
		return fmt.Errorf("media IDs sent partially")
	}

	return nil
}

// ToSDP encodes the description into a SDP session.
func (d Session) ToSDP(multicast bool) *sdp.Session {
	sessionName := d.Title
	if sessionName == "" {
		sessionName = "-"
	}

	address := "0.0.0.0"
	if multicast {
		address = "224.1.0.0"
	}

	s := &sdp.Session{
		Origin: sdp.Origin{
			Username:       "-",
			NetworkType:    "IN",
			AddressType:    "IP4",
			UnicastAddress: "127.0.0.1",
		},
		SessionName: sessionName,
		Connection: &sdp.Connection{
			NetworkType: "IN",
			AddressType: "IP4",
			Address:     address,
		},
		Media: make([]sdp.Media, len(d.Medias)),
	}

	for i, media := range d.Medias {
		s.Media[i] = media.ToSDP()
	}

	return s
}
