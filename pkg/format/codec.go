package format

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/bluenviron/mediacommon/v2/pkg/codecs/h264"
	"github.com/bluenviron/mediacommon/v2/pkg/codecs/mpeg4audio"
)

var h264Profiles = map[uint8]string{
	66:  "Baseline",
	77:  "Main",
	88:  "Extended",
	100: "High",
	110: "High 10",
	122: "High 4:2:2",
	244: "High 4:4:4",
}

// decodeH264 fills profile and resolution from the SPS in sprop-parameter-sets.
func (f *Format) decodeH264() {
	val, ok := f.FMTP["sprop-parameter-sets"]
	if !ok {
		return
	}

	tmp := strings.Split(val, ",")

	sps, err := base64.StdEncoding.DecodeString(tmp[0])
	if err != nil {
		return
	}

	// some cameras ship parameters with Annex-B prefix
	sps = bytes.TrimPrefix(sps, []byte{0, 0, 0, 1})

	var spsp h264.SPS
	err = spsp.Unmarshal(sps)
	if err != nil {
		return
	}

	if name, ok := h264Profiles[spsp.ProfileIdc]; ok {
		f.Profile = name
	} else {
		f.Profile = "profile " + strconv.FormatUint(uint64(spsp.ProfileIdc), 10)
	}

	f.Width = spsp.Width()
	f.Height = spsp.Height()
}

// decodeMPEG4Audio fills sample rate and channels from the AudioSpecificConfig in config.
func (f *Format) decodeMPEG4Audio() {
	val, ok := f.FMTP["config"]
	if !ok {
		return
	}

	enc, err := hex.DecodeString(val)
	if err != nil {
		return
	}

	var conf mpeg4audio.Config
	err = conf.Unmarshal(enc)
	if err != nil {
		return
	}

	f.SampleRate = conf.SampleRate
	if conf.ExtensionSampleRate != 0 {
		f.SampleRate = conf.ExtensionSampleRate
	}

	f.Channels = conf.ChannelCount
	if conf.ExtensionType == mpeg4audio.ObjectTypePS {
		f.Channels = 2
	}

	if conf.Type == mpeg4audio.ObjectTypeAACLC {
		f.Profile = "AAC-LC"
	} else {
		f.Profile = "object type " + strconv.FormatInt(int64(conf.Type), 10)
	}
}

func (f *Format) decodeCodecParams() {
	switch f.Codec {
	case "h264":
		f.decodeH264()

	case "mpeg4-generic":
		f.decodeMPEG4Audio()
	}
}

// Details returns what has been decoded from the codec parameters,
// or an empty string.
func (f Format) Details() string {
	switch {
	case f.Width != 0 && f.Height != 0:
		return f.Profile + " " + strconv.Itoa(f.Width) + "x" + strconv.Itoa(f.Height)

	case f.SampleRate != 0:
		return f.Profile + " " + strconv.Itoa(f.SampleRate) + "Hz " + strconv.Itoa(f.Channels) + "ch"
	}

	return ""
}
