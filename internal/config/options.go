package config

import (
	"fmt"
	"strings"
)

// HWAccel identifies a hardware video decode accelerator.
type HWAccel string

const (
	AccelNone         HWAccel = "none"
	AccelQSV          HWAccel = "qsv"
	AccelNVENC        HWAccel = "nvenc"
	AccelAMF          HWAccel = "amf"
	AccelVAAPI        HWAccel = "vaapi"
	AccelVideoToolbox HWAccel = "videotoolbox"
	AccelV4L2M2M      HWAccel = "v4l2m2m"
	AccelRKMPP        HWAccel = "rkmpp"
)

// ParseHWAccel parses a string into an HWAccel.
func ParseHWAccel(s string) (HWAccel, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return AccelNone, nil
	case "qsv":
		return AccelQSV, nil
	case "nvenc", "cuda":
		return AccelNVENC, nil
	case "amf":
		return AccelAMF, nil
	case "vaapi":
		return AccelVAAPI, nil
	case "videotoolbox":
		return AccelVideoToolbox, nil
	case "v4l2m2m":
		return AccelV4L2M2M, nil
	case "rkmpp":
		return AccelRKMPP, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrInvalidAccelerator, s)
	}
}

// String returns the string representation of the accelerator.
func (a HWAccel) String() string {
	return string(a)
}

// EncodingOptions mirrors the host's hardware acceleration configuration.
// It is supplied externally and treated as read-only by the pipeline.
type EncodingOptions struct {
	HWAccel                HWAccel  `toml:"hw_accel"`
	EnableTonemap          bool     `toml:"enable_tonemap"`
	QSVVPPTonemap          bool     `toml:"qsv_vpp_tonemap"`
	VideoToolboxTonemap    bool     `toml:"videotoolbox_tonemap"`
	HardwareDecodingCodecs []string `toml:"hardware_decoding_codecs"`
}

// DefaultEncodingOptions returns software-only decode options.
func DefaultEncodingOptions() EncodingOptions {
	return EncodingOptions{
		HWAccel: AccelNone,
	}
}

// SupportsCodec reports whether the codec is in the hardware decode list.
// The match is case-insensitive.
func (o *EncodingOptions) SupportsCodec(codec string) bool {
	for _, c := range o.HardwareDecodingCodecs {
		if strings.EqualFold(c, codec) {
			return true
		}
	}
	return false
}
