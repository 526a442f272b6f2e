package icons

import (
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"callstrip/internal/calltype"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
)

//go:embed assets/*.png
var assetsFS embed.FS

const (
	assetCallArrow = "ic_call_arrow.png"
	assetVoicemail = "ic_call_voicemail_holo_dark.png"
	assetVideocam  = "ic_videocam_24dp.png"
	assetVolteVid  = "volte_video.png"
	assetWifi      = "vowifi_services_wifi_calling.png"
	assetVolteHD   = "volte_hd.png"
)

func loadAsset(name string) (*image.NRGBA, error) {
	f, err := assetsFS.Open("assets/" + name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return toNRGBA(img), nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(out, out.Bounds(), img, b.Min, xdraw.Src)
	return out
}

// NewImageBundle builds the pixel icons from the embedded assets.
//
// A single white arrow pointing down-left is the basis for the incoming,
// outgoing and missed icons; each gets its own copy, rotation and tint.
func NewImageBundle(st Style) (*Bundle, error) {
	if err := st.Palette.Validate(); err != nil {
		return nil, err
	}
	tint := func(c Color) color.NRGBA {
		// Validate already accepted every hex.
		cc, _ := colorful.Hex(c.Pick(st.DarkBackground))
		r, g, b := cc.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}
	}

	arrow, err := loadAsset(assetCallArrow)
	if err != nil {
		return nil, err
	}
	incoming := multiply(arrow, tint(st.Palette.Incoming))
	outgoing := multiply(rotate180(arrow), tint(st.Palette.Outgoing))
	missed := multiply(arrow, tint(st.Palette.Missed))

	voicemail, err := loadAsset(assetVoicemail)
	if err != nil {
		return nil, err
	}

	var video *image.NRGBA
	if st.CarrierVariant {
		if video, err = loadAsset(assetVolteVid); err != nil {
			return nil, err
		}
	} else {
		cam, err := loadAsset(assetVideocam)
		if err != nil {
			return nil, err
		}
		// Same height as the call arrows, aspect ratio kept.
		h := missed.Bounds().Dy()
		w := int(float64(cam.Bounds().Dx()) * (float64(h) / float64(cam.Bounds().Dy())))
		video = scaleNearest(cam, w, h)
	}
	video = multiply(video, tint(st.Palette.Secondary))

	wifi, err := loadAsset(assetWifi)
	if err != nil {
		return nil, err
	}
	ims, err := loadAsset(assetVolteHD)
	if err != nil {
		return nil, err
	}

	return New(st.Margin, st.CarrierVariant,
		NewImageIcon(calltype.CategoryIncoming, incoming),
		NewImageIcon(calltype.CategoryOutgoing, outgoing),
		NewImageIcon(calltype.CategoryMissed, missed),
		NewImageIcon(calltype.CategoryVoicemail, voicemail),
		NewImageIcon(calltype.CategoryVideo, video),
		NewImageIcon(calltype.CategoryWifi, multiply(wifi, tint(st.Palette.Secondary))),
		NewImageIcon(calltype.CategoryIMS, multiply(ims, tint(st.Palette.Secondary))),
	)
}

// multiply returns a copy of src with every channel multiplied by c,
// alpha untouched.
func multiply(src *image.NRGBA, c color.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(src.Bounds())
	for i := 0; i+3 < len(src.Pix); i += 4 {
		out.Pix[i+0] = uint8(uint16(src.Pix[i+0]) * uint16(c.R) / 0xff)
		out.Pix[i+1] = uint8(uint16(src.Pix[i+1]) * uint16(c.G) / 0xff)
		out.Pix[i+2] = uint8(uint16(src.Pix[i+2]) * uint16(c.B) / 0xff)
		out.Pix[i+3] = src.Pix[i+3]
	}
	return out
}

func rotate180(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetNRGBA(w-1-x, h-1-y, src.NRGBAAt(x, y))
		}
	}
	return out
}

func scaleNearest(src *image.NRGBA, w, h int) *image.NRGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return out
}
