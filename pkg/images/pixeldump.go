package images

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
)

// The pixel-dump format is a 4 byte magic, the width and height as
// big-endian uint32, then width*height RGBA pixels row by row, not
// premultiplied.
const pixelDumpMagic = "BXPD"

// maxPixelDumpSide bounds each side so a corrupt header cannot request a
// huge allocation.
const maxPixelDumpSide = 1 << 15

var ErrPixelDump = errors.New("invalid pixel dump")

func init() {
	image.RegisterFormat("pxd", pixelDumpMagic, DecodePixelDump, DecodePixelDumpConfig)
}

func readHeader(r io.Reader) (w, h int, err error) {
	var hdr [12]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, 0, fmt.Errorf("%w: header: %v", ErrPixelDump, err)
	}
	if string(hdr[:4]) != pixelDumpMagic {
		return 0, 0, fmt.Errorf("%w: bad magic %q", ErrPixelDump, hdr[:4])
	}
	uw := binary.BigEndian.Uint32(hdr[4:8])
	uh := binary.BigEndian.Uint32(hdr[8:12])
	if uw > maxPixelDumpSide || uh > maxPixelDumpSide {
		return 0, 0, fmt.Errorf("%w: %dx%d is too large", ErrPixelDump, uw, uh)
	}
	return int(uw), int(uh), nil
}

func DecodePixelDumpConfig(r io.Reader) (image.Config, error) {
	w, h, err := readHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: w, Height: h}, nil
}

func DecodePixelDump(r io.Reader) (image.Image, error) {
	w, h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if _, err := io.ReadFull(r, img.Pix); err != nil {
		return nil, fmt.Errorf("%w: pixels: %v", ErrPixelDump, err)
	}
	return img, nil
}

// EncodePixelDump writes img in the pixel-dump format.
func EncodePixelDump(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Dx() > maxPixelDumpSide || b.Dy() > maxPixelDumpSide {
		return fmt.Errorf("%w: %dx%d is too large", ErrPixelDump, b.Dx(), b.Dy())
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	bw := bufio.NewWriter(w)
	var hdr [12]byte
	copy(hdr[:4], pixelDumpMagic)
	binary.BigEndian.PutUint32(hdr[4:8], uint32(b.Dx()))
	binary.BigEndian.PutUint32(hdr[8:12], uint32(b.Dy()))
	if _, err := bw.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := bw.Write(nrgba.Pix); err != nil {
		return err
	}
	return bw.Flush()
}
