// Package tga decodes uncompressed true-color TGA images.
//
// Only the subset written by common texture tools is supported: image type 2,
// no color map, no image ID, 24 or 32 bits per pixel.
package tga

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

var (
	ErrFormat = errors.New("tga: unsupported image format")
	ErrRLE    = errors.New("tga: RLE compressed images are not supported")
)

const headerSize = 18

// Uncompressed true-color files start with these bytes: no ID, no color map, type 2.
const magic = "\x00\x00\x02\x00\x00\x00\x00\x00\x00\x00\x00\x00"

const rleMagic = "\x00\x00\x0a\x00\x00\x00\x00\x00\x00\x00\x00\x00"

func init() {
	image.RegisterFormat("tga", magic, Decode, DecodeConfig)
	// registered so image.Decode reports ErrRLE instead of an unknown format
	image.RegisterFormat("tga", rleMagic, Decode, DecodeConfig)
}

type header struct {
	Width, Height int
	BPP           int
	TopDown       bool
}

func readHeader(r io.Reader) (header, error) {
	var buf [headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return header{}, fmt.Errorf("tga: cannot read header: %w", err)
	}
	switch string(buf[:12]) {
	case magic:
	case rleMagic:
		return header{}, ErrRLE
	default:
		return header{}, ErrFormat
	}
	h := header{
		Width:   int(binary.LittleEndian.Uint16(buf[12:14])),
		Height:  int(binary.LittleEndian.Uint16(buf[14:16])),
		BPP:     int(buf[16]),
		TopDown: buf[17]&0x20 != 0,
	}
	if h.Width == 0 || h.Height == 0 {
		return header{}, fmt.Errorf("tga: invalid size %dx%d", h.Width, h.Height)
	}
	if h.BPP != 24 && h.BPP != 32 {
		return header{}, fmt.Errorf("tga: unsupported depth: %d bpp", h.BPP)
	}
	return h, nil
}

func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      h.Width,
		Height:     h.Height,
	}, nil
}

// Decode reads a TGA image. The result is always an *image.NRGBA with the first row at the top.
func Decode(r io.Reader) (image.Image, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	bpp := h.BPP / 8
	// The header alone may claim gigabytes; the buffer grows only as data arrives.
	size := int64(h.Width) * int64(h.Height) * int64(bpp)
	data, err := io.ReadAll(io.LimitReader(r, size))
	if err != nil {
		return nil, fmt.Errorf("tga: cannot read image data: %w", err)
	}
	if int64(len(data)) != size {
		return nil, fmt.Errorf("tga: cannot read image data: %w", io.ErrUnexpectedEOF)
	}
	img := image.NewNRGBA(image.Rect(0, 0, h.Width, h.Height))
	for y := range h.Height {
		row := data[y*h.Width*bpp : (y+1)*h.Width*bpp]
		dy := h.Height - 1 - y
		if h.TopDown {
			dy = y
		}
		dst := img.Pix[dy*img.Stride : dy*img.Stride+h.Width*4]
		for x := range h.Width {
			src := row[x*bpp : x*bpp+bpp]
			d := dst[4*x : 4*x+4]
			d[0], d[1], d[2], d[3] = src[2], src[1], src[0], 0xff
			if bpp == 4 {
				d[3] = src[3]
			}
		}
	}
	return img, nil
}
