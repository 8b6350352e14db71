package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

// Thumbnail decodes data and scales it to fit in a size x size box keeping
// the aspect ratio. The result is encoded in the format implied by name's
// extension. Animated GIFs keep only their first frame.
func Thumbnail(data []byte, name string, size uint) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	m := resize.Thumbnail(size, size, img, resize.Lanczos3)

	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(&buf, m, &jpeg.Options{Quality: 85})
	case ".png":
		err = png.Encode(&buf, m)
	case ".gif":
		err = gif.Encode(&buf, m, nil)
	default:
		return nil, fmt.Errorf("unsupported format %q for file: %s", format, name)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
