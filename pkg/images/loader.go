// Package images loads bitmaps for image widgets: the standard formats,
// BMP and WebP, and the raw pixel-dump format.
package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Cache caches decoded images by source.
type Cache struct {
	// Dir resolves relative paths. Empty means the working directory.
	Dir string

	mu    sync.RWMutex
	cache map[string]image.Image
}

func NewCache(dir string) *Cache {
	return &Cache{Dir: dir, cache: make(map[string]image.Image)}
}

// Load returns the image at src, a file path or a data: URI, decoding it
// on first use.
func (c *Cache) Load(src string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.cache[src]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	var (
		img image.Image
		err error
	)
	if IsDataURI(src) {
		img, err = LoadImageFromDataURI(src)
	} else {
		img, err = c.loadFile(src)
	}
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[src] = img
	c.mu.Unlock()
	return img, nil
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func (c *Cache) loadFile(path string) (image.Image, error) {
	if !filepath.IsAbs(path) && c.Dir != "" {
		path = filepath.Join(c.Dir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// IsDataURI reports whether src is a data: URI.
func IsDataURI(src string) bool {
	return strings.HasPrefix(src, "data:")
}

// LoadImageFromDataURI decodes an image embedded in a data: URI, base64
// or percent-encoded.
func LoadImageFromDataURI(uri string) (image.Image, error) {
	if !IsDataURI(uri) {
		return nil, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("data URI without payload")
	}

	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("data URI: %w", err)
		}
		data = b
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("data URI: %w", err)
		}
		data = []byte(s)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("data URI: %w", err)
	}
	return img, nil
}
