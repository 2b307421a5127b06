package tilegen

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// encodePNG returns `in` as PNG bytes. Fully opaque images are written as RGB,
// anything with transparency as RGBA.
func encodePNG(in image.Image) ([]byte, error) {
	buff := new(bytes.Buffer)
	err := png.Encode(buff, in)
	if err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// FileSink writes tiles as PNG files into a single directory
type FileSink struct {
	Dir string
}

// NewFileSink returns a sink writing to `dir` (created on first write)
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// List returns the set files of `label` in our directory.
// A directory that doesn't exist yet holds nothing.
func (s *FileSink) List(label string) ([]string, error) {
	infos, err := ioutil.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	names := []string{}
	for _, info := range infos {
		if info.IsDir() || !IsSetArtifact(label, info.Name()) {
			continue
		}
		names = append(names, info.Name())
	}
	return names, nil
}

// Delete removes a tile file
func (s *FileSink) Delete(name string) error {
	return os.Remove(filepath.Join(s.Dir, name))
}

// Write saves `img` as <dir>/<name> returning the full path
func (s *FileSink) Write(name string, img image.Image) (string, error) {
	err := os.MkdirAll(s.Dir, 0755)
	if err != nil {
		return "", err
	}

	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}

	fpath := filepath.Join(s.Dir, name)
	return fpath, ioutil.WriteFile(fpath, data, 0644)
}

// MemorySink keeps encoded tiles in memory. It's safe for concurrent use.
type MemorySink struct {
	lock  sync.Mutex
	tiles map[string][]byte
}

// NewMemorySink returns an empty memory sink
func NewMemorySink() *MemorySink {
	return &MemorySink{tiles: map[string][]byte{}}
}

// List returns the stored set tiles of `label`
func (s *MemorySink) List(label string) ([]string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	names := []string{}
	for name := range s.tiles {
		if IsSetArtifact(label, name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete forgets a stored tile
func (s *MemorySink) Delete(name string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.tiles[name]; !ok {
		return fmt.Errorf("no tile named %s", name)
	}
	delete(s.tiles, name)
	return nil
}

// Write stores `img` PNG encoded under `name`
func (s *MemorySink) Write(name string, img image.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.tiles[name] = data
	return name, nil
}

// Names returns every stored tile name, sorted
func (s *MemorySink) Names() []string {
	s.lock.Lock()
	defer s.lock.Unlock()

	names := make([]string, 0, len(s.tiles))
	for name := range s.tiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Image decodes a stored tile
func (s *MemorySink) Image(name string) (image.Image, error) {
	s.lock.Lock()
	data, ok := s.tiles[name]
	s.lock.Unlock()

	if !ok {
		return nil, fmt.Errorf("no tile named %s", name)
	}
	return png.Decode(bytes.NewReader(data))
}
