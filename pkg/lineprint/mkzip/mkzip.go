// Package mkzip builds zip files in memory, for tests.
package mkzip

import (
	"archive/zip"
	"bytes"
)

type Entry struct {
	Path string
	Body string
}

// Do returns the bytes of a zip archive holding the given entries.
func Do(files []Entry) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	for _, file := range files {
		f, err := w.Create(file.Path)
		if err != nil {
			return nil, err
		}
		if _, err := f.Write([]byte(file.Body)); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func MustDo(files []Entry) []byte {
	b, err := Do(files)
	if err != nil {
		panic(err)
	}
	return b
}
