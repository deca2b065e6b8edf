package anki_test

import (
	"archive/zip"
	"os"
)

func writeBytes(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func writeZip(path string, entries map[string][]byte) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(out)
	for name, data := range entries {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return out.Close()
}
