package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a building config from a local file or an http(s) URL, decodes it and validates it.
func Load(source string) (Building, error) {
	var (
		data []byte
		err  error
		ext  string
	)
	if isURL(source) {
		data, err = fetch(source)
		ext = path.Ext(strings.SplitN(source, "?", 2)[0])
	} else {
		data, err = os.ReadFile(source)
		ext = filepath.Ext(source)
	}
	if err != nil {
		return Building{}, fmt.Errorf("reading config %s: %w", source, err)
	}

	b, err := Decode(data, ext)
	if err != nil {
		return Building{}, fmt.Errorf("decoding config %s: %w", source, err)
	}
	if err := b.Validate(); err != nil {
		return Building{}, err
	}
	slog.Debug("Building config loaded", "source", source, "floors", b.FloorCount, "cars", len(b.Cars))
	return b, nil
}

// Decode parses YAML for .yaml/.yml extensions and JSON otherwise. It does not validate.
func Decode(data []byte, ext string) (Building, error) {
	var b Building
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&b); err != nil {
			return Building{}, err
		}
	default:
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&b); err != nil {
			return Building{}, err
		}
	}
	return b, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func fetch(url string) ([]byte, error) {
	client := http.Client{Timeout: FetchTimeout}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
