package filestore

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/trtodo/internal/models"
)

// codec turns a snapshot into document bytes and back
type codec interface {
	Encode(w io.Writer, snap *models.Snapshot) error
	Decode(r io.Reader, snap *models.Snapshot) error
	Format() string
}

// codecFor picks the document format from the file extension
func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec{}
	default:
		return jsonCodec{}
	}
}

type jsonCodec struct{}

func (jsonCodec) Format() string { return "json" }

func (jsonCodec) Encode(w io.Writer, snap *models.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func (jsonCodec) Decode(r io.Reader, snap *models.Snapshot) error {
	return json.NewDecoder(r).Decode(snap)
}

type yamlCodec struct{}

func (yamlCodec) Format() string { return "yaml" }

func (yamlCodec) Encode(w io.Writer, snap *models.Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return err
	}
	return enc.Close()
}

func (yamlCodec) Decode(r io.Reader, snap *models.Snapshot) error {
	return yaml.NewDecoder(r).Decode(snap)
}

func encode(c codec, snap *models.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf, snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
