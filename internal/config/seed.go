package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"formidamail/internal/mockdata"
	"formidamail/internal/model"
	"formidamail/internal/util"
)

// SeedDocument is the on-disk form of an initial inbox.
type SeedDocument struct {
	Emails []model.EmailRecord `yaml:"emails"`
}

// LoadSeed reads the initial inbox from path. Fields an entry leaves out
// are generated; addresses are normalized. An empty path yields the
// built-in seed.
func LoadSeed(path string, gen *mockdata.Generator) ([]model.EmailRecord, error) {
	if path == "" {
		return model.Seed(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return DecodeSeed(f, gen)
}

// DecodeSeed parses a seed document from r.
func DecodeSeed(r io.Reader, gen *mockdata.Generator) ([]model.EmailRecord, error) {
	var doc SeedDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return []model.EmailRecord{}, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	out := make([]model.EmailRecord, 0, len(doc.Emails))
	for i, rec := range doc.Emails {
		if rec.Email != "" {
			addr := util.NormalizeSender(rec.Email)
			if addr == "" {
				return nil, fmt.Errorf("seed email %d: invalid address %q", i, rec.Email)
			}
			rec.Email = addr
		}
		out = append(out, gen.Generate(rec))
	}
	return out, nil
}

// EncodeSeed writes records as a seed document.
func EncodeSeed(w io.Writer, records []model.EmailRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(SeedDocument{Emails: records}); err != nil {
		return fmt.Errorf("encode seed document: %w", err)
	}
	return enc.Close()
}
