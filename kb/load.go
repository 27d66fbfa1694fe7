package kb

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/shufa/errors"
)

// Dataset file formats
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// SupportedVersions is the semver constraint a dataset file's version must satisfy.
const SupportedVersions = "^1"

// FormatFromPath infers a dataset format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.NewUnsupportedFormatError("dataset extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// Load reads and validates a dataset file.
func Load(path string) (*KnowledgeBase, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrNotFound, "dataset %s", path),
				"omit --dataset to use the built-in dataset",
			)
		}
		return nil, errors.Wrapf(err, "failed to read dataset %s", path)
	}

	k, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset %s", path)
	}
	return k, nil
}

// Decode parses a dataset in the given format and builds a KnowledgeBase.
func Decode(r io.Reader, format string) (*KnowledgeBase, error) {
	var ds Dataset

	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&ds); err != nil {
			return nil, errors.Wrap(errors.Wrap(errors.ErrInvalidDataset, err.Error()), "failed to decode TOML")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&ds); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.Wrap(errors.ErrInvalidDataset, err.Error()), "failed to decode YAML")
		}
	default:
		return nil, errors.NewUnsupportedFormatError("dataset format %q", format)
	}

	if err := CheckVersion(ds.Version); err != nil {
		return nil, err
	}
	return New(ds)
}

// CheckVersion verifies that a dataset version satisfies SupportedVersions.
// An empty version is accepted as the current DatasetVersion.
func CheckVersion(version string) error {
	version = strings.TrimSpace(version)
	if version == "" {
		return nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return errors.NewInvalidDatasetError("version %q is not semantic: %s", version, err)
	}

	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return errors.AssertionFailedf("bad constraint %q: %v", SupportedVersions, err)
	}
	if !constraint.Check(v) {
		return errors.WithHintf(
			errors.NewInvalidDatasetError("version %s does not satisfy %s", version, SupportedVersions),
			"this build reads dataset versions %s", SupportedVersions,
		)
	}
	return nil
}

// Export writes the knowledge base's dataset in the given format.
func Export(w io.Writer, k *KnowledgeBase, format string) error {
	ds := k.Dataset()

	switch format {
	case FormatTOML:
		enc := gotoml.NewEncoder(w)
		enc.SetIndentTables(true)
		if err := enc.Encode(ds); err != nil {
			return errors.Wrap(err, "failed to encode TOML")
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ds); err != nil {
			return errors.Wrap(err, "failed to encode YAML")
		}
		return errors.Wrap(enc.Close(), "failed to flush YAML")
	default:
		return errors.NewUnsupportedFormatError("export format %q (want toml or yaml)", format)
	}
}
