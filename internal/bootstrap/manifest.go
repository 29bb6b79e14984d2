package bootstrap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ManifestFile is the project manifest written into the target directory.
const ManifestFile = "package.json"

// ManifestPatch holds the fields melodrama owns in a project manifest.
type ManifestPatch struct {
	StartScript string
	Private     bool
	Readme      string
}

// DefaultManifestPatch wires `npm start` to the dev server on the template entry.
func DefaultManifestPatch() ManifestPatch {
	return ManifestPatch{
		StartScript: "melodrama start index.js",
		Private:     true,
		Readme:      "README.md",
	}
}

// object is a JSON object that keeps its keys in document order.
type object struct {
	keys   []string
	values map[string]json.RawMessage
}

func newObject() *object {
	return &object{values: map[string]json.RawMessage{}}
}

func (o *object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected a JSON object")
	}

	o.keys = nil
	o.values = map[string]json.RawMessage{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if _, exists := o.values[key]; !exists {
			o.keys = append(o.keys, key)
		}
		o.values[key] = raw
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(o.values[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o *object) set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = raw
	return nil
}

// apply merges the patch into the manifest. Patch fields win; every other
// field is preserved, including sibling entries of "scripts".
func (p ManifestPatch) apply(manifest *object) error {
	scripts := newObject()
	if raw, ok := manifest.values["scripts"]; ok {
		if err := json.Unmarshal(raw, scripts); err != nil {
			scripts = newObject()
		}
	}
	if err := scripts.set("start", p.StartScript); err != nil {
		return err
	}

	if err := manifest.set("scripts", scripts); err != nil {
		return err
	}
	if err := manifest.set("private", p.Private); err != nil {
		return err
	}
	return manifest.set("readme", p.Readme)
}

// readManifest loads dir/package.json. A missing manifest yields the default
// {name: basename(dir), version: "1.0.0"}; existed reports which case applied.
func readManifest(dir string) (manifest *object, original []byte, existed bool, err error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, false, err
		}
		manifest = newObject()
		if err := manifest.set("name", filepath.Base(dir)); err != nil {
			return nil, nil, false, err
		}
		if err := manifest.set("version", "1.0.0"); err != nil {
			return nil, nil, false, err
		}
		return manifest, nil, false, nil
	}

	manifest = newObject()
	if err := json.Unmarshal(data, manifest); err != nil {
		return nil, nil, true, fmt.Errorf("parsing %s: %w", path, err)
	}
	return manifest, data, true, nil
}

func encodeManifest(manifest *object) ([]byte, error) {
	compact, err := manifest.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
