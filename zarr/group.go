package zarr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// CreateGroup marks path as a group. Non-nil attrs are stored alongside the
// group metadata.
func CreateGroup(store Store, path string, attrs Attributes) error {
	p, err := NewPath(path)
	if err != nil {
		return err
	}
	if err := putJSON(store, p.Join(string(MTGroup)).String(), Group{ZarrFormat: Version}); err != nil {
		return err
	}
	if attrs != nil {
		return putJSON(store, p.Join(string(MTAttributes)).String(), attrs)
	}
	return nil
}

// IsGroup reports whether a group exists at path.
func IsGroup(store Store, path string) (bool, error) {
	p, err := NewPath(path)
	if err != nil {
		return false, err
	}
	return exists(store, p.Join(string(MTGroup)).String())
}

// GroupAttributes returns the attributes of the group or array at path.
func GroupAttributes(store Store, path string) (Attributes, error) {
	p, err := NewPath(path)
	if err != nil {
		return nil, err
	}
	return readAttributes(store, p)
}

func readAttributes(store Store, p Path) (Attributes, error) {
	attrs := Attributes{}
	rc, err := store.Get(p.Join(string(MTAttributes)).String())
	if errors.Is(err, ErrNotFound) {
		return attrs, nil
	} else if err != nil {
		return nil, err
	}
	defer rc.Close()
	if err := json.NewDecoder(rc).Decode(&attrs); err != nil {
		return nil, fmt.Errorf("%w: attributes: %s", ErrInvalidMetadata, err)
	}
	return attrs, nil
}

// Consolidate collects every metadata document below the group at path into
// a single “.zmetadata” key and returns it. Keys in the result are relative
// to path.
func Consolidate(store Store, path string) (*ConsolidatedMetadata, error) {
	p, err := NewPath(path)
	if err != nil {
		return nil, err
	}
	keys, err := store.Keys(p.prefix())
	if err != nil {
		return nil, err
	}

	raw := map[string]json.RawMessage{}
	for _, key := range keys {
		if _, ok := KeyMetaType(key); !ok {
			continue
		}
		rc, err := store.Get(key)
		if err != nil {
			return nil, err
		}
		var msg json.RawMessage
		err = json.NewDecoder(rc).Decode(&msg)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s", ErrInvalidMetadata, key, err)
		}
		raw[strings.TrimPrefix(key, p.prefix())] = msg
	}

	data, err := json.Marshal(consolidatedMetaDecoder{ConsolidatedFormat: 1, Metadata: raw})
	if err != nil {
		return nil, err
	}
	cm := &ConsolidatedMetadata{}
	if err := json.Unmarshal(data, cm); err != nil {
		return nil, err
	}
	if err := putJSON(store, p.Join(string(MTMetadata)).String(), cm); err != nil {
		return nil, err
	}
	return cm, nil
}

// OpenConsolidated reads the “.zmetadata” key of the group at path.
func OpenConsolidated(store Store, path string) (*ConsolidatedMetadata, error) {
	p, err := NewPath(path)
	if err != nil {
		return nil, err
	}
	rc, err := store.Get(p.Join(string(MTMetadata)).String())
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	cm := &ConsolidatedMetadata{}
	if err := json.NewDecoder(rc).Decode(cm); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMetadata, err)
	}
	return cm, nil
}
