package source

import (
	"fmt"
	"sort"
	"strings"
)

// ValueKey holds the bare value of a "type:value" spec. ResolveConfig moves
// it to the primary key of the source. Parsed keys are never empty, so it
// cannot collide with a key=value entry.
const ValueKey = ""

// PrimaryKeyer is implemented by sources that accept a bare value, such as
// "static:/etc/sensors.yaml" for "static:path=/etc/sensors.yaml"
type PrimaryKeyer interface {
	PrimaryConfigKey() string
}

// Spec selects a registered source and the configuration it is enumerated with
type Spec struct {
	Type   string
	Config map[string]string
}

// String renders the spec in the form accepted by ParseSpec
func (s Spec) String() string {
	if len(s.Config) == 0 {
		return s.Type
	}

	keys := make([]string, 0, len(s.Config))
	for k := range s.Config {
		if k != ValueKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(s.Config))
	if value, ok := s.Config[ValueKey]; ok {
		pairs = append(pairs, value)
	}
	for _, k := range keys {
		pairs = append(pairs, k+"="+s.Config[k])
	}
	return s.Type + ":" + strings.Join(pairs, ",")
}

// ParseSpec parses "type", "type:key=value,key=value" or the shorthand
// "type:value[,key=value...]" where value belongs to the source's primary key
func ParseSpec(s string) (Spec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Spec{}, fmt.Errorf("empty source spec")
	}

	sourceType, rest, hasConfig := strings.Cut(s, ":")
	spec := Spec{
		Type:   strings.TrimSpace(sourceType),
		Config: make(map[string]string),
	}
	if spec.Type == "" {
		return Spec{}, fmt.Errorf("source spec %q has no type", s)
	}

	if !hasConfig {
		return spec, nil
	}

	entries := strings.Split(rest, ",")
	if key, _, ok := strings.Cut(entries[0], "="); !ok || !isConfigKey(strings.TrimSpace(key)) {
		value := strings.TrimSpace(entries[0])
		if value == "" {
			return Spec{}, fmt.Errorf("source spec %q has an empty value", s)
		}
		spec.Config[ValueKey] = value
		entries = entries[1:]
	}

	for _, pair := range entries {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return Spec{}, fmt.Errorf("invalid config entry %q in source spec %q (expected key=value)", pair, s)
		}
		spec.Config[key] = strings.TrimSpace(value)
	}

	return spec, nil
}

// ResolveConfig returns config with the bare spec value stored under the
// primary key of src. config itself is not modified.
func ResolveConfig(src Source, config map[string]string) (map[string]string, error) {
	value, ok := config[ValueKey]
	if !ok {
		return config, nil
	}

	pk, ok := src.(PrimaryKeyer)
	if !ok {
		return nil, fmt.Errorf("source %s does not accept a bare value", src.GetSourceType())
	}

	key := pk.PrimaryConfigKey()
	if _, dup := config[key]; dup {
		return nil, fmt.Errorf("source %s: %s given twice", src.GetSourceType(), key)
	}

	resolved := make(map[string]string, len(config))
	for k, v := range config {
		if k != ValueKey {
			resolved[k] = v
		}
	}
	resolved[key] = value
	return resolved, nil
}

func isConfigKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if !(r == '_' || r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

// ParseSpecs parses a ';' separated list of source specs
func ParseSpecs(s string) ([]Spec, error) {
	var specs []Spec
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		spec, err := ParseSpec(part)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
