package viron

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Identifier names one endpoint of an API, either as a dotted string
// "Group.Endpoint" or as an explicit (group, endpoint) pair.
//
// The zero Identifier is malformed.
type Identifier struct {
	raw      string
	group    string
	endpoint string
	pair     bool
}

// EndpointID returns an identifier for the dotted form "Group.Endpoint".
// The string is parsed lazily by Parts.
func EndpointID(s string) Identifier {
	return Identifier{raw: s}
}

// EndpointPair returns an identifier naming group and endpoint directly.
// Neither part is split further, so names containing '.' are allowed.
func EndpointPair(group, endpoint string) Identifier {
	return Identifier{group: group, endpoint: endpoint, pair: true}
}

// ParseIdentifier parses a dotted identifier and reports a malformed one.
func ParseIdentifier(s string) (Identifier, error) {
	id := EndpointID(s)
	if _, _, err := id.Parts(); err != nil {
		return Identifier{}, err
	}
	return id, nil
}

// Parts returns the group and endpoint names.
// Dotted strings are split on the first '.'; both segments must be non-empty.
func (id Identifier) Parts() (group, endpoint string, err error) {
	if id.pair {
		if id.group == "" || id.endpoint == "" {
			return "", "", Errorf(CodeMalformedIdentifier, "identifier %s: pair needs a non-empty group and endpoint", id).
				WithDetail("identifier", id.String())
		}
		return id.group, id.endpoint, nil
	}

	group, endpoint, ok := strings.Cut(id.raw, ".")
	if !ok || group == "" || endpoint == "" {
		return "", "", Errorf(CodeMalformedIdentifier, "identifier %q: expected \"Group.Endpoint\"", id.raw).
			WithDetail("identifier", id.raw)
	}
	return group, endpoint, nil
}

// IsPair reports whether the identifier was given as an explicit pair.
func (id Identifier) IsPair() bool { return id.pair }

// IsZero reports whether the identifier is unset.
func (id Identifier) IsZero() bool {
	return !id.pair && id.raw == ""
}

func (id Identifier) String() string {
	if id.pair {
		return fmt.Sprintf("[%s %s]", id.group, id.endpoint)
	}
	return id.raw
}

// MarshalJSON encodes a dotted identifier as a string and a pair as a two-element array.
func (id Identifier) MarshalJSON() ([]byte, error) {
	if id.pair {
		return json.Marshal([2]string{id.group, id.endpoint})
	}
	return json.Marshal(id.raw)
}

// UnmarshalJSON accepts "Group.Endpoint" or ["Group", "Endpoint"].
func (id *Identifier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = EndpointID(s)
		return nil
	}
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return Errorf(CodeMalformedIdentifier, "identifier must be a string or a [group, endpoint] array: %s", data)
	}
	return id.setPair(parts)
}

// MarshalYAML mirrors MarshalJSON.
func (id Identifier) MarshalYAML() (any, error) {
	if id.pair {
		return []string{id.group, id.endpoint}, nil
	}
	return id.raw, nil
}

// UnmarshalYAML accepts a scalar or a two-element sequence.
func (id *Identifier) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*id = EndpointID(node.Value)
		return nil
	case yaml.SequenceNode:
		var parts []string
		if err := node.Decode(&parts); err != nil {
			return Errorf(CodeMalformedIdentifier, "line %d: identifier pair: %v", node.Line, err)
		}
		return id.setPair(parts)
	default:
		return Errorf(CodeMalformedIdentifier, "line %d: identifier must be a string or a [group, endpoint] sequence", node.Line)
	}
}

func (id *Identifier) setPair(parts []string) error {
	if len(parts) != 2 {
		return Errorf(CodeMalformedIdentifier, "identifier pair must have exactly 2 elements, got %d", len(parts))
	}
	*id = EndpointPair(parts[0], parts[1])
	return nil
}
