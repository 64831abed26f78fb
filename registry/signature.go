// Package registry implements the concurrent function-signature registry:
// a case-insensitive prefix trie (trie.go) behind a concurrent façade
// (manager.go), a versioned JSON cache codec (cache.go), and the
// immutable data model for signatures, enumerations, and events
// (this file).
//
// Grounded on original_source/src/types.rs (Function/Arg/Event/EventField)
// for the data shape, and on sqlparser.Create/Type (teacher) for the
// "value struct with a WithoutPos-style copy-with-a-tweak method" idiom
// used here for alias materialization (Signature.WithName).
package registry

import (
	"encoding/json"
	"fmt"

	"github.com/smasher164/xid"
)

// BracketPolicy describes whether a function's call sites must, may, or
// must not carry a bracketed argument list.
type BracketPolicy int

const (
	BracketsOptional BracketPolicy = iota
	BracketsRequired
	BracketsForbidden
)

func (p BracketPolicy) String() string {
	switch p {
	case BracketsRequired:
		return "required"
	case BracketsForbidden:
		return "forbidden"
	default:
		return "optional"
	}
}

// MarshalJSON renders the policy the way the ingestion format expects:
// a bare bool (true=required, false=forbidden) is accepted on decode for
// compatibility with the legacy source format, but encoding always uses
// the three-way string form.
func (p BracketPolicy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *BracketPolicy) UnmarshalJSON(data []byte) error {
	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		if asBool {
			*p = BracketsRequired
		} else {
			*p = BracketsForbidden
		}
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return fmt.Errorf("registry: brackets field must be a bool or one of required/optional/forbidden: %w", err)
	}
	switch asString {
	case "required":
		*p = BracketsRequired
	case "forbidden":
		*p = BracketsForbidden
	case "optional", "":
		*p = BracketsOptional
	default:
		return fmt.Errorf("registry: unknown brackets policy %q", asString)
	}
	return nil
}

// ArgSchemaItem describes one positional slot of a function's argument
// schema.
type ArgSchemaItem struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Required        bool   `json:"required,omitempty"`
	// Rest marks the final schema item as absorbing all trailing
	// arguments; it may appear only in the last position.
	Rest            bool     `json:"rest,omitempty"`
	Type            string   `json:"type"`
	Condition       *bool    `json:"condition,omitempty"`
	Enum            []string `json:"enum,omitempty"`
	EnumName        string   `json:"enum_name,omitempty"`
	Pointer         *int64   `json:"pointer,omitempty"`
	PointerProperty string   `json:"pointer_property,omitempty"`
}

// Signature is the immutable metadata describing one function name.
// Once inserted into the trie it is shared read-only; callers receive a
// *Signature handle rather than a copy.
type Signature struct {
	// Name is normalized to carry a leading '$'.
	Name         string          `json:"name"`
	Aliases      []string        `json:"aliases,omitempty"`
	Args         []ArgSchemaItem `json:"args,omitempty"`
	Brackets     BracketPolicy   `json:"brackets,omitempty"`
	Unwrap       bool            `json:"unwrap,omitempty"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	Version      string          `json:"version,omitempty"`
	Output       []string        `json:"output,omitempty"`
	Experimental bool            `json:"experimental,omitempty"`
	Examples     []string        `json:"examples,omitempty"`
	Deprecated   bool            `json:"deprecated,omitempty"`

	// Extension is stamped by the registry manager at ingestion time,
	// not supplied by the source JSON.
	Extension string `json:"-"`
	// LocalPath/Line are optional IDE-style hints, also stamped
	// out-of-band rather than decoded from the wire format.
	LocalPath string `json:"-"`
	Line      int    `json:"-"`

	// Overflow preserves unrecognized JSON keys for forward
	// compatibility.
	Overflow map[string]json.RawMessage `json:"-"`

	// aliasOf holds the canonical name this record was derived from, if
	// any. Alias-derived records are not re-exported by ExportCache --
	// only the canonical record is, and aliases are re-materialized on
	// import the same way they were on ingestion.
	aliasOf string
}

// IsAlias reports whether s is a derived alias record rather than the
// canonical record for its function.
func (s Signature) IsAlias() bool { return s.aliasOf != "" }

// UnmarshalJSON decodes a Signature, routing any key not in the known
// schema into Overflow instead of discarding it.
func (s *Signature) UnmarshalJSON(data []byte) error {
	type known Signature
	var k known
	if err := json.Unmarshal(data, &k); err != nil {
		return err
	}
	*s = Signature(k)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	knownKeys := map[string]struct{}{
		"name": {}, "aliases": {}, "args": {}, "brackets": {}, "unwrap": {},
		"description": {}, "category": {}, "version": {}, "output": {},
		"experimental": {}, "examples": {}, "deprecated": {},
	}
	for key, value := range raw {
		if _, ok := knownKeys[key]; ok {
			continue
		}
		if s.Overflow == nil {
			s.Overflow = make(map[string]json.RawMessage)
		}
		s.Overflow[key] = value
	}
	return nil
}

// MarshalJSON round-trips Overflow back onto the wire alongside the
// known fields.
func (s Signature) MarshalJSON() ([]byte, error) {
	type known Signature
	base, err := json.Marshal(known(s))
	if err != nil {
		return nil, err
	}
	if len(s.Overflow) == 0 {
		return base, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range s.Overflow {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// CanonicalName ensures name carries a leading '$'.
func CanonicalName(name string) string {
	if len(name) > 0 && name[0] == '$' {
		return name
	}
	return "$" + name
}

// WithName returns a shallow copy of s with Name replaced by name (with
// a leading '$' ensured). Used to materialize one derived record per
// alias at ingest time, so lookups never have to chase an indirection
// through the canonical record (§9 "Shared immutable signatures").
func (s Signature) WithName(name string) *Signature {
	clone := s
	clone.aliasOf = s.Name
	clone.Name = CanonicalName(name)
	// Aliases on the derived record describe the canonical name's
	// alias set; that's not meaningful to repeat on every alias record,
	// so it is cleared here.
	clone.Aliases = nil
	return &clone
}

// validExtensionTag reports whether tag is empty or a legal identifier
// (xid.Start followed by zero or more xid.Continue runes) -- used to
// reject a malformed extension tag before it is stamped onto a
// signature. A record's Category is not checked.
func validExtensionTag(tag string) bool {
	if tag == "" {
		return true
	}
	for i, r := range tag {
		if i == 0 {
			if !xid.Start(r) {
				return false
			}
			continue
		}
		if !xid.Continue(r) {
			return false
		}
	}
	return true
}

// EnumTable maps enum name to its ordered sequence of admissible values.
type EnumTable map[string][]string

// EventField is one named, described field of an Event.
type EventField struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Event describes one named, documented event.
type Event struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Fields      []EventField `json:"fields,omitempty"`
}
