package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the name offered when exporting a document.
const DefaultFileName = "animations.json"

// Document is the exported animation data for one sprite sheet.
type Document struct {
	Animations  AnimationSet `json:"animations" yaml:"animations"`
	SpriteSheet *string      `json:"spriteSheet" yaml:"spriteSheet"`
}

// AnimationRecord is one animation as stored in a document.
type AnimationRecord struct {
	Name   string        `json:"name" yaml:"name"`
	Frames []FrameRecord `json:"frames" yaml:"frames"`
	FPS    float64       `json:"fps" yaml:"fps"`
	Loop   bool          `json:"loop" yaml:"loop"`
}

// FrameRecord is one sprite sheet region. Duration is in milliseconds and
// omitted when unset.
type FrameRecord struct {
	X        int     `json:"x" yaml:"x"`
	Y        int     `json:"y" yaml:"y"`
	Width    int     `json:"width" yaml:"width"`
	Height   int     `json:"height" yaml:"height"`
	Duration float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// New returns an empty document with no sprite sheet.
func New() *Document {
	return &Document{}
}

// Sheet returns the sprite sheet reference, or "" when none is set.
func (d *Document) Sheet() string {
	if d == nil || d.SpriteSheet == nil {
		return ""
	}
	return *d.SpriteSheet
}

// SetSheet sets the sprite sheet reference; "" clears it.
func (d *Document) SetSheet(ref string) {
	if ref == "" {
		d.SpriteSheet = nil
		return
	}
	d.SpriteSheet = &ref
}

// AnimationSet maps animation names to records and remembers key order, so
// a decoded document re-encodes with its animations in the same order.
type AnimationSet struct {
	names  []string
	byName map[string]AnimationRecord
}

// Set inserts or replaces the record at name. Replacing keeps the position.
func (s *AnimationSet) Set(name string, rec AnimationRecord) {
	if s.byName == nil {
		s.byName = make(map[string]AnimationRecord)
	}
	if _, ok := s.byName[name]; !ok {
		s.names = append(s.names, name)
	}
	if rec.Frames == nil {
		rec.Frames = []FrameRecord{}
	}
	s.byName[name] = rec
}

// Get returns the record at name.
func (s AnimationSet) Get(name string) (AnimationRecord, bool) {
	rec, ok := s.byName[name]
	return rec, ok
}

// Delete removes name from the set.
func (s *AnimationSet) Delete(name string) {
	if _, ok := s.byName[name]; !ok {
		return
	}
	delete(s.byName, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			return
		}
	}
}

// Names returns keys in document order.
func (s AnimationSet) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of animations.
func (s AnimationSet) Len() int { return len(s.names) }

func (s AnimationSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.byName[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *AnimationSet) UnmarshalJSON(data []byte) error {
	*s = AnimationSet{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("animations: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("animations: expected key, got %v", tok)
		}
		var rec AnimationRecord
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("animations: %q: %w", name, err)
		}
		s.Set(name, rec)
	}
	_, err = dec.Token()
	return err
}

func (s AnimationSet) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range s.names {
		val := &yaml.Node{}
		if err := val.Encode(s.byName[name]); err != nil {
			return nil, err
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

func (s *AnimationSet) UnmarshalYAML(value *yaml.Node) error {
	*s = AnimationSet{}
	if value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("animations: expected mapping at line %d", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		name := value.Content[i].Value
		var rec AnimationRecord
		if err := value.Content[i+1].Decode(&rec); err != nil {
			return fmt.Errorf("animations: %q: %w", name, err)
		}
		s.Set(name, rec)
	}
	return nil
}
