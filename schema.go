package observe

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/AnatoleLucet/observe/internal/rules"
)

// keyDocument is the YAML form of a KeyConfig.
type keyDocument struct {
	Value     any    `yaml:"value"`
	WriteOnce bool   `yaml:"writeOnce"`
	Validator string `yaml:"validator"`
}

// classDocument is the YAML form of a class.
type classDocument struct {
	Name        string                 `yaml:"name"`
	Extends     string                 `yaml:"extends"`
	InvalidKeys []string               `yaml:"invalidKeys"`
	State       map[string]keyDocument `yaml:"state"`
}

// ParseSchema reads a schema from YAML:
//
//	count:
//	  value: 0
//	  validator: value >= 0
//	id:
//	  writeOnce: true
//
// Validators are expressions over `value` (and `key`) that must be true for a
// write to be accepted.
func ParseSchema(data []byte) (Schema, error) {
	var doc map[string]keyDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	return buildSchema(doc)
}

// RegisterClassYAML registers a class described in YAML:
//
//	name: Counter
//	extends: State
//	invalidKeys: [element]
//	state:
//	  count:
//	    value: 0
func RegisterClassYAML(data []byte) error {
	var doc classDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if doc.Name == "" {
		return fmt.Errorf("%w: class name is required", ErrInvalidSchema)
	}

	schema, err := buildSchema(doc.State)
	if err != nil {
		return err
	}

	return RegisterClass(doc.Name, ClassDef{
		Extends:     doc.Extends,
		State:       schema,
		InvalidKeys: doc.InvalidKeys,
	})
}

func buildSchema(doc map[string]keyDocument) (Schema, error) {
	schema := make(Schema, len(doc))
	for name, key := range doc {
		config := KeyConfig{
			Value:     key.Value,
			WriteOnce: key.WriteOnce,
		}

		if key.Validator != "" {
			rule, err := rules.Compile(key.Validator)
			if err != nil {
				return nil, fmt.Errorf("%w: key %q: %v", ErrInvalidSchema, name, err)
			}
			config.Validator = func(value any) bool {
				return rule.Eval(name, value)
			}
		}

		schema[name] = config
	}
	return schema, nil
}
