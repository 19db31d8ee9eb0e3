package policy

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

type document struct {
	Policies []*Policy `yaml:"policies"`
}

// Parse reads a policy document of the form:
//
//	policies:
//	  - type: Query
//	    rules:
//	      - name: allow-user-lookup
//	        condition: "true"
//	        fields: [user, users]
//	    default:
//	      condition: "false"
//
// The parsed policies keep their document order.
func Parse(b []byte) ([]*Policy, error) {
	var doc document
	err := yaml.Unmarshal(b, &doc)
	if err != nil {
		return nil, &InvalidInputError{Err: fmt.Errorf("parse policy document: %w", err)}
	}

	err = Validate(doc.Policies)
	if err != nil {
		return nil, err
	}

	return doc.Policies, nil
}

func Load(r io.Reader) ([]*Policy, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}
