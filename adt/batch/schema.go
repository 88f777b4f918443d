package batch

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaID is the $id of the generated batch schema.
const SchemaID = "https://github.com/joshuapare/adtkit/batch.schema.json"

// Schema returns the JSON Schema of a batch file.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{DoNotReference: true, Anonymous: true}
	s := r.Reflect([]Descriptor{})
	s.ID = jsonschema.ID(SchemaID)
	s.Title = "adtkit batch"
	s.Description = "Ordered list of ADT edit operations."
	return s
}

// SchemaJSON renders Schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	out, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return out, nil
}
