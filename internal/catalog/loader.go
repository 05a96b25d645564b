package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// snapshotSchema guards against malformed exports before any index is built.
// The export job writes this file; a bad write should fail loudly at startup,
// not as a broken reply mid-conversation.
const snapshotSchema = `{
  "type": "object",
  "required": ["municipalities", "products", "stores"],
  "properties": {
    "municipalities": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"}
        }
      }
    },
    "products": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "town"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "category": {"type": "string"},
          "price_range": {"type": "string"},
          "availability": {"type": "string"},
          "peak_season": {"type": "string"},
          "making_process": {"type": "string"},
          "cultural_significance": {"type": "string"},
          "town": {"type": "string", "minLength": 1},
          "store_id": {"type": "string"},
          "store_name": {"type": "string"}
        }
      }
    },
    "stores": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["store_id", "name", "town"],
        "properties": {
          "store_id": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "town": {"type": "string"},
          "type": {"type": "string"},
          "rating": {"type": "number"},
          "operating_hours": {"type": "string"},
          "phone": {"type": "string"}
        }
      }
    },
    "signature_products": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["town", "product_name"],
        "properties": {
          "town": {"type": "string", "minLength": 1},
          "product_name": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

// Load reads, validates and indexes a snapshot file.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Parse(raw)
}

// Parse validates and indexes raw snapshot JSON.
func Parse(raw []byte) (*Catalog, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(snapshotSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("validate snapshot: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("snapshot failed schema validation: %s", strings.Join(msgs, "; "))
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return New(snap), nil
}
