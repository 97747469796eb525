package validation

// QuizInputSchema describes the two quiz answers. Values are checked
// case-insensitively, so the enums cover the common spellings.
const QuizInputSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["deliveryPreference", "region"],
  "properties": {
    "deliveryPreference": {
      "type": "string",
      "pattern": "^\\s*(?i:online|in-person)\\s*$"
    },
    "region": {
      "type": "string",
      "pattern": "^\\s*(?i:nsw|vic|qld|sa|wa|tas|nt|act)\\s*$"
    }
  }
}`

// CatalogSchema describes a catalog file: an array of providers.
const CatalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "rating", "deliveryModes", "regions"],
    "properties": {
      "id":          {"type": "string", "minLength": 1},
      "name":        {"type": "string", "minLength": 1},
      "description": {"type": "string"},
      "rating":      {"type": "number", "minimum": 0, "maximum": 10},
      "deliveryModes": {
        "type": "array",
        "minItems": 1,
        "items": {"type": "string", "enum": ["online", "in-person", "blended"]}
      },
      "regions": {
        "type": "array",
        "minItems": 1,
        "items": {"type": "string", "minLength": 1}
      },
      "features":        {"type": "array", "items": {"type": "string"}},
      "detailUrl":       {"type": "string"},
      "price":           {"type": ["number", "null"], "minimum": 0},
      "duration":        {"type": "string"},
      "sponsorshipTier": {"type": "string", "enum": ["", "none", "sponsored"]}
    }
  }
}`
