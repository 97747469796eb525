package indexproviders

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":              {"type": "keyword"},
      "name":            {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "description":     {"type": "text"},
      "rating":          {"type": "float"},
      "deliveryModes":   {"type": "keyword"},
      "regions":         {"type": "keyword"},
      "features":        {"type": "text"},
      "detailUrl":       {"type": "keyword", "index": false},
      "price":           {"type": "float"},
      "duration":        {"type": "text"},
      "sponsorshipTier": {"type": "keyword"},
      "national":        {"type": "boolean"},
      "sponsored":       {"type": "boolean"},
      "blended":         {"type": "boolean"},
      "hasPrice":        {"type": "boolean"}
    }
  }
}`
