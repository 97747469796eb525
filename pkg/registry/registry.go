// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, reg.Validate()
}

// Default is the registry for the workers built into this module.
func Default() *ActivityRegistry {
	return &ActivityRegistry{
		Version:     "1.0.0",
		LastUpdated: "2026-10-19",
		Activities: []Activity{
			{
				ID:          "validate-quiz-input",
				DisplayName: "Validate Quiz Input",
				Description: "Checks the delivery preference and region answers and returns them in canonical form.",
				Category:    "matching",
				TaskType:    "validate-quiz-input",
				Inputs:      []string{"deliveryPreference", "region"},
				Outputs:     []string{"valid", "errors", "normalized"},
				ErrorCodes:  []string{"PARSE_ERROR", "INVALID_QUIZ_INPUT"},
				Timeout:     "5s",
			},
			{
				ID:          "match-providers",
				DisplayName: "Match Training Providers",
				Description: "Ranks the provider catalog for one set of quiz answers.",
				Category:    "matching",
				TaskType:    "match-providers",
				Inputs:      []string{"deliveryPreference", "region"},
				Outputs:     []string{"rankedProviders", "topMatch", "runnersUp", "totalMatches", "noMatch"},
				ErrorCodes:  []string{"PARSE_ERROR", "INTERNAL_ERROR"},
				Timeout:     "5s",
			},
			{
				ID:          "index-providers",
				DisplayName: "Index Providers",
				Description: "Bulk-indexes the catalog into Elasticsearch for site search.",
				Category:    "catalog",
				TaskType:    "index-providers",
				Inputs:      []string{"indexName"},
				Outputs:     []string{"indexName", "indexed", "failed", "tookMs"},
				ErrorCodes:  []string{"PARSE_ERROR", "ELASTICSEARCH_CONNECTION_FAILED", "SEARCH_INDEX_FAILED", "SEARCH_TIMEOUT"},
				Timeout:     "60s",
				Retries:     5,
			},
			{
				ID:          "send-match-summary",
				DisplayName: "Send Match Summary",
				Description: "Emails or texts the learner their top provider and runners-up.",
				Category:    "communication",
				TaskType:    "send-match-summary",
				Inputs:      []string{"email", "phone", "firstName", "deliveryPreference", "region", "channel"},
				Outputs:     []string{"notificationId", "status", "emailSent", "smsSent", "topMatchId", "sentAt"},
				ErrorCodes:  []string{"PARSE_ERROR", "NO_RECIPIENT", "INVALID_QUIZ_INPUT", "NOTIFICATION_SEND_FAILED"},
				Timeout:     "30s",
				Retries:     5,
			},
		},
	}
}

// Validate checks ids and task types are present and unique.
func (r *ActivityRegistry) Validate() error {
	var errs []error
	ids := map[string]bool{}
	taskTypes := map[string]bool{}

	for i, a := range r.Activities {
		if a.ID == "" {
			errs = append(errs, fmt.Errorf("activities[%d]: id is required", i))
		} else if ids[a.ID] {
			errs = append(errs, fmt.Errorf("activities[%d]: duplicate id %q", i, a.ID))
		}
		ids[a.ID] = true

		if a.TaskType == "" {
			errs = append(errs, fmt.Errorf("activities[%d]: taskType is required", i))
		} else if taskTypes[a.TaskType] {
			errs = append(errs, fmt.Errorf("activities[%d]: duplicate taskType %q", i, a.TaskType))
		}
		taskTypes[a.TaskType] = true
	}

	return errors.Join(errs...)
}

func (r *ActivityRegistry) Find(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// CheckTaskTypes reports task types that have no registry entry.
func (r *ActivityRegistry) CheckTaskTypes(taskTypes []string) error {
	var missing []string
	for _, tt := range taskTypes {
		if _, ok := r.Find(tt); !ok {
			missing = append(missing, tt)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("task types missing from activity registry: %s", strings.Join(missing, ", "))
	}
	return nil
}
