// pkg/registry/schema.go
package registry

// ActivityRegistry documents the task types the workers serve, for process
// modellers and for startup checks.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	TaskType    string   `json:"taskType"`
	Inputs      []string `json:"inputs"`
	Outputs     []string `json:"outputs"`
	ErrorCodes  []string `json:"errorCodes"`
	Timeout     string   `json:"timeout"`
	Retries     int      `json:"retries"`
}
