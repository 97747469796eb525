package validatequizinput

import "rto-workers/internal/models"

type Output struct {
	Valid      bool          `json:"valid"`
	Errors     []string      `json:"errors"`
	Normalized *models.Query `json:"normalized"`
}
