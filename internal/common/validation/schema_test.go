package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quizSchema = MustCompile(QuizInputSchema)

func TestQuizInputSchema(t *testing.T) {
	tests := []struct {
		name      string
		doc       map[string]interface{}
		wantValid bool
		badFields []string
	}{
		{
			name:      "valid",
			doc:       map[string]interface{}{"deliveryPreference": "online", "region": "NSW"},
			wantValid: true,
		},
		{
			name:      "case and padding tolerated",
			doc:       map[string]interface{}{"deliveryPreference": " In-Person ", "region": "qld"},
			wantValid: true,
		},
		{
			name:      "both missing",
			doc:       map[string]interface{}{},
			badFields: []string{"deliveryPreference", "region"},
		},
		{
			name:      "blended is not selectable",
			doc:       map[string]interface{}{"deliveryPreference": "blended", "region": "VIC"},
			badFields: []string{"deliveryPreference"},
		},
		{
			name:      "unknown region",
			doc:       map[string]interface{}{"deliveryPreference": "online", "region": "NZ"},
			badFields: []string{"region"},
		},
		{
			name:      "wrong type",
			doc:       map[string]interface{}{"deliveryPreference": "online", "region": 2},
			badFields: []string{"region"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := quizSchema.ValidateGo(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, res.Valid, res.GetErrorMessages())
			for _, f := range tt.badFields {
				assert.True(t, res.HasErrors(f), "expected error on %s, got %v", f, res.GetErrorMessages())
			}
		})
	}
}

func TestRequiredErrorsNameTheProperty(t *testing.T) {
	res, err := quizSchema.ValidateBytes([]byte(`{"region":"NSW"}`))
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)

	assert.Equal(t, "deliveryPreference", res.Errors[0].Field)
	assert.Equal(t, "REQUIRED_FIELD_MISSING", res.Errors[0].Code)
}

func TestValidateBytes_Malformed(t *testing.T) {
	_, err := quizSchema.ValidateBytes([]byte(`{"region":`))
	assert.Error(t, err)
}

func TestCatalogSchema(t *testing.T) {
	s := MustCompile(CatalogSchema)

	res, err := s.ValidateBytes([]byte(`[
		{"id":"1","name":"A","rating":9.1,"deliveryModes":["online"],"regions":["All"],"price":null},
		{"id":"2","name":"B","rating":8,"deliveryModes":["blended"],"regions":["NSW"],"price":0,"sponsorshipTier":"sponsored"}
	]`))
	require.NoError(t, err)
	assert.True(t, res.Valid, res.GetErrorMessages())

	res, err = s.ValidateBytes([]byte(`[
		{"id":"1","name":"A","rating":11,"deliveryModes":["postal"],"regions":[]}
	]`))
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.True(t, res.HasErrors("0"))
	assert.GreaterOrEqual(t, len(res.Errors), 3)
}

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile(`{"type": `)
	assert.Error(t, err)
	assert.Panics(t, func() { MustCompile(`not json`) })
}

func TestFormatHelpers(t *testing.T) {
	assert.True(t, ValidateEmail("sam@example.com"))
	assert.False(t, ValidateEmail("sam@"))
	assert.True(t, ValidatePhone("+61 400 000 000"))
	assert.False(t, ValidatePhone("123"))
	assert.True(t, ValidateURL("https://example.com/providers/1"))
	assert.False(t, ValidateURL("example.com"))
}
