package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratum-model/stratum/internal/model"
	"github.com/stratum-model/stratum/internal/validate"
)

func sampleResult() *validate.Result {
	r := validate.NewResult()
	r.Add(validate.Issue{
		Code:       validate.CodeBrokenReference,
		Layer:      model.LayerApplication,
		ElementID:  "application.service.billing-api",
		Message:    "referenced element business.service.ghost does not exist",
		Severity:   validate.SeverityError,
		Location:   "realizes",
		Suggestion: "check the element id for typos",
	})
	r.Add(validate.Issue{
		Code:      validate.CodeMissingInverse,
		Layer:     model.LayerBusiness,
		ElementID: "business.service.billing",
		Message:   "no inverse reference back from application.service.billing-api",
		Severity:  validate.SeverityWarning,
	})
	return r
}

func TestWriteText(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatText))

	out := buf.String()
	assert.Contains(t, out, "error   application.service.billing-api: referenced element business.service.ghost does not exist (realizes)")
	assert.Contains(t, out, "hint: check the element id for typos")
	assert.Contains(t, out, "warning business.service.billing: no inverse reference back")
	assert.Contains(t, out, "invalid (1 errors, 1 warnings)")
}

func TestWriteTextValid(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, validate.NewResult(), FormatText))
	assert.Contains(t, buf.String(), "valid (0 warnings)")
}

func TestWriteTextDefaultsForEmptyFormat(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, validate.NewResult(), ""))
	assert.NotEmpty(t, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatJSON))

	var decoded struct {
		IsValid      bool             `json:"is_valid"`
		ErrorCount   int              `json:"error_count"`
		WarningCount int              `json:"warning_count"`
		Errors       []validate.Issue `json:"errors"`
		Warnings     []validate.Issue `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.False(t, decoded.IsValid)
	assert.Equal(t, 1, decoded.ErrorCount)
	assert.Equal(t, 1, decoded.WarningCount)
	require.Len(t, decoded.Errors, 1)
	assert.Equal(t, validate.CodeBrokenReference, decoded.Errors[0].Code)
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatHTML))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `<p class="summary fail">invalid (1 errors, 1 warnings)</p>`)
	assert.Contains(t, out, "application.service.billing-api")
	assert.Contains(t, out, "check the element id for typos")
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, validate.NewResult(), Format("xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}
