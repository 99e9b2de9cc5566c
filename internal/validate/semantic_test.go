package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratum-model/stratum/internal/model"
)

func TestTargetLayerMismatch(t *testing.T) {
	f := newFixture(t)
	e := f.add(model.LayerApplication, "service", "x", map[string]interface{}{
		// realizes targets the business layer, not technology.
		"realizes": "technology.node.cluster",
	})

	issues := NewSemanticValidator().ValidateElement(f.ctx(true), e)
	mismatches := issuesWithCode(issues, CodeTargetMismatch)
	require.Len(t, mismatches, 1)
	assert.Contains(t, mismatches[0].Message, `targets layer "business"`)
}

func TestTargetTypeMismatch(t *testing.T) {
	f := newFixture(t)
	e := f.add(model.LayerApplication, "service", "x", map[string]interface{}{
		// realizes allows only business services.
		"realizes": "business.process.onboarding",
	})

	issues := NewSemanticValidator().ValidateElement(f.ctx(true), e)
	mismatches := issuesWithCode(issues, CodeTargetMismatch)
	require.Len(t, mismatches, 1)
	assert.Contains(t, mismatches[0].Message, `"business.process.onboarding" is a "process"`)
}

func TestPatternViolation(t *testing.T) {
	f := newFixture(t)
	e := f.add(model.LayerApplication, "service", "x", map[string]interface{}{
		"realizes": "Business Service Billing",
	})

	issues := NewSemanticValidator().ValidateElement(f.ctx(true), e)
	assert.NotEmpty(t, issuesWithCode(issues, CodeBadValueFormat))
}

func TestConformingTargetIsClean(t *testing.T) {
	f := newFixture(t)
	e := f.add(model.LayerApplication, "service", "x", map[string]interface{}{
		"realizes": "business.service.billing",
	})

	issues := NewSemanticValidator().ValidateElement(f.ctx(true), e)
	assert.Empty(t, issues)
}

func TestInverseAndGenericReferencesAreNotRechecked(t *testing.T) {
	f := newFixture(t)
	e := f.add(model.LayerBusiness, "service", "billing", map[string]interface{}{
		"realized-by": "application.service.billing-api",
		"meta":        map[string]interface{}{"ownerRef": "not an id"},
	})

	issues := NewSemanticValidator().ValidateElement(f.ctx(true), e)
	assert.Empty(t, issues)
}
