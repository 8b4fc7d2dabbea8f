package usecase

import (
	"context"

	"github.com/runoshun/task-reminder/internal/domain"
)

// ShowConfigTemplateInput contains the input for the ShowConfigTemplate use case.
type ShowConfigTemplateInput struct {
	Config *domain.Config // Values rendered into the template (nil = defaults)
}

// ShowConfigTemplateOutput contains the output of the ShowConfigTemplate use case.
type ShowConfigTemplateOutput struct {
	Template string // Configuration template content
}

// ShowConfigTemplate renders the commented configuration template.
type ShowConfigTemplate struct{}

// NewShowConfigTemplate creates a new ShowConfigTemplate use case.
func NewShowConfigTemplate() *ShowConfigTemplate {
	return &ShowConfigTemplate{}
}

// Execute renders the template. It reads no files, so it works even when
// existing config files are broken.
func (uc *ShowConfigTemplate) Execute(_ context.Context, in ShowConfigTemplateInput) (*ShowConfigTemplateOutput, error) {
	cfg := in.Config
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}
	return &ShowConfigTemplateOutput{Template: domain.RenderConfigTemplate(cfg)}, nil
}
