package engine

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/cpcf/embed64/postprocess"
)

type Renderer struct {
	logger         *slog.Logger
	cache          *TemplateCache
	postprocessors *postprocess.Chain
}

func NewRenderer(logger *slog.Logger, cache *TemplateCache, postprocessors *postprocess.Chain) *Renderer {
	return &Renderer{
		logger:         logger,
		cache:          cache,
		postprocessors: postprocessors,
	}
}

// Render executes templatePath with data and runs the post-processors as if
// the result were stored at outputPath.
func (r *Renderer) Render(templatePath, outputPath string, data any) ([]byte, error) {
	r.logger.Debug("rendering template", "template", templatePath, "output", outputPath)

	tmpl, err := r.cache.Get(templatePath)
	if err != nil {
		return nil, &GenerationError{Path: outputPath, Message: msgTemplate, Err: fmt.Errorf("parse %s: %w", templatePath, err)}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, &GenerationError{Path: outputPath, Message: msgTemplate, Err: fmt.Errorf("execute %s: %w", templatePath, err)}
	}

	content := buf.Bytes()
	if r.postprocessors.HasProcessors() {
		content, err = r.postprocessors.Process(outputPath, content)
		if err != nil {
			return nil, &GenerationError{Path: outputPath, Message: msgPostprocess, Err: err}
		}
	}

	return content, nil
}
