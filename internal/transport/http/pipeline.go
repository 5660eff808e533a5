package httptransport

import (
	"net/http"
)

// Stage names, in pipeline order.
const (
	StageReputation = "reputation"
	StageAuth       = "auth"
)

// Stage is one named step of the request security pipeline.
type Stage struct {
	Name string
	Wrap func(http.Handler) http.Handler
}

// Pipeline composes the ordered security stages every request passes through.
// The order is fixed at construction: reputation runs before auth, so a
// request from a blocked IP is rejected before any token it carries is
// parsed. Public routes stop before the auth stage; protected routes run the
// full pipeline.
type Pipeline struct {
	stages []Stage
}

// NewPipeline builds the standard two-stage pipeline.
func NewPipeline(reputationGuard, authGuard func(http.Handler) http.Handler) *Pipeline {
	return &Pipeline{stages: []Stage{
		{Name: StageReputation, Wrap: reputationGuard},
		{Name: StageAuth, Wrap: authGuard},
	}}
}

// Public returns the middleware chain for unauthenticated routes: every stage
// before auth, in pipeline order.
func (p *Pipeline) Public() []func(http.Handler) http.Handler {
	return p.upTo(StageAuth)
}

// Protected returns the full middleware chain, in pipeline order.
func (p *Pipeline) Protected() []func(http.Handler) http.Handler {
	return p.upTo("")
}

// StageNames lists the configured stages in execution order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, 0, len(p.stages))
	for _, stage := range p.stages {
		names = append(names, stage.Name)
	}
	return names
}

func (p *Pipeline) upTo(stop string) []func(http.Handler) http.Handler {
	var chain []func(http.Handler) http.Handler
	for _, stage := range p.stages {
		if stage.Name == stop {
			break
		}
		chain = append(chain, stage.Wrap)
	}
	return chain
}
