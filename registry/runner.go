package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/jsonc"
)

// Payload is the JSON-style document threaded through pipeline steps.
type Payload map[string]any

// ToolFunc executes one tool against the current payload and returns the
// payload for the next step.
type ToolFunc func(payload Payload) (Payload, error)

// Step is one pipeline entry: a tool name plus arguments merged into the
// payload before the tool runs.
type Step struct {
	Tool string  `json:"tool"`
	Args Payload `json:"args,omitempty"`
}

// Pipeline is an ordered sequence of steps.
type Pipeline struct {
	Steps []Step `json:"steps"`
}

// LoadPipeline reads a pipeline definition from a JSON or JSONC file.
func LoadPipeline(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pipeline: %w", err)
	}
	var p Pipeline
	if err := json.Unmarshal(jsonc.ToJSON(data), &p); err != nil {
		return nil, fmt.Errorf("parsing pipeline %s: %w", path, err)
	}
	if len(p.Steps) == 0 {
		return nil, fmt.Errorf("pipeline %s has no steps", path)
	}
	return &p, nil
}

// Runner executes pipelines against an index of registered tool functions.
// A Runner is stateless apart from its registrations; one Runner may execute
// many pipelines.
type Runner struct {
	index *Index
	funcs map[string]ToolFunc
}

// NewRunner creates a runner over the given index.
func NewRunner(index *Index) *Runner {
	return &Runner{index: index, funcs: make(map[string]ToolFunc)}
}

// Register binds a tool function to a name. The name must exist in the
// index; registration is how a deployment decides which indexed tools are
// actually runnable.
func (r *Runner) Register(name string, fn ToolFunc) error {
	if _, ok := r.index.Lookup(name); !ok {
		return fmt.Errorf("cannot register %q: not in tool index", name)
	}
	r.funcs[name] = fn
	return nil
}

// Execute runs every step in order, merging step args into the payload
// before each tool and replacing the payload with the tool's output after.
// The first failing step aborts the pipeline.
func (r *Runner) Execute(p *Pipeline, payload Payload) (Payload, error) {
	runID := uuid.NewString()
	log := logrus.WithField("run_id", runID)

	current := make(Payload, len(payload))
	for k, v := range payload {
		current[k] = v
	}

	for i, step := range p.Steps {
		if _, ok := r.index.Lookup(step.Tool); !ok {
			return nil, fmt.Errorf("step %d: tool %q not in index", i, step.Tool)
		}
		fn, ok := r.funcs[step.Tool]
		if !ok {
			return nil, fmt.Errorf("step %d: tool %q has no registered implementation", i, step.Tool)
		}
		for k, v := range step.Args {
			current[k] = v
		}

		start := time.Now()
		next, err := fn(current)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Tool, err)
		}
		log.Infof("step %d (%s) done in %s", i, step.Tool, time.Since(start).Round(time.Microsecond))
		current = next
	}
	return current, nil
}
