// Package cascade runs multi-step deletes as ordered sequences without a
// transaction. A failing step stops the sequence; steps that already ran stay
// committed and are reported in a PartialError.
package cascade

import (
	"context"
	"fmt"
	"strings"

	"church-app-go/internal/domain/images"
)

type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

type PartialError struct {
	Entity    string
	ID        string
	Completed []string
	Failed    string
	Err       error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("delete %s %s: step %q failed after [%s]: %v",
		e.Entity, e.ID, e.Failed, strings.Join(e.Completed, ", "), e.Err)
}

func (e *PartialError) Unwrap() error {
	return e.Err
}

// Run executes steps in order. A failure on the first step is returned as a
// plain wrapped error because nothing was changed.
func Run(ctx context.Context, entity, id string, steps []Step) error {
	completed := make([]string, 0, len(steps))
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return fail(entity, id, step.Name, completed, err)
		}
		if err := step.Run(ctx); err != nil {
			return fail(entity, id, step.Name, completed, err)
		}
		completed = append(completed, step.Name)
	}
	return nil
}

func fail(entity, id, step string, completed []string, err error) error {
	if len(completed) == 0 {
		return fmt.Errorf("delete %s %s: %s: %w", entity, id, step, err)
	}
	return &PartialError{Entity: entity, ID: id, Completed: completed, Failed: step, Err: err}
}

// ImageCleaner destroys an entity image and records the outcome. It never
// fails the cascade.
type ImageCleaner interface {
	Cleanup(ctx context.Context, publicID string, report *images.CleanupReport)
}

// Report is what a delete did besides removing the target row.
type Report struct {
	FamiliesDeleted int64                `json:"familiesDeleted"`
	MembersDeleted  int64                `json:"membersDeleted"`
	Images          images.CleanupReport `json:"images"`
}
