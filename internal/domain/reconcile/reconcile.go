// Package reconcile removes image-store assets that no group, family or
// member references any more. Cascade deletes do not roll back, so a failed
// step can leave such orphans behind.
package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"church-app-go/internal/domain/images"
	"church-app-go/pkg/logger"
	"github.com/samber/lo"
)

const defaultMinAge = 24 * time.Hour

type Store interface {
	images.Lister
	Destroy(ctx context.Context, publicID string) (bool, error)
}

// ReferenceSource yields the image ids stored on entity rows.
type ReferenceSource interface {
	PublicIDs(ctx context.Context) ([]string, error)
}

type Options struct {
	Folder string
	// MinAge defaults to 24h. A negative value disables the age check.
	MinAge time.Duration
	DryRun bool
}

type Report struct {
	Scanned    int      `json:"scanned"`
	Referenced int      `json:"referenced"`
	Orphaned   int      `json:"orphaned"`
	Deleted    int      `json:"deleted"`
	Failed     int      `json:"failed"`
	Orphans    []string `json:"orphans,omitempty"`
	DryRun     bool     `json:"dryRun"`
}

type Reconciler struct {
	store   Store
	sources []ReferenceSource
	opts    Options
	log     logger.Logger
	now     func() time.Time
}

func New(store Store, sources []ReferenceSource, opts Options, log logger.Logger) *Reconciler {
	opts.Folder = strings.Trim(opts.Folder, "/")
	if opts.Folder == "" {
		opts.Folder = images.DefaultFolder
	}
	if opts.MinAge < 0 {
		opts.MinAge = 0
	} else if opts.MinAge == 0 {
		opts.MinAge = defaultMinAge
	}
	return &Reconciler{store: store, sources: sources, opts: opts, log: log, now: time.Now}
}

// Run lists the folder, diffs it against stored references and destroys
// unreferenced assets older than MinAge. Young assets are skipped because an
// upload may not be attached to its entity yet.
func (r *Reconciler) Run(ctx context.Context) (Report, error) {
	report := Report{DryRun: r.opts.DryRun}

	referenced, err := r.references(ctx)
	if err != nil {
		return report, err
	}
	report.Referenced = len(referenced)

	assets, err := r.store.ListAssets(ctx, r.opts.Folder+"/")
	if err != nil {
		return report, fmt.Errorf("list assets: %w", err)
	}
	report.Scanned = len(assets)

	cutoff := r.now().Add(-r.opts.MinAge)
	orphans := lo.Filter(assets, func(a images.Asset, _ int) bool {
		if _, ok := referenced[a.PublicID]; ok {
			return false
		}
		return a.CreatedAt.IsZero() || a.CreatedAt.Before(cutoff)
	})
	report.Orphaned = len(orphans)
	report.Orphans = lo.Map(orphans, func(a images.Asset, _ int) string { return a.PublicID })

	if r.opts.DryRun {
		r.log.Info("reconcile: dry run", "scanned", report.Scanned, "orphaned", report.Orphaned)
		return report, nil
	}

	for _, asset := range orphans {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		removed, err := r.store.Destroy(ctx, asset.PublicID)
		switch {
		case err != nil:
			report.Failed++
			r.log.InternalError("reconcile: destroy failed", err, "public_id", asset.PublicID)
		case removed:
			report.Deleted++
		}
	}

	r.log.Info("reconcile: finished",
		"scanned", report.Scanned,
		"referenced", report.Referenced,
		"orphaned", report.Orphaned,
		"deleted", report.Deleted,
		"failed", report.Failed,
	)
	return report, nil
}

func (r *Reconciler) references(ctx context.Context) (map[string]struct{}, error) {
	var all []string
	for _, source := range r.sources {
		ids, err := source.PublicIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("collect references: %w", err)
		}
		all = append(all, ids...)
	}

	normalized := lo.FilterMap(all, func(id string, _ int) (string, bool) {
		if strings.TrimSpace(id) == "" {
			return "", false
		}
		return images.NormalizePublicID(r.opts.Folder, id), true
	})

	out := make(map[string]struct{}, len(normalized))
	for _, id := range lo.Uniq(normalized) {
		out[id] = struct{}{}
	}
	return out, nil
}
