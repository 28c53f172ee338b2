// Package reconciler applies the required-action flag across a resolved
// target set, one read-modify-write cycle per account.
package reconciler

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kcutil/otpsweep/actions"
	"github.com/kcutil/otpsweep/directory"
	"github.com/kcutil/otpsweep/faults"
)

// Driver walks the target set and reconciles each account exactly once.
// A failing account never aborts the run; its outcome is tallied and the
// loop moves on.
type Driver struct {
	Directory directory.Service

	// Action is the required-action tag to enforce.
	Action string

	// Out receives per-account narration. Nil discards it.
	Out io.Writer

	// Workers bounds concurrent account processing. Values below 2 keep the
	// strictly sequential behavior. The target set holds each account at
	// most once, so no two workers ever race on the same account.
	Workers int

	// DryRun resolves and fetches but never writes; accounts that would be
	// updated are still counted as applied.
	DryRun bool
}

// Run reconciles every account in targetSet and returns the run summary.
// The target set is never re-resolved mid-run.
func (d *Driver) Run(ctx context.Context, targetSet []directory.UserRef) Summary {
	summary := Summary{Targeted: len(targetSet)}

	if d.Workers > 1 {
		d.runParallel(ctx, targetSet, &summary)
		return summary
	}

	for _, target := range targetSet {
		outcome, err := d.reconcile(ctx, target)
		summary.record(target, outcome, err)
		d.narrate(target, outcome, err)
	}
	return summary
}

func (d *Driver) runParallel(ctx context.Context, targetSet []directory.UserRef, summary *Summary) {
	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(d.Workers)

	for _, target := range targetSet {
		group.Go(func() error {
			outcome, err := d.reconcile(groupCtx, target)

			mu.Lock()
			summary.record(target, outcome, err)
			d.narrate(target, outcome, err)
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()
}

func (d *Driver) reconcile(ctx context.Context, target directory.UserRef) (Outcome, error) {
	user, err := d.Directory.GetUser(ctx, target.ID)
	if err != nil {
		if faults.IsCategory(err, faults.NotFoundError) {
			return OutcomeNotFound, err
		}
		return OutcomeFetchFailed, err
	}

	merged, changed := actions.Merge(user.RequiredActions, d.Action)
	if !changed {
		return OutcomeSkipped, nil
	}
	if d.DryRun {
		return OutcomeApplied, nil
	}

	if err := d.Directory.UpdateRequiredActions(ctx, target.ID, merged); err != nil {
		return OutcomeUpdateFailed, err
	}
	return OutcomeApplied, nil
}

func (d *Driver) narrate(target directory.UserRef, outcome Outcome, err error) {
	if d.Out == nil {
		return
	}

	switch outcome {
	case OutcomeApplied:
		if d.DryRun {
			_, _ = fmt.Fprintf(d.Out, "user %s: would add required action %s\n", target.Display, d.Action)
			return
		}
		_, _ = fmt.Fprintf(d.Out, "user %s: required action %s applied\n", target.Display, d.Action)
	case OutcomeSkipped:
		_, _ = fmt.Fprintf(d.Out, "user %s: required action %s already present\n", target.Display, d.Action)
	default:
		_, _ = fmt.Fprintf(d.Out, "user %s: %s: %v\n", target.Display, outcome, err)
	}
}
