package refresh

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/i474232898/archipelago-data-aggregation/internal/freshness"
	"github.com/i474232898/archipelago-data-aggregation/internal/logger"
)

// Request selects what a Group refresh covers.
type Request struct {
	// Categories to refresh. Empty means all registered categories.
	Categories []freshness.Category
	// SubKey scopes categories that support it to one commune.
	SubKey string
	Force  bool
}

// Group runs refreshes of several categories concurrently.
type Group struct {
	order      []freshness.Category
	refreshers map[freshness.Category]Refresher
}

// NewGroup registers refreshers in the given order.
func NewGroup(refreshers ...Refresher) *Group {
	g := &Group{refreshers: make(map[freshness.Category]Refresher, len(refreshers))}
	for _, r := range refreshers {
		if _, dup := g.refreshers[r.Category()]; !dup {
			g.order = append(g.order, r.Category())
		}
		g.refreshers[r.Category()] = r
	}
	return g
}

// Categories returns the registered categories.
func (g *Group) Categories() []freshness.Category {
	return append([]freshness.Category(nil), g.order...)
}

// Refresh runs every requested category in its own goroutine and returns the
// outcomes in request order. Unknown categories are reported as failed.
func (g *Group) Refresh(ctx context.Context, req Request) []Outcome {
	cats := req.Categories
	if len(cats) == 0 {
		cats = g.order
	}

	runID := uuid.New().String()
	log := logger.WithComponent("refresh").WithField("run", runID)

	outcomes := make([]Outcome, len(cats))
	var wg sync.WaitGroup

	for i, cat := range cats {
		r, ok := g.refreshers[cat]
		if !ok {
			outcomes[i] = Outcome{RunID: runID, Category: cat, Action: ActionFailed, Error: "unknown category"}
			continue
		}

		subKey := ""
		if cat.SupportsSubKey() {
			subKey = req.SubKey
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					log.WithField("category", cat).Errorf("refresh panicked: %v", p)
					outcomes[i] = Outcome{RunID: runID, Category: cat, SubKey: subKey, Action: ActionFailed, Error: fmt.Sprint(p)}
				}
			}()

			out := r.Refresh(ctx, subKey, req.Force)
			out.RunID = runID
			outcomes[i] = out
		}()
	}
	wg.Wait()

	for _, out := range outcomes {
		entry := log.WithFields(logrus.Fields{
			"category": out.Category,
			"action":   out.Action,
			"reason":   out.Reason,
		})
		if out.SubKey != "" {
			entry = entry.WithField("sub_key", out.SubKey)
		}
		if out.Error != "" {
			entry.Warnf("refresh degraded: %s", out.Error)
			continue
		}
		entry.Debug("refresh done")
	}

	return outcomes
}
