// Package worker runs planning pipelines on a Temporal task queue so long
// trips can be planned outside the HTTP request path.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/wayfarer-labs/planner-cli/internal/model"
	"github.com/wayfarer-labs/planner-cli/internal/planner"
	"github.com/wayfarer-labs/planner-cli/internal/store"
)

// TaskQueue is the default Temporal task queue planning workflows run on.
const TaskQueue = "wayfarer-planner"

// Activities bundles the collaborators a planning activity needs. Store may
// be nil when the worker runs without persistence.
type Activities struct {
	Planner *planner.Planner
	Store   store.Store
}

// PlanItinerary executes one full pipeline run. The pipeline handles its own
// discovery retries and never returns an error, so a failed run comes back
// as a state with status "failed" rather than triggering Temporal retries.
func (a *Activities) PlanItinerary(ctx context.Context, req model.PlanningRequest) (*planner.State, error) {
	state := a.Planner.Run(ctx, req)
	if a.Store != nil {
		if err := a.persist(ctx, state); err != nil {
			zap.L().Warn("worker: persist session result",
				zap.String("session_id", state.SessionID),
				zap.Error(err),
			)
		}
	}
	return state, nil
}

func (a *Activities) persist(ctx context.Context, state *planner.State) error {
	if _, err := a.Store.GetSession(ctx, state.SessionID); err != nil {
		req := state.Request
		req.SessionID = state.SessionID
		if _, err := a.Store.CreateSession(ctx, req); err != nil {
			return eris.Wrap(err, "worker: create session")
		}
	}

	result, err := json.Marshal(state)
	if err != nil {
		return eris.Wrap(err, "worker: marshal state")
	}
	return a.Store.SetSessionResult(ctx, state.SessionID, state.Status, result)
}

// PlanItineraryWorkflow wraps one pipeline run in a single activity.
func PlanItineraryWorkflow(ctx workflow.Context, req model.PlanningRequest) (*planner.State, error) {
	opts := workflow.ActivityOptions{
		StartToCloseTimeout: 15 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			// The pipeline retries discovery internally.
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, opts)

	var a *Activities
	var state *planner.State
	if err := workflow.ExecuteActivity(ctx, a.PlanItinerary, req).Get(ctx, &state); err != nil {
		return nil, eris.Wrap(err, "worker: plan itinerary activity")
	}
	return state, nil
}

// Register attaches the planning workflow and activities to a worker.
func Register(w worker.Registry, a *Activities) {
	w.RegisterWorkflow(PlanItineraryWorkflow)
	w.RegisterActivity(a)
}

// Run blocks serving the task queue until the process is interrupted. An
// empty taskQueue falls back to the default.
func Run(c client.Client, a *Activities, taskQueue string) error {
	if taskQueue == "" {
		taskQueue = TaskQueue
	}
	w := worker.New(c, taskQueue, worker.Options{})
	Register(w, a)
	zap.L().Info("worker: serving task queue", zap.String("task_queue", taskQueue))
	return eris.Wrap(w.Run(worker.InterruptCh()), "worker: run")
}
