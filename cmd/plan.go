package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wayfarer-labs/planner-cli/internal/model"
)

var (
	planDestination string
	planStart       string
	planEnd         string
	planPersonas    []string
	planMaxPerDay   int
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan an itinerary for a single trip",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		personas := make([]model.Persona, len(planPersonas))
		for i, p := range planPersonas {
			personas[i] = model.Persona(p)
		}

		req := model.PlanningRequest{
			Destination: planDestination,
			StartDate:   planStart,
			EndDate:     planEnd,
			Personas:    personas,
			MaxPerDay:   planMaxPerDay,
		}
		if req.MaxPerDay == 0 {
			req.MaxPerDay = cfg.Pipeline.DefaultMaxPerDay
		}
		if err := req.Validate(); err != nil {
			return err
		}

		sess, err := env.Store.CreateSession(ctx, req)
		if err != nil {
			return eris.Wrap(err, "create session")
		}
		req.SessionID = sess.ID

		state := env.Planner.Run(ctx, req)
		persistResult(ctx, env.Store, state)
		publish(ctx, env, state)

		zap.L().Info("planning complete",
			zap.String("session_id", state.SessionID),
			zap.String("status", string(state.Status)),
			zap.Int("days", len(state.Days)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	},
}

func init() {
	planCmd.Flags().StringVar(&planDestination, "destination", "", "trip destination (required)")
	planCmd.Flags().StringVar(&planStart, "start", "", "start date, YYYY-MM-DD (required)")
	planCmd.Flags().StringVar(&planEnd, "end", "", "end date, YYYY-MM-DD (required)")
	planCmd.Flags().StringSliceVar(&planPersonas, "persona", nil, "traveler persona (repeatable): photography, cafe_hopping, foodie, hiking")
	planCmd.Flags().IntVar(&planMaxPerDay, "max-per-day", 0, "max stops per day (default from config)")
	_ = planCmd.MarkFlagRequired("destination")
	_ = planCmd.MarkFlagRequired("start")
	_ = planCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(planCmd)
}
