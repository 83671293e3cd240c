package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wayfarer-labs/planner-cli/internal/model"
	"github.com/wayfarer-labs/planner-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP planning API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/api/v1/plan", func(w http.ResponseWriter, req *http.Request) {
			var pr model.PlanningRequest
			if err := json.NewDecoder(req.Body).Decode(&pr); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
				return
			}
			if err := pr.Validate(); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}

			sess, err := env.Store.CreateSession(req.Context(), pr)
			if err != nil {
				zap.L().Error("create session", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "session could not be created"})
				return
			}
			pr.SessionID = sess.ID

			// Run the pipeline off the request path; the server's lifetime
			// context bounds it, not the request's.
			go func() {
				state := env.Planner.Run(ctx, pr)
				persistResult(ctx, env.Store, state)
				publish(ctx, env, state)
			}()

			writeJSON(w, http.StatusAccepted, map[string]string{
				"session_id": sess.ID,
				"status":     string(sess.Status),
			})
		})

		r.Get("/api/v1/plan/{id}", func(w http.ResponseWriter, req *http.Request) {
			sess, err := env.Store.GetSession(req.Context(), chi.URLParam(req, "id"))
			if err != nil {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
				return
			}
			writeJSON(w, http.StatusOK, sess)
		})

		r.Get("/api/v1/plans", func(w http.ResponseWriter, req *http.Request) {
			filter := store.SessionFilter{
				Status: model.Status(req.URL.Query().Get("status")),
			}
			sessions, err := env.Store.ListSessions(req.Context(), filter)
			if err != nil {
				zap.L().Error("list sessions", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "sessions could not be listed"})
				return
			}
			if sessions == nil {
				sessions = []model.Session{}
			}
			writeJSON(w, http.StatusOK, sessions)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
