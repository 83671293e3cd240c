package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/wayfarer-labs/planner-cli/internal/model"
	"github.com/wayfarer-labs/planner-cli/internal/planner"
	"github.com/wayfarer-labs/planner-cli/internal/store"
	anthropicpkg "github.com/wayfarer-labs/planner-cli/pkg/anthropic"
	"github.com/wayfarer-labs/planner-cli/pkg/export"
	"github.com/wayfarer-labs/planner-cli/pkg/geocode"
	"github.com/wayfarer-labs/planner-cli/pkg/social"
	"github.com/wayfarer-labs/planner-cli/pkg/verify"
)

// plannerEnv holds the initialized store, planner, and optional publishers
// needed by the plan/serve/worker commands.
type plannerEnv struct {
	Store   store.Store
	Planner *planner.Planner
	Notion  *export.NotionPublisher // may be nil
	FTP     *export.FTPPublisher    // may be nil
}

// Close releases resources held by the environment.
func (pe *plannerEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initStore opens the configured session store backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		if cfg.Store.DatabaseURL == "" {
			return nil, eris.New("store: postgres driver requires store.database_url")
		}
		st, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
		if err != nil {
			return nil, err
		}
		zap.L().Info("store: postgres ready")
		return st, nil
	case "", "sqlite":
		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		zap.L().Info("store: sqlite ready", zap.String("path", cfg.Store.Path))
		return st, nil
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Store.Driver)
	}
}

// initEnv sets up the store, all collaborators, and the planner. Callers
// should defer env.Close().
func initEnv(ctx context.Context) (*plannerEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	// Social content client: live gateway when configured, otherwise the
	// deterministic offline client.
	var socialClient social.Client
	if cfg.Social.GatewayURL != "" {
		socialClient = social.NewGatewayClient(cfg.Social.GatewayURL,
			social.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Social.TimeoutSecs) * time.Second}),
			social.WithRateLimit(cfg.Social.RequestsPerSec),
			social.WithRetries(cfg.Social.SearchRetries),
		)
		zap.L().Info("social: gateway client enabled", zap.String("url", cfg.Social.GatewayURL))
	} else {
		socialClient = social.NewOfflineClient()
		zap.L().Info("social: offline client enabled")
	}

	// Verification judge degrades to neutral verdicts without an API key.
	var anthropicClient anthropicpkg.Client
	if cfg.Anthropic.Key != "" {
		anthropicClient = anthropicpkg.NewClient(cfg.Anthropic.Key)
	} else {
		zap.L().Warn("anthropic key not set, verification degrades to neutral verdicts")
	}
	judge := verify.New(anthropicClient, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)

	geocoder, err := initGeocoder()
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	exporter, err := export.New(cfg.Export.OutputsDir)
	if err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "init exporter")
	}

	personas, err := initPersonas()
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	env := &plannerEnv{
		Store: st,
		Planner: planner.New(socialClient, judge, geocoder, exporter, personas,
			planner.WithLimits(planner.Limits{
				MaxCandidates: cfg.Pipeline.MaxCandidates,
				RecentPosts:   cfg.Pipeline.RecentPosts,
				MaxAttempts:   cfg.Pipeline.MaxAttempts,
			}),
		),
	}

	if cfg.Export.Notion.Token != "" && cfg.Export.Notion.DatabaseID != "" {
		env.Notion = export.NewNotionPublisher(cfg.Export.Notion.Token, cfg.Export.Notion.DatabaseID)
		zap.L().Info("notion publisher enabled")
	}
	if cfg.Export.FTP.Host != "" {
		env.FTP = export.NewFTPPublisher(cfg.Export.FTP.Host, cfg.Export.FTP.User, cfg.Export.FTP.Password, cfg.Export.FTP.Dir)
		zap.L().Info("ftp publisher enabled", zap.String("host", cfg.Export.FTP.Host))
	}

	return env, nil
}

// initGeocoder builds the geocoding cascade: optional shapefile gazetteer,
// optional Google provider, and an in-memory result cache on top.
func initGeocoder() (geocode.Geocoder, error) {
	opts := []geocode.Option{}

	if cfg.Geocode.GazetteerPath != "" {
		g := geocode.DefaultGazetteer()
		if err := geocode.LoadShapefile(g, cfg.Geocode.GazetteerPath, cfg.Geocode.NameField); err != nil {
			return nil, eris.Wrap(err, "load gazetteer shapefile")
		}
		opts = append(opts, geocode.WithGazetteer(g))
	}
	if cfg.Geocode.GoogleKey != "" {
		opts = append(opts, geocode.WithGoogleAPIKey(cfg.Geocode.GoogleKey))
		zap.L().Info("google geocoding enabled")
	}

	return geocode.NewCached(geocode.New(opts...)), nil
}

// initPersonas loads the optional persona registry override.
func initPersonas() (model.PersonaRegistry, error) {
	if cfg.Personas.Path == "" {
		return nil, nil
	}
	reg, err := model.LoadPersonaRegistry(cfg.Personas.Path)
	if err != nil {
		return nil, eris.Wrap(err, "load persona registry")
	}
	zap.L().Info("persona registry loaded",
		zap.String("path", cfg.Personas.Path),
		zap.Int("personas", len(reg)),
	)
	return reg, nil
}

// publish pushes a completed run to the configured external targets.
func publish(ctx context.Context, env *plannerEnv, state *planner.State) {
	if state.Status != model.StatusCompleted || state.Artifacts == nil {
		return
	}

	if env.Notion != nil {
		url, err := env.Notion.Publish(ctx, planner.BuildItinerary(state))
		if err != nil {
			zap.L().Warn("notion publish failed", zap.Error(err))
		} else {
			zap.L().Info("itinerary published to notion", zap.String("url", url))
		}
	}

	if env.FTP != nil {
		files := []string{state.Artifacts.DocumentPath, state.Artifacts.MapPath, state.Artifacts.WorkbookPath}
		if err := env.FTP.Publish(ctx, files...); err != nil {
			zap.L().Warn("ftp publish failed", zap.Error(err))
		} else {
			zap.L().Info("artifacts published via ftp", zap.Int("files", len(files)))
		}
	}
}

// persistResult writes a terminal run state back to the session store.
func persistResult(ctx context.Context, st store.Store, state *planner.State) {
	result, err := state.Marshal()
	if err != nil {
		zap.L().Warn("marshal run state", zap.Error(err))
		return
	}
	if err := st.SetSessionResult(ctx, state.SessionID, state.Status, result); err != nil {
		zap.L().Warn("persist run state",
			zap.String("session_id", state.SessionID),
			zap.Error(err),
		)
	}
}
