package planner

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wayfarer-labs/planner-cli/internal/model"
	"github.com/wayfarer-labs/planner-cli/pkg/export"
	"github.com/wayfarer-labs/planner-cli/pkg/geocode"
	"github.com/wayfarer-labs/planner-cli/pkg/social"
	"github.com/wayfarer-labs/planner-cli/pkg/verify"
)

// --- Social Mock ---

type mockSocialClient struct {
	mock.Mock
}

func (m *mockSocialClient) SearchPOIs(ctx context.Context, keyword string, max int) ([]model.Candidate, error) {
	args := m.Called(ctx, keyword, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Candidate), args.Error(1)
}

func (m *mockSocialClient) RecentPosts(ctx context.Context, poiName string, n int) ([]social.Post, error) {
	args := m.Called(ctx, poiName, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]social.Post), args.Error(1)
}

// --- Judge Mock ---

type mockJudge struct {
	mock.Mock
}

func (m *mockJudge) Verify(ctx context.Context, req verify.Request) verify.Judgment {
	args := m.Called(ctx, req)
	return args.Get(0).(verify.Judgment)
}

// --- Geocoder Mock ---

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (*geocode.Point, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geocode.Point), args.Error(1)
}

// --- Exporter Mock ---

type mockExporter struct {
	mock.Mock
}

func (m *mockExporter) ExportAll(ctx context.Context, it *export.Itinerary) (*export.Artifacts, error) {
	args := m.Called(ctx, it)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*export.Artifacts), args.Error(1)
}
