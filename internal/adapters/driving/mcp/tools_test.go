package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

func newTestServer(t *testing.T, users *mockUserService, onboarding *mockOnboardingService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Users: users, Onboarding: onboarding})
	require.NoError(t, err)
	return server
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServer_handleListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("returns raw users json", func(t *testing.T) {
		users := &mockUserService{users: json.RawMessage(`{"users":[]}`)}
		server := newTestServer(t, users, &mockOnboardingService{})

		result, _, err := server.handleListUsers(ctx, nil, ListUsersInput{})

		require.NoError(t, err)
		assert.JSONEq(t, `{"users":[]}`, textOf(t, result))
	})

	t.Run("returns error on failure", func(t *testing.T) {
		users := &mockUserService{err: domain.ErrMissingCredentials}
		server := newTestServer(t, users, &mockOnboardingService{})

		_, _, err := server.handleListUsers(ctx, nil, ListUsersInput{})

		assert.ErrorIs(t, err, domain.ErrMissingCredentials)
	})
}

func TestServer_handleListUsersWithRoles(t *testing.T) {
	users := &mockUserService{withRoles: json.RawMessage(`[{"role":"admin"}]`)}
	server := newTestServer(t, users, &mockOnboardingService{})

	result, _, err := server.handleListUsersWithRoles(context.Background(), nil, ListUsersInput{})

	require.NoError(t, err)
	assert.JSONEq(t, `[{"role":"admin"}]`, textOf(t, result))
}

func TestServer_handleOnboardAWS(t *testing.T) {
	ctx := context.Background()

	t.Run("passes request and maps result", func(t *testing.T) {
		onboarding := &mockOnboardingService{result: &domain.OnboardingResult{
			Record: domain.OnboardingRecord{ID: "rec-1", Status: domain.OnboardingSucceeded},
			JSON:   json.RawMessage(`{"ok":true}`),
		}}
		server := newTestServer(t, &mockUserService{}, onboarding)

		input := OnboardAWSInput{AccountID: "123456789012", AccountName: "prod", BucketRegion: "eu-west-1"}
		_, output, err := server.handleOnboardAWS(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "123456789012", onboarding.lastAWS.AccountID)
		assert.Equal(t, "prod", onboarding.lastAWS.AccountName)
		assert.Equal(t, "eu-west-1", onboarding.lastAWS.BucketRegion)
		assert.Equal(t, "rec-1", output.RecordID)
		assert.Equal(t, domain.OnboardingSucceeded, output.Status)
		raw, ok := output.Response.(json.RawMessage)
		require.True(t, ok)
		assert.JSONEq(t, `{"ok":true}`, string(raw))
	})

	t.Run("returns service error", func(t *testing.T) {
		onboarding := &mockOnboardingService{err: errors.New("boom")}
		server := newTestServer(t, &mockUserService{}, onboarding)

		_, _, err := server.handleOnboardAWS(ctx, nil, OnboardAWSInput{AccountID: "1", AccountName: "a"})

		assert.EqualError(t, err, "boom")
	})
}

func TestServer_handleOnboardMSP(t *testing.T) {
	ctx := context.Background()

	t.Run("parses account type and reports script", func(t *testing.T) {
		onboarding := &mockOnboardingService{result: &domain.OnboardingResult{
			Record:     domain.OnboardingRecord{ID: "rec-2", Status: domain.OnboardingSucceeded},
			Script:     "#!/bin/sh",
			ScriptPath: "/out/prod_123/setup.sh",
		}}
		server := newTestServer(t, &mockUserService{}, onboarding)

		input := OnboardMSPInput{
			AccountID:            "123",
			AccountName:          "prod",
			AccountType:          "1",
			ResellerCustomerName: "Customer A",
			CustomerSelfManaged:  true,
		}
		_, output, err := server.handleOnboardMSP(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, domain.AccountTypeDedicated, onboarding.lastMSP.AccountType)
		assert.Equal(t, "Customer A", onboarding.lastMSP.ResellerCustomerName)
		assert.True(t, onboarding.lastMSP.CustomerSelfManaged)
		assert.Equal(t, "123", onboarding.lastMSP.AccountID)
		assert.Equal(t, "/out/prod_123/setup.sh", output.ScriptPath)
		assert.Nil(t, output.Response)
	})

	t.Run("rejects unknown account type", func(t *testing.T) {
		onboarding := &mockOnboardingService{}
		server := newTestServer(t, &mockUserService{}, onboarding)

		_, _, err := server.handleOnboardMSP(ctx, nil, OnboardMSPInput{AccountType: "both"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, onboarding.lastMSP.AccountID)
	})
}

func TestServer_handleHistory(t *testing.T) {
	ctx := context.Background()
	records := []domain.OnboardingRecord{
		{ID: "b", CreatedAt: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "a", CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	t.Run("default limit", func(t *testing.T) {
		onboarding := &mockOnboardingService{records: records}
		server := newTestServer(t, &mockUserService{}, onboarding)

		_, output, err := server.handleHistory(ctx, nil, HistoryInput{})

		require.NoError(t, err)
		assert.Equal(t, defaultHistoryLimit, onboarding.lastLimit)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "b", output.Records[0].ID)
		assert.Equal(t, "2024-05-02T00:00:00Z", output.Records[0].CreatedAt)
	})

	t.Run("explicit limit and empty history", func(t *testing.T) {
		onboarding := &mockOnboardingService{}
		server := newTestServer(t, &mockUserService{}, onboarding)

		_, output, err := server.handleHistory(ctx, nil, HistoryInput{Limit: 5})

		require.NoError(t, err)
		assert.Equal(t, 5, onboarding.lastLimit)
		assert.NotNil(t, output.Records)
		assert.Zero(t, output.Count)
	})
}
