package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driven"
)

var _ driven.PileusAPI = (*fakeAPI)(nil)

// fakeAPI records calls and returns canned responses.
type fakeAPI struct {
	mu sync.Mutex

	authCalls int
	authErr   error
	apiKey    string
	lastCreds domain.Credentials
	// onAuth runs inside Authenticate, before the response is returned.
	onAuth func()

	users      json.RawMessage
	usersCalls int
	// usersErrs is consumed one per ListUsers/ListUsersWithRoles call.
	usersErrs []error

	onboardResp    *domain.OnboardingResponse
	onboardErr     error
	onboardCalls   int
	lastAccountID  string
	lastPayload    map[string]any
	lastOnboardKey string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		apiKey:      "user:42:-1",
		users:       json.RawMessage(`{"accounts":[{"accountName":"Prod","accountKey":"9876","divisionId":2}]}`),
		onboardResp: &domain.OnboardingResponse{JSON: json.RawMessage(`{"status":"ok"}`)},
	}
}

func (f *fakeAPI) Authenticate(_ context.Context, creds domain.Credentials) (*domain.Session, error) {
	if f.onAuth != nil {
		f.onAuth()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authCalls++
	f.lastCreds = creds
	if f.authErr != nil {
		return nil, f.authErr
	}
	return &domain.Session{AuthToken: "token", APIKey: f.apiKey}, nil
}

func (f *fakeAPI) ListUsers(_ context.Context, session *domain.Session) (json.RawMessage, error) {
	return f.listUsers(session)
}

func (f *fakeAPI) ListUsersWithRoles(_ context.Context, session *domain.Session) (json.RawMessage, error) {
	return f.listUsers(session)
}

func (f *fakeAPI) listUsers(session *domain.Session) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.usersCalls++
	if session == nil {
		return nil, errors.New("no session")
	}
	if len(f.usersErrs) > 0 {
		err := f.usersErrs[0]
		f.usersErrs = f.usersErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.users, nil
}

func (f *fakeAPI) OnboardAWS(
	_ context.Context, session *domain.Session, accountID string, payload map[string]any,
) (*domain.OnboardingResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onboardCalls++
	f.lastAccountID = accountID
	f.lastPayload = payload
	f.lastOnboardKey = session.AccountAPIKey
	if f.onboardErr != nil {
		return nil, f.onboardErr
	}
	return f.onboardResp, nil
}

// fakeScripts stores scripts in memory.
type fakeScripts struct {
	saved map[string]string
	err   error
}

func (f *fakeScripts) Save(folder, script string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.saved == nil {
		f.saved = make(map[string]string)
	}
	f.saved[folder] = script
	return "/out/" + folder + "/setup.sh", nil
}

// fakeOpener records opened paths.
type fakeOpener struct {
	opened []string
}

func (f *fakeOpener) Open(path string) error {
	f.opened = append(f.opened, path)
	return nil
}
