package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersFixture = `{
  "users": [{"userName": "ops@example.com"}],
  "accounts": [
    {"accountName": "Other", "accountKey": 1, "divisionId": 0},
    {"accountName": "CloudZone-MOCB", "accountKey": 18745, "divisionId": 0},
    {"accountName": "Stringly", "accountKey": "99", "divisionId": "4"}
  ]
}`

func TestFindAccount(t *testing.T) {
	acc, err := FindAccount([]byte(usersFixture), "CloudZone-MOCB")
	require.NoError(t, err)
	assert.Equal(t, "18745", acc.Key)
	assert.Equal(t, 0, acc.DivisionID)
	assert.Equal(t, "18745:0", acc.Scope().String())
}

func TestFindAccount_StringValues(t *testing.T) {
	acc, err := FindAccount([]byte(usersFixture), "Stringly")
	require.NoError(t, err)
	assert.Equal(t, "99", acc.Key)
	assert.Equal(t, 4, acc.DivisionID)
}

func TestFindAccount_NotFound(t *testing.T) {
	_, err := FindAccount([]byte(usersFixture), "Missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindAccount_NoAccounts(t *testing.T) {
	_, err := FindAccount([]byte(`{"users": []}`), "Any")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindAccount_InvalidJSON(t *testing.T) {
	_, err := FindAccount([]byte(`not json`), "Any")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
