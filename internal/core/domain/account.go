package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Account is an entry of the "accounts" list returned with the user list.
type Account struct {
	Name       string
	Key        string
	DivisionID int
}

// Scope returns the account scope used to derive an account api key.
func (a Account) Scope() AccountScope {
	return AccountScope{AccountKey: a.Key, DivisionID: a.DivisionID}
}

// FindAccount looks up an account by name in a user list response.
// Returns ErrNotFound if no account matches.
func FindAccount(usersJSON []byte, name string) (*Account, error) {
	var payload struct {
		Accounts []map[string]any `json:"accounts"`
	}
	dec := json.NewDecoder(bytes.NewReader(usersJSON))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding accounts: %w", err)
	}

	for _, raw := range payload.Accounts {
		accountName, _ := raw["accountName"].(string)
		if accountName != name {
			continue
		}
		key := scalarString(raw["accountKey"])
		if key == "" {
			continue
		}
		division, _ := strconv.Atoi(scalarString(raw["divisionId"]))
		return &Account{Name: accountName, Key: key, DivisionID: division}, nil
	}
	return nil, fmt.Errorf("account %q: %w", name, ErrNotFound)
}

// scalarString renders a JSON string or number as a string.
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
