package account

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidType is returned by Encode for an account whose type is not a known Type
var ErrInvalidType = errors.New("invalid account type")

// Tag is a display label attached to an account
type Tag struct {
	Text string `json:"text" yaml:"text"`
}

// Account is a single stored credential record
type Account struct {
	ID       string  `json:"id" yaml:"id"`
	Tags     []Tag   `json:"tags" yaml:"tags"`
	Type     Type    `json:"type" yaml:"type"`
	Login    string  `json:"login" yaml:"login"`
	Password *string `json:"password" yaml:"password"`
}

// NewEmpty returns a local account with the given id and no login, password or tags.
func NewEmpty(id string) Account {
	return Account{
		ID:       id,
		Tags:     []Tag{},
		Type:     TypeLocal,
		Login:    "",
		Password: Password(""),
	}
}

// Password returns a pointer to s, for use as Account.Password.
func Password(s string) *string {
	return &s
}

// HasPassword reports whether the password is set (an empty string counts as set).
func (a Account) HasPassword() bool {
	return a.Password != nil
}

// Clone returns a deep copy of the account. A nil tag list becomes an empty one.
func (a Account) Clone() Account {
	c := a
	c.Tags = make([]Tag, len(a.Tags))
	copy(c.Tags, a.Tags)
	if a.Password != nil {
		c.Password = Password(*a.Password)
	}
	return c
}

// HasTag reports whether the account carries a tag with the given text.
func (a Account) HasTag(text string) bool {
	for _, t := range a.Tags {
		if t.Text == text {
			return true
		}
	}
	return false
}

// AddTag appends a tag unless one with the same text already exists.
func (a *Account) AddTag(text string) bool {
	if a.HasTag(text) {
		return false
	}
	a.Tags = append(a.Tags, Tag{Text: text})
	return true
}

// RemoveTag drops every tag with the given text.
func (a *Account) RemoveTag(text string) bool {
	kept := make([]Tag, 0, len(a.Tags))
	for _, t := range a.Tags {
		if t.Text != text {
			kept = append(kept, t)
		}
	}
	removed := len(kept) != len(a.Tags)
	a.Tags = kept
	return removed
}

// CloneList deep-copies a list of accounts. The result is never nil.
func CloneList(accounts []Account) []Account {
	out := make([]Account, len(accounts))
	for i, a := range accounts {
		out[i] = a.Clone()
	}
	return out
}

// Encode serializes a list of accounts to its persisted JSON form.
// Every account must carry a known Type, otherwise Decode could not read the result back.
func Encode(accounts []Account) (string, error) {
	for _, a := range accounts {
		if !a.Type.IsAType() {
			return "", fmt.Errorf("failed to encode accounts: %w %s for account %q", ErrInvalidType, a.Type, a.ID)
		}
	}
	data, err := json.Marshal(CloneList(accounts))
	if err != nil {
		return "", fmt.Errorf("failed to encode accounts: %w", err)
	}
	return string(data), nil
}

// Decode parses the persisted JSON form of a list of accounts.
// A JSON null decodes to an empty list.
func Decode(raw string) ([]Account, error) {
	var accounts []Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}
	return CloneList(accounts), nil
}
