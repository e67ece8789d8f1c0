package accounts

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/GhCauther101/UserRecordStore/pkg/account"
	"github.com/GhCauther101/UserRecordStore/pkg/audit"
	"github.com/GhCauther101/UserRecordStore/pkg/logging"
	"github.com/GhCauther101/UserRecordStore/pkg/storage"
)

// StorageKey is the slot key holding the serialized account list
const StorageKey = "accounts"

// maxIDAttempts bounds id regeneration on collision
const maxIDAttempts = 8

var (
	// ErrAccountNotFound is returned by Edit when no account has the given id
	ErrAccountNotFound = errors.New("account not found")

	// ErrIDExhausted is returned when no unused id could be generated
	ErrIDExhausted = errors.New("could not generate an unused account id")
)

// Auditor receives an event for every store mutation
type Auditor interface {
	Log(event audit.Event)
}

// Option configures a Store
type Option func(*Store)

// WithKey overrides the slot key (default "accounts")
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used for load recovery and save failures
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) { s.log = log }
}

// WithAuditor records mutations with the given auditor
func WithAuditor(a Auditor) Option {
	return func(s *Store) { s.auditor = a }
}

// WithIDGenerator replaces RandomID
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) { s.newID = gen }
}

// Store keeps the account list in memory and mirrors it into a storage slot
type Store struct {
	mu       sync.Mutex
	slot     storage.Storage
	key      string
	accounts []account.Account
	newID    IDGenerator
	log      logrus.FieldLogger
	auditor  Auditor
}

// New creates a store with an empty list. Call Load to read the slot.
func New(slot storage.Storage, opts ...Option) *Store {
	s := &Store{
		slot:     slot,
		key:      StorageKey,
		accounts: []account.Account{},
		newID:    RandomID,
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("key", s.key)
	return s
}

// Open creates a store and loads it from the slot.
func Open(slot storage.Storage, opts ...Option) *Store {
	s := New(slot, opts...)
	s.Load()
	return s
}

// Key returns the slot key
func (s *Store) Key() string {
	return s.key
}

// Load replaces the in-memory list with the one stored in the slot.
//
// When the slot holds no value (or an empty string) the list is left as it is. When the value
// cannot be read or parsed the list is reset to empty. Errors are logged,
// never returned.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.slot.GetItem(s.key)
	if err != nil {
		s.reset(fmt.Errorf("failed to read slot: %w", err))
		return
	}
	if !ok || raw == "" {
		s.log.Debug("no stored accounts")
		return
	}

	list, err := account.Decode(raw)
	if err != nil {
		s.reset(err)
		return
	}

	s.accounts = list
	s.log.WithField("count", len(list)).Debug("loaded accounts")
}

func (s *Store) reset(cause error) {
	s.accounts = []account.Account{}
	s.log.WithError(cause).Warn("discarding stored accounts")
	s.audit(audit.ResetEvent{Key: s.key, Reason: cause.Error()})
}

// Accounts returns a copy of the account list in order
func (s *Store) Accounts() []account.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	return account.CloneList(s.accounts)
}

// Len returns the number of accounts
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.accounts)
}

// Get returns a copy of the first account with the given id
func (s *Store) Get(id string) (account.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.accounts[i].Clone(), true
	}
	return account.Account{}, false
}

// AddEmpty appends a new local account with a fresh id and saves.
// The returned account is valid even when the save fails.
func (s *Store) AddEmpty() (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.unusedID()
	if err != nil {
		return account.Account{}, err
	}

	acct := account.NewEmpty(id)
	s.accounts = append(s.accounts, acct)

	err = s.persist()
	s.auditMutation(audit.OperationCreate, acct, err)
	return acct.Clone(), err
}

// Remove drops every account with the given id and saves.
// An unknown id leaves the list untouched but the slot is still rewritten.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]account.Account, 0, len(s.accounts))
	var removed *account.Account
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			removed = &s.accounts[i]
			continue
		}
		kept = append(kept, s.accounts[i])
	}
	if removed == nil {
		return s.persist()
	}
	gone := *removed
	s.accounts = kept

	err := s.persist()
	s.auditMutation(audit.OperationRemove, gone, err)
	return err
}

// Update replaces the account with the same id in place, or appends it
// when no account has that id. Then it saves.
func (s *Store) Update(acct account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct = acct.Clone()
	if i := s.indexOf(acct.ID); i >= 0 {
		s.accounts[i] = acct
	} else {
		s.accounts = append(s.accounts, acct)
	}

	err := s.persist()
	s.auditMutation(audit.OperationUpdate, acct, err)
	return err
}

// Edit applies fn to the stored account with the given id in place and saves.
// It returns ErrAccountNotFound when there is no such account.
func (s *Store) Edit(id string, fn func(*account.Account)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}

	fn(&s.accounts[i])
	if s.accounts[i].Tags == nil {
		s.accounts[i].Tags = []account.Tag{}
	}

	err := s.persist()
	s.auditMutation(audit.OperationEdit, s.accounts[i], err)
	return err
}

// Purge empties the list and deletes the stored value from the slot.
// Loading an absent value yields an empty list, so the slot and the list still agree.
func (s *Store) Purge() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = []account.Account{}
	if err := s.slot.RemoveItem(s.key); err != nil {
		s.log.WithError(err).Error("failed to purge accounts")
		return fmt.Errorf("failed to purge accounts: %w", err)
	}
	s.log.Info("purged stored accounts")
	return nil
}

// Persist writes the whole list to the slot, overwriting the stored value.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist()
}

func (s *Store) persist() error {
	raw, err := account.Encode(s.accounts)
	if err != nil {
		s.log.WithError(err).Error("failed to save accounts")
		return err
	}
	if err := s.slot.SetItem(s.key, raw); err != nil {
		s.log.WithError(err).Error("failed to save accounts")
		return fmt.Errorf("failed to save accounts: %w", err)
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) unusedID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("failed to generate account id: %w", err)
		}
		if id != "" && s.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

func (s *Store) auditMutation(operation string, acct account.Account, err error) {
	event := audit.AccountEvent{
		Operation: operation,
		AccountID: acct.ID,
		Login:     acct.Login,
		Type:      acct.Type.String(),
		Key:       s.key,
		Success:   err == nil,
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	s.audit(event)
}

func (s *Store) audit(event audit.Event) {
	if s.auditor != nil {
		s.auditor.Log(event)
	}
}
