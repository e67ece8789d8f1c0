package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/GhCauther101/UserRecordStore/pkg/account"
	"github.com/GhCauther101/UserRecordStore/pkg/accounts"
	"github.com/GhCauther101/UserRecordStore/pkg/storage"
)

var errWritesDisabled = errors.New("slot rejects writes")

// flakySlot rejects writes while failing is set
type flakySlot struct {
	storage.Storage
	failing bool
}

func (f *flakySlot) SetItem(key, value string) error {
	if f.failing {
		return errWritesDisabled
	}
	return f.Storage.SetItem(key, value)
}

// StepsContext holds state shared between step definitions
type StepsContext struct {
	newSlot SlotFactory
	slot    *flakySlot
	cleanup func()
	store   *accounts.Store
	aliases map[string]string
	lastErr error
}

// NewStepsContext creates a new steps context
func NewStepsContext(newSlot SlotFactory) *StepsContext {
	return &StepsContext{
		newSlot: newSlot,
		aliases: make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		slot, cleanup, err := s.newSlot()
		if err != nil {
			return ctx, err
		}
		s.slot = &flakySlot{Storage: slot}
		s.cleanup = cleanup
		return ctx, nil
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		if s.cleanup != nil {
			s.cleanup()
		}
		return ctx, err
	})

	// Slot steps
	sc.Step(`^an empty slot$`, s.anEmptySlot)
	sc.Step(`^the slot holds:$`, s.theSlotHolds)
	sc.Step(`^the slot rejects writes$`, s.theSlotRejectsWrites)
	sc.Step(`^the slot accepts writes again$`, s.theSlotAcceptsWritesAgain)
	sc.Step(`^the slot matches the store$`, s.theSlotMatchesTheStore)
	sc.Step(`^the slot has no stored value$`, s.theSlotHasNoStoredValue)

	// Store steps
	sc.Step(`^the store is loaded$`, s.theStoreIsLoaded)
	sc.Step(`^I add an empty account as "([^"]*)"$`, s.iAddAnEmptyAccountAs)
	sc.Step(`^I add (\d+) empty accounts$`, s.iAddEmptyAccounts)
	sc.Step(`^I remove account "([^"]*)"$`, s.iRemoveAccount)
	sc.Step(`^I update account "([^"]*)" with login "([^"]*)"$`, s.iUpdateAccountWithLogin)
	sc.Step(`^I upsert an? (local|ldap) account "([^"]*)" with login "([^"]*)"$`, s.iUpsertAccount)
	sc.Step(`^I tag account "([^"]*)" with "([^"]*)"$`, s.iTagAccountWith)
	sc.Step(`^I persist the store$`, s.iPersistTheStore)

	// Assertion steps
	sc.Step(`^the store has (\d+) accounts?$`, s.theStoreHasAccounts)
	sc.Step(`^the account ids are "([^"]*)"$`, s.theAccountIdsAre)
	sc.Step(`^the logins are "([^"]*)"$`, s.theLoginsAre)
	sc.Step(`^account "([^"]*)" is a blank local account$`, s.accountIsABlankLocalAccount)
	sc.Step(`^account "([^"]*)" has tags "([^"]*)"$`, s.accountHasTags)
	sc.Step(`^account "([^"]*)" has no password$`, s.accountHasNoPassword)
	sc.Step(`^the operation succeeds$`, s.theOperationSucceeds)
	sc.Step(`^the operation fails$`, s.theOperationFails)
	sc.Step(`^a fresh store loaded from the slot has the same accounts$`, s.aFreshStoreHasTheSameAccounts)
}

// Slot steps

func (s *StepsContext) anEmptySlot() error {
	return nil
}

func (s *StepsContext) theSlotHolds(doc *godog.DocString) error {
	return s.slot.Storage.SetItem(accounts.StorageKey, doc.Content)
}

func (s *StepsContext) theSlotRejectsWrites() error {
	s.slot.failing = true
	return nil
}

func (s *StepsContext) theSlotAcceptsWritesAgain() error {
	s.slot.failing = false
	return nil
}

func (s *StepsContext) theSlotMatchesTheStore() error {
	raw, ok, err := s.slot.GetItem(accounts.StorageKey)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("slot has no value under %q", accounts.StorageKey)
	}

	stored, err := account.Decode(raw)
	if err != nil {
		return err
	}
	return sameAccounts(s.store.Accounts(), stored)
}

func (s *StepsContext) theSlotHasNoStoredValue() error {
	_, ok, err := s.slot.GetItem(accounts.StorageKey)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("expected no value under %q", accounts.StorageKey)
	}
	return nil
}

// Store steps

func (s *StepsContext) theStoreIsLoaded() error {
	s.store = accounts.Open(s.slot)
	return nil
}

func (s *StepsContext) iAddAnEmptyAccountAs(alias string) error {
	acct, err := s.store.AddEmpty()
	s.lastErr = err
	if acct.ID != "" {
		s.aliases[alias] = acct.ID
	}
	return nil
}

func (s *StepsContext) iAddEmptyAccounts(n int) error {
	for i := 0; i < n; i++ {
		if _, err := s.store.AddEmpty(); err != nil {
			return err
		}
	}
	return nil
}

func (s *StepsContext) iRemoveAccount(ref string) error {
	s.lastErr = s.store.Remove(s.resolve(ref))
	return nil
}

func (s *StepsContext) iUpdateAccountWithLogin(ref, login string) error {
	acct, ok := s.store.Get(s.resolve(ref))
	if !ok {
		return fmt.Errorf("account %s not found", ref)
	}
	acct.Login = login
	s.lastErr = s.store.Update(acct)
	return nil
}

func (s *StepsContext) iUpsertAccount(kind, id, login string) error {
	t, err := account.TypeString(kind)
	if err != nil {
		return err
	}
	s.lastErr = s.store.Update(account.Account{
		ID:    id,
		Tags:  []account.Tag{},
		Type:  t,
		Login: login,
	})
	return nil
}

func (s *StepsContext) iTagAccountWith(ref, text string) error {
	s.lastErr = s.store.Edit(s.resolve(ref), func(a *account.Account) {
		a.AddTag(text)
	})
	return nil
}

func (s *StepsContext) iPersistTheStore() error {
	s.lastErr = s.store.Persist()
	return nil
}

// Assertion steps

func (s *StepsContext) theStoreHasAccounts(n int) error {
	if got := s.store.Len(); got != n {
		return fmt.Errorf("expected %d accounts, got %d", n, got)
	}
	return nil
}

func (s *StepsContext) theAccountIdsAre(refs string) error {
	var want []string
	for _, ref := range splitList(refs) {
		want = append(want, s.resolve(ref))
	}

	var got []string
	for _, a := range s.store.Accounts() {
		got = append(got, a.ID)
	}
	return sameStrings("account ids", want, got)
}

func (s *StepsContext) theLoginsAre(logins string) error {
	var got []string
	for _, a := range s.store.Accounts() {
		got = append(got, a.Login)
	}
	return sameStrings("logins", splitList(logins), got)
}

func (s *StepsContext) accountIsABlankLocalAccount(ref string) error {
	acct, ok := s.store.Get(s.resolve(ref))
	if !ok {
		return fmt.Errorf("account %s not found", ref)
	}
	if acct.ID == "" {
		return fmt.Errorf("account has an empty id")
	}
	if acct.Type != account.TypeLocal {
		return fmt.Errorf("expected type local, got %s", acct.Type)
	}
	if acct.Login != "" {
		return fmt.Errorf("expected empty login, got %q", acct.Login)
	}
	if len(acct.Tags) != 0 {
		return fmt.Errorf("expected no tags, got %v", acct.Tags)
	}
	return nil
}

func (s *StepsContext) accountHasTags(ref, tags string) error {
	acct, ok := s.store.Get(s.resolve(ref))
	if !ok {
		return fmt.Errorf("account %s not found", ref)
	}
	var got []string
	for _, t := range acct.Tags {
		got = append(got, t.Text)
	}
	return sameStrings("tags", splitList(tags), got)
}

func (s *StepsContext) accountHasNoPassword(ref string) error {
	acct, ok := s.store.Get(s.resolve(ref))
	if !ok {
		return fmt.Errorf("account %s not found", ref)
	}
	if acct.HasPassword() {
		return fmt.Errorf("expected a null password")
	}
	return nil
}

func (s *StepsContext) theOperationSucceeds() error {
	if s.lastErr != nil {
		return fmt.Errorf("expected success, got %v", s.lastErr)
	}
	return nil
}

func (s *StepsContext) theOperationFails() error {
	if !errors.Is(s.lastErr, errWritesDisabled) {
		return fmt.Errorf("expected a write failure, got %v", s.lastErr)
	}
	return nil
}

func (s *StepsContext) aFreshStoreHasTheSameAccounts() error {
	fresh := accounts.Open(s.slot)
	return sameAccounts(s.store.Accounts(), fresh.Accounts())
}

func (s *StepsContext) resolve(ref string) string {
	if id, ok := s.aliases[ref]; ok {
		return id
	}
	return ref
}

// splitList splits a comma separated list, keeping empty items
func splitList(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(list, ",") {
		out = append(out, strings.TrimSpace(item))
	}
	return out
}

func sameStrings(what string, want, got []string) error {
	if strings.Join(want, ",") != strings.Join(got, ",") || len(want) != len(got) {
		return fmt.Errorf("expected %s %v, got %v", what, want, got)
	}
	return nil
}

func sameAccounts(want, got []account.Account) error {
	wantRaw, err := account.Encode(want)
	if err != nil {
		return err
	}
	gotRaw, err := account.Encode(got)
	if err != nil {
		return err
	}
	if wantRaw != gotRaw {
		return fmt.Errorf("accounts differ:\n  want %s\n  got  %s", wantRaw, gotRaw)
	}
	return nil
}
