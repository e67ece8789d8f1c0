// Package accounts provides the account store: an in-memory list of
// account records mirrored into a persistent key-value slot.
//
// The store is constructed once by the hosting application and passed to
// whatever needs it. Every mutating call updates the in-memory list and
// then writes the whole list back to the slot before returning, so the
// slot always matches memory after a successful call:
//
//	slot := file.NewInDir(dir)
//	store := accounts.Open(slot, accounts.WithLogger(log))
//
//	acct, err := store.AddEmpty()
//	if err != nil {
//	    // the account was added in memory but could not be saved
//	}
//	acct.Login = "alice"
//	err = store.Update(acct)
//
// Loading never fails: a missing value leaves the list empty, and an
// unreadable one is discarded.
package accounts
