// Package account defines the account record kept by the user record store.
//
// An Account is a credential-like entry: a login with an optional password,
// an authentication type and a list of display tags. Accounts are serialized
// as JSON objects:
//
//	{
//	  "id": "3f9a1c0be4d27a65",
//	  "tags": [{"text": "prod"}],
//	  "type": "ldap",
//	  "login": "alice",
//	  "password": null
//	}
//
// Field values are not validated; only Type is restricted to its enum values.
package account
