// Package auth owns the OAuth2 credential lifecycle for Google Workspace
// accounts: loading persisted tokens, refreshing them ahead of expiry,
// running the interactive browser consent flow, and persisting results.
//
// The Manager is the single entry point. Token retrieval never starts an
// interactive flow; consent is only reachable through Manager.Authorize so
// that headless deployments fail with a typed NoCredentialError instead of
// blocking on a browser that will never open.
//
// Credentials are persisted one file per account in the Google
// authorized-user JSON format, so files written by other Google tooling
// load unchanged. At most one server process per account is assumed;
// concurrent processes sharing a credential file are not coordinated,
// but writes are atomic so a file never tears.
package auth
