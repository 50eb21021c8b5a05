// Package google bridges the credential manager to the Google API client
// libraries.
//
// It exposes per-account oauth2.TokenSource and *http.Client values backed by
// auth.Manager, so every service client shares the same refresh and
// persistence path. Clients are forced onto HTTP/1.1 to avoid HTTP/2 protocol
// errors seen with some Google API endpoints.
package google
