// Package forms wraps the Google Forms v1 API for form structure, quiz
// settings, and response retrieval.
package forms
