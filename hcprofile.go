// Package hcprofile extracts healthcare-professional profiles from web pages.
// It scrapes a list of URLs into raw text, asks a large language model to copy
// the profile sections verbatim into a fixed JSON schema, and renders the
// result as a plain-text document.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, openai/, goquery/).
package hcprofile
