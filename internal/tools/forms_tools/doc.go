// Package forms_tools registers the Google Forms MCP tools.
package forms_tools
