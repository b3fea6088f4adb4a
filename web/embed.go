package web

import "embed"

// TemplatesFS holds the page layout, the page bodies and the htmx fragments.
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds the stylesheet.
//go:embed static/*
var StaticFS embed.FS
