package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageFromPath(t *testing.T) {
	cases := map[string]string{
		"app.py":       "python",
		"script.pyw":   "python",
		"index.js":     "javascript",
		"mod.mjs":      "javascript",
		"util.cjs":     "javascript",
		"main.go":      "generic",
		"notes.txt":    "generic",
		"-":            "generic",
		"no_extension": "generic",
	}
	for path, want := range cases {
		assert.Equal(t, want, languageFromPath(path), "path %q", path)
	}
}
