// Package rendering provides functionality to render HTML resumes from embedded templates.
package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeHTML_EmptyString(t *testing.T) {
	result := EscapeHTML("")
	assert.Equal(t, "", result)
}

func TestEscapeHTML_NoSpecialCharacters(t *testing.T) {
	text := "This is normal text with no special characters"
	result := EscapeHTML(text)
	assert.Equal(t, text, result)
}

func TestEscapeHTML_Ampersand(t *testing.T) {
	result := EscapeHTML("R&D")
	assert.Equal(t, "R&amp;D", result)
}

func TestEscapeHTML_AngleBrackets(t *testing.T) {
	result := EscapeHTML("<b>Evil</b>")
	assert.Equal(t, "&lt;b&gt;Evil&lt;/b&gt;", result)
}

func TestEscapeHTML_Quotes(t *testing.T) {
	result := EscapeHTML(`say "hi" it's`)
	assert.Equal(t, "say &quot;hi&quot; it&#39;s", result)
}

func TestEscapeHTML_DoesNotDoubleEscapeEntities(t *testing.T) {
	// An existing entity is user text and must be escaped once, not interpreted
	result := EscapeHTML("&lt;")
	assert.Equal(t, "&amp;lt;", result)
}

func TestEscapeHTML_UnicodeCharacters(t *testing.T) {
	text := "résumé with unicode: α β γ •"
	result := EscapeHTML(text)
	assert.Equal(t, text, result)
}

func TestEscapeHTML_ScriptInjection(t *testing.T) {
	result := EscapeHTML(`<script>alert('x')</script>`)
	assert.Equal(t, "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;", result)
}
