package mock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleServer = `const express = require('express');
const app = express();
app.listen(8080);`

func TestExtractJavaScriptTaggedBlock(t *testing.T) {
	response := "Here is the server:\n```javascript\n" + sampleServer + "\n```\nEnjoy!"
	assert.Equal(t, sampleServer, ExtractJavaScript(response))

	response = "```js\n" + sampleServer + "\n```"
	assert.Equal(t, sampleServer, ExtractJavaScript(response))
}

func TestExtractJavaScriptUntaggedBlock(t *testing.T) {
	response := "Sure thing.\n```\n" + sampleServer + "\n```"
	assert.Equal(t, sampleServer, ExtractJavaScript(response))
}

func TestExtractJavaScriptRejectsNonCodeBlock(t *testing.T) {
	response := "```\njust some prose in a fence\n```\n\nconst x = 1;\nconsole.log(x);"
	assert.Equal(t, "const x = 1;\nconsole.log(x);", ExtractJavaScript(response))
}

func TestExtractJavaScriptLineSpanStopsAtProse(t *testing.T) {
	response := "const a = 1;\nconst b = 2;\n\nThis code sets up two constants."
	got := ExtractJavaScript(response)
	assert.Contains(t, got, "const a = 1;")
	assert.NotContains(t, got, "This code")
}

func TestExtractJavaScriptWholeResponseFallback(t *testing.T) {
	response := "  module.exports = {};  "
	assert.Equal(t, "module.exports = {};", ExtractJavaScript(response))
}
