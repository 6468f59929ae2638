package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestScriptTexts(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><head>
<script>var a = 1;</script>
</head><body><p>not <b>script</b></p><script>var tok = 'abc';</script></body></html>`))
	if err != nil {
		t.Fatal(err)
	}

	texts := ScriptTexts(doc)
	require.Equal(t, []string{"var a = 1;", "var tok = 'abc';"}, texts)
}

func TestGetText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<div id="x">hello <span>there</span> friend</div>`))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "hello there friend", GetText(doc.Find("#x").Nodes[0]))
	require.Equal(t, "", GetText(nil))
}
