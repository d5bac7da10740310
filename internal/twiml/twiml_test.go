package twiml

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestRender_Envelope(t *testing.T) {
	body, err := New().Say("Hello").Hangup().Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	out := string(body)
	if !strings.HasPrefix(out, xml.Header) {
		t.Errorf("missing XML declaration: %s", out)
	}
	if strings.Count(out, "<Response>") != 1 || strings.Count(out, "</Response>") != 1 {
		t.Errorf("expected exactly one envelope: %s", out)
	}
}

func TestRender_VerbOrder(t *testing.T) {
	out := New().
		Say("first").
		Play("https://cdn.example.com/a.mp3").
		Pause(2).
		Redirect("/voice?node=n2").
		String()

	order := []string{"<Say>first</Say>", "<Play>", "<Pause", "<Redirect"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(out, marker)
		if idx < 0 {
			t.Fatalf("missing %s in %s", marker, out)
		}
		if idx < last {
			t.Errorf("%s rendered out of order: %s", marker, out)
		}
		last = idx
	}
}

func TestRender_EscapesUserText(t *testing.T) {
	hostile := `Press <1> & say "hello" or 'bye'`

	body, err := New().Say(hostile).Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(string(body), "<1>") {
		t.Errorf("markup characters leaked unescaped: %s", body)
	}

	// The escaped document must parse back to the original text.
	var probe struct {
		Say []struct {
			Text string `xml:",chardata"`
		} `xml:"Say"`
	}
	if err := xml.Unmarshal(body, &probe); err != nil {
		t.Fatalf("rendered envelope is not well-formed: %v\n%s", err, body)
	}
	if len(probe.Say) != 1 || probe.Say[0].Text != hostile {
		t.Errorf("round-trip mismatch: got %+v", probe.Say)
	}
}

func TestRender_EscapesURLs(t *testing.T) {
	body, err := New().Redirect("/voice?node=n2&To=%2B15550001111").Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(string(body), "node=n2&amp;To=") {
		t.Errorf("ampersand in redirect URL must be escaped: %s", body)
	}

	var probe struct {
		Redirect struct {
			Method string `xml:"method,attr"`
			URL    string `xml:",chardata"`
		} `xml:"Redirect"`
	}
	if err := xml.Unmarshal(body, &probe); err != nil {
		t.Fatalf("rendered envelope is not well-formed: %v\n%s", err, body)
	}
	if probe.Redirect.URL != "/voice?node=n2&To=%2B15550001111" {
		t.Errorf("round-trip mismatch: %q", probe.Redirect.URL)
	}
	if probe.Redirect.Method != "POST" {
		t.Errorf("redirects default to POST, got %q", probe.Redirect.Method)
	}
}

func TestRender_GatherNesting(t *testing.T) {
	out := New().Gather(Gather{
		Action:    "/voice?node=menu",
		Method:    "POST",
		NumDigits: 1,
		Timeout:   5,
		Say:       &Say{Text: "Press a digit"},
	}).String()

	gatherOpen := strings.Index(out, "<Gather")
	say := strings.Index(out, "<Say>Press a digit</Say>")
	gatherClose := strings.Index(out, "</Gather>")
	if gatherOpen < 0 || say < 0 || gatherClose < 0 || say < gatherOpen || say > gatherClose {
		t.Errorf("prompt must render inside the gather: %s", out)
	}
	for _, attr := range []string{`action="/voice?node=menu"`, `method="POST"`, `numDigits="1"`, `timeout="5"`} {
		if !strings.Contains(out, attr) {
			t.Errorf("missing attribute %s: %s", attr, out)
		}
	}
}

func TestRender_DialNumbers(t *testing.T) {
	out := New().Dial(Dial{
		Timeout:  25,
		Strategy: "sequential",
		Numbers:  []Number{{Text: "+15550000001"}, {Text: "+15550000002"}},
	}).String()

	if strings.Count(out, "<Number>") != 2 {
		t.Errorf("expected two dial legs: %s", out)
	}
	if !strings.Contains(out, `timeout="25"`) || !strings.Contains(out, `strategy="sequential"`) {
		t.Errorf("missing dial attributes: %s", out)
	}
}

func TestRender_Deterministic(t *testing.T) {
	build := func() string {
		return New().Say("hi").Redirect("/voice?node=x").String()
	}
	if build() != build() {
		t.Error("identical envelopes must render byte-identically")
	}
}

func TestLen(t *testing.T) {
	r := New()
	if r.Len() != 0 {
		t.Errorf("empty response has %d verbs", r.Len())
	}
	r.Say("a").Hangup()
	if r.Len() != 2 {
		t.Errorf("expected 2 verbs, got %d", r.Len())
	}
}
