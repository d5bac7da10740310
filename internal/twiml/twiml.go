// Package twiml renders the XML control envelopes that drive the telephony
// provider's call handling. Every webhook response is exactly one
// well-formed <Response> document; all user-authored text passes through
// encoding/xml so markup characters are escaped, never interpreted.
package twiml

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Say speaks text to the caller.
type Say struct {
	XMLName xml.Name `xml:"Say"`
	Voice   string   `xml:"voice,attr,omitempty"`
	Text    string   `xml:",chardata"`
}

// Play plays a recorded audio file.
type Play struct {
	XMLName xml.Name `xml:"Play"`
	URL     string   `xml:",chardata"`
}

// Pause holds the line silently.
type Pause struct {
	XMLName xml.Name `xml:"Pause"`
	Length  int      `xml:"length,attr,omitempty"`
}

// Gather collects DTMF digits and posts them to Action.
type Gather struct {
	XMLName   xml.Name `xml:"Gather"`
	Action    string   `xml:"action,attr"`
	Method    string   `xml:"method,attr,omitempty"`
	NumDigits int      `xml:"numDigits,attr,omitempty"`
	Timeout   int      `xml:"timeout,attr,omitempty"`
	Say       *Say     `xml:"Say,omitempty"`
}

// Number is one destination leg inside a Dial.
type Number struct {
	XMLName xml.Name `xml:"Number"`
	Text    string   `xml:",chardata"`
}

// Dial bridges the call to one or more destination numbers. Strategy is
// pass-through ring configuration for the provider; the renderer only
// serializes it.
type Dial struct {
	XMLName  xml.Name `xml:"Dial"`
	Timeout  int      `xml:"timeout,attr,omitempty"`
	CallerID string   `xml:"callerId,attr,omitempty"`
	Strategy string   `xml:"strategy,attr,omitempty"`
	Numbers  []Number `xml:"Number"`
}

// Sms sends a text message.
type Sms struct {
	XMLName xml.Name `xml:"Sms"`
	To      string   `xml:"to,attr,omitempty"`
	From    string   `xml:"from,attr,omitempty"`
	Body    string   `xml:",chardata"`
}

// Redirect transfers control to another webhook URL.
type Redirect struct {
	XMLName xml.Name `xml:"Redirect"`
	Method  string   `xml:"method,attr,omitempty"`
	URL     string   `xml:",chardata"`
}

// Hangup terminates the call.
type Hangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

// Response is the envelope returned to the provider. Verbs render in the
// order they were appended.
type Response struct {
	verbs []any
}

// New creates an empty response envelope.
func New() *Response {
	return &Response{}
}

// Say appends a spoken-text directive.
func (r *Response) Say(text string) *Response {
	r.verbs = append(r.verbs, Say{Text: text})
	return r
}

// SayVoice appends a spoken-text directive with an explicit voice.
func (r *Response) SayVoice(text, voice string) *Response {
	r.verbs = append(r.verbs, Say{Text: text, Voice: voice})
	return r
}

// Play appends an audio-playback directive.
func (r *Response) Play(url string) *Response {
	r.verbs = append(r.verbs, Play{URL: url})
	return r
}

// Pause appends a silent hold of the given length in seconds.
func (r *Response) Pause(seconds int) *Response {
	r.verbs = append(r.verbs, Pause{Length: seconds})
	return r
}

// Gather appends a digit-collection directive.
func (r *Response) Gather(g Gather) *Response {
	r.verbs = append(r.verbs, g)
	return r
}

// Dial appends a call-bridging directive.
func (r *Response) Dial(d Dial) *Response {
	r.verbs = append(r.verbs, d)
	return r
}

// Sms appends a text-message directive.
func (r *Response) Sms(s Sms) *Response {
	r.verbs = append(r.verbs, s)
	return r
}

// Redirect appends a POST redirect to another callback URL.
func (r *Response) Redirect(url string) *Response {
	r.verbs = append(r.verbs, Redirect{Method: "POST", URL: url})
	return r
}

// Hangup appends a call-termination directive.
func (r *Response) Hangup() *Response {
	r.verbs = append(r.verbs, Hangup{})
	return r
}

// Len returns the number of appended verbs.
func (r *Response) Len() int {
	return len(r.verbs)
}

// MarshalXML writes the <Response> element with its verbs in order.
func (r *Response) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "Response"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, v := range r.verbs {
		if err := e.Encode(v); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// Render serializes the envelope with the XML declaration header.
func (r *Response) Render() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encoding response envelope: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("closing response encoder: %w", err)
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// String renders the envelope, or an empty string if rendering fails.
// Rendering only fails on marshalling bugs, not on user input.
func (r *Response) String() string {
	b, err := r.Render()
	if err != nil {
		return ""
	}
	return string(b)
}
