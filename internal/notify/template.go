package notify

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

const ConfirmationSubject = "thanks for joining the tech optimum waitlist"

// Content is a rendered message, independent of how it is delivered.
type Content struct {
	Subject string
	HTML    string
	Text    string
}

type confirmationData struct {
	Name string
}

var confirmationHTML = htmltemplate.Must(htmltemplate.New("confirmation.html").Parse(`<div style="background-color: #f9f9f9; padding: 20px; font-family: 'Lucida Sans', 'Lucida Sans Regular', sans-serif;">
    <div style="text-align: center;">
        <img src="https://www.techoptimum.org/text-black-transparent.png" alt="Logo" style="width: 150px; opacity: 0.8;">
    </div>
    <div style="background-color: white; margin: 20px auto; padding: 20px; max-width: 500px; border-radius: 10px; box-shadow: 0 2px 15px rgba(0,0,0,0.1);">
        <h1 style="color: #555; font-size: 18px;">hey {{.Name}},</h1>
        <p style="font-size: 14px; color: #888; line-height: 1.5;">good news! you've made it to the tech optimum waitlist. we're stoked to have you onboard and will buzz you when we launch. till then, keep it cool!</p>
        <p style="font-size: 14px; color: #888; line-height: 1.5;">stay curious and thanks for vibing with us.</p>
        <p style="font-size: 14px; color: #888; line-height: 1.5;"><strong>peace out,</strong><br>the tech optimum crew</p>
    </div>
    <div style="color: #888; font-size: 12px; text-align: center; padding: 20px;">
        <p>tech optimum<br>some place on earth</p>
        <p>for questions, <a href="mailto:team@techoptimum.org" style="color: #666; text-decoration: none;">drop us an email</a></p>
    </div>
</div>
`))

var confirmationText = texttemplate.Must(texttemplate.New("confirmation.txt").Parse(`hey {{.Name}},

good news! you've made it to the tech optimum waitlist. we're stoked to have you onboard and will buzz you when we launch. till then, keep it cool!

stay curious and thanks for vibing with us.

peace out,
the tech optimum crew

for questions, drop us an email at team@techoptimum.org
`))

// RenderConfirmation fills the fixed confirmation template. The name is the only input.
func RenderConfirmation(name string) (Content, error) {
	data := confirmationData{Name: strings.TrimSpace(name)}

	var html bytes.Buffer
	if err := confirmationHTML.Execute(&html, data); err != nil {
		return Content{}, err
	}

	var text bytes.Buffer
	if err := confirmationText.Execute(&text, data); err != nil {
		return Content{}, err
	}

	return Content{
		Subject: ConfirmationSubject,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
