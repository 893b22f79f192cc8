package mailer

import (
	"fmt"
	"net/url"
)

const welcomeSubject = "Welcome to Jamm - You're on the waitlist!"

const welcomeBodyFormat = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background: linear-gradient(135deg, #0B0B45 0%%, #1E3ECF 100%%); color: white; border-radius: 10px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #FFE066; font-size: 28px; margin: 0;">Welcome to Jamm!</h1>
    <p style="color: #ccc; font-size: 16px; margin: 10px 0;">You're officially on our waitlist</p>
  </div>

  <div style="background: rgba(255, 255, 255, 0.1); padding: 20px; border-radius: 8px; margin-bottom: 20px;">
    <h2 style="color: #FFE066; font-size: 20px; margin-top: 0;">What's Next?</h2>
    <p style="line-height: 1.6;">We're working hard to bring you the easiest way to coordinate group prayers and build community. As a waitlist member, you'll be among the first to know when we launch!</p>
  </div>

  <div style="background: rgba(255, 255, 255, 0.1); padding: 20px; border-radius: 8px; margin-bottom: 20px;">
    <h3 style="color: #FFE066; font-size: 18px; margin-top: 0;">What to Expect:</h3>
    <ul style="line-height: 1.8;">
      <li>AI-driven prayer time recommendations</li>
      <li>Easy schedule coordination with other students</li>
      <li>Building stronger faith and community</li>
      <li>Simple, user-friendly interface</li>
    </ul>
  </div>

  <div style="text-align: center; margin-top: 30px;">
    <p style="color: #ccc; font-size: 14px;">Thank you for joining our community. We can't wait to share Jamm with you!</p>
    <p style="color: #FFE066; font-size: 14px; font-weight: bold;">- The Jamm Team</p>
  </div>

  <div style="text-align: center; margin-top: 20px; padding-top: 20px; border-top: 1px solid rgba(255, 255, 255, 0.2);">
    <p style="color: #999; font-size: 12px;">
      If you no longer wish to receive updates, you can
      <a href="%s" style="color: #FFE066;">unsubscribe here</a>.
    </p>
  </div>
</div>
`

// WelcomeMessage renders the fixed welcome template with an unsubscribe link
// personalized for the recipient.
func (m *Mailer) WelcomeMessage(email string) *Message {
	unsubscribeURL := fmt.Sprintf("%s/unsubscribe?email=%s", m.baseURL, url.QueryEscape(email))

	return &Message{
		Subject: welcomeSubject,
		HTML:    fmt.Sprintf(welcomeBodyFormat, unsubscribeURL),
	}
}
