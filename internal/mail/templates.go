package mail

import (
	"fmt"
	"html"
	"strings"
)

// Article is a newsletter entry.
type Article struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Category string `json:"category"`
	URL      string `json:"url"`
	Image    string `json:"image,omitempty"`
}

// Contact is a submitted contact form.
type Contact struct {
	Name    string
	Email   string
	Subject string
	Message string
}

const (
	WelcomeSubject = "Welkom bij de WoningSpotters nieuwsbrief!"
	accent         = "#FF7A00"
)

func writeHeader(b *strings.Builder, siteURL, title, subtitle string) {
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n</head>\n")
	b.WriteString("<body style=\"margin:0;padding:0;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Arial,sans-serif;background-color:#1a1a2e;\">\n")
	b.WriteString("<table width=\"100%\" cellpadding=\"0\" cellspacing=\"0\" style=\"background-color:#1a1a2e;padding:40px 20px;\"><tr><td align=\"center\">\n")
	b.WriteString("<table width=\"100%\" cellpadding=\"0\" cellspacing=\"0\" style=\"max-width:600px;background:#16213e;border-radius:16px;border:1px solid rgba(255,255,255,0.1);\">\n")
	b.WriteString("<tr><td style=\"padding:32px 40px 20px;text-align:center;\">\n")
	fmt.Fprintf(b, "<a href=\"%s\"><img src=\"%s/logo.svg\" alt=\"WoningSpotters\" width=\"48\" height=\"48\"></a>\n",
		html.EscapeString(siteURL), html.EscapeString(siteURL))
	fmt.Fprintf(b, "<h1 style=\"color:#ffffff;font-size:24px;margin:12px 0 8px;\">%s</h1>\n", html.EscapeString(title))
	if subtitle != "" {
		fmt.Fprintf(b, "<p style=\"color:rgba(255,255,255,0.6);font-size:15px;margin:0;\">%s</p>\n", html.EscapeString(subtitle))
	}
	b.WriteString("</td></tr>\n")
}

func writeFooter(b *strings.Builder, note, unsubscribeURL string) {
	b.WriteString("<tr><td style=\"padding:24px 40px;text-align:center;border-top:1px solid rgba(255,255,255,0.1);\">\n")
	fmt.Fprintf(b, "<p style=\"color:rgba(255,255,255,0.4);font-size:12px;margin:0 0 8px;\">%s</p>\n", html.EscapeString(note))
	if unsubscribeURL != "" {
		fmt.Fprintf(b, "<a href=\"%s\" style=\"color:#5BA3D0;font-size:12px;text-decoration:none;\">Uitschrijven</a>\n",
			html.EscapeString(unsubscribeURL))
	}
	b.WriteString("</td></tr>\n</table>\n</td></tr></table>\n</body>\n</html>\n")
}

func writeButton(b *strings.Builder, href, label string) {
	b.WriteString("<tr><td style=\"padding:0 40px 30px;text-align:center;\">\n")
	fmt.Fprintf(b, "<a href=\"%s\" style=\"display:inline-block;padding:14px 32px;background:%s;color:#ffffff;text-decoration:none;border-radius:12px;font-weight:600;\">%s</a>\n",
		html.EscapeString(href), accent, html.EscapeString(label))
	b.WriteString("</td></tr>\n")
}

// WelcomeEmail is sent after a newsletter signup.
func WelcomeEmail(siteURL, unsubscribeURL string) string {
	var b strings.Builder
	writeHeader(&b, siteURL, "Welkom bij WoningSpotters!", "Je bent succesvol aangemeld voor onze nieuwsbrief")
	b.WriteString("<tr><td style=\"padding:20px 40px;color:rgba(255,255,255,0.8);font-size:15px;line-height:1.6;\">\n")
	b.WriteString("<p>Bedankt voor je aanmelding! Vanaf nu ontvang je wekelijks het laatste nieuws over de Nederlandse woningmarkt:</p>\n")
	b.WriteString("<ul>\n<li>Actuele marktanalyses en prijsontwikkelingen</li>\n<li>Nieuwe regelgeving en wetgeving</li>\n")
	b.WriteString("<li>Tips voor kopers en huurders</li>\n<li>Nieuwbouwprojecten in jouw regio</li>\n</ul>\n")
	b.WriteString("</td></tr>\n")
	writeButton(&b, siteURL, "Ga naar WoningSpotters")
	writeFooter(&b, "Je ontvangt deze e-mail omdat je je hebt aangemeld voor de WoningSpotters nieuwsbrief.", unsubscribeURL)
	return b.String()
}

// NewsletterEmail renders a digest of articles.
func NewsletterEmail(siteURL, subject string, articles []Article, unsubscribeURL string) string {
	var b strings.Builder
	writeHeader(&b, siteURL, subject, "Het laatste woningmarktnieuws")
	b.WriteString("<tr><td style=\"padding:0 40px;\">\n<table width=\"100%\" cellpadding=\"0\" cellspacing=\"0\">\n")
	for _, a := range articles {
		b.WriteString("<tr><td style=\"padding:16px 0;border-bottom:1px solid rgba(255,255,255,0.1);\">\n")
		if a.Image != "" {
			fmt.Fprintf(&b, "<img src=\"%s\" alt=\"%s\" width=\"120\" height=\"80\" style=\"border-radius:8px;float:left;margin-right:16px;\">\n",
				html.EscapeString(a.Image), html.EscapeString(a.Title))
		}
		fmt.Fprintf(&b, "<span style=\"padding:2px 8px;background:rgba(255,122,0,0.2);color:%s;font-size:11px;border-radius:4px;\">%s</span>\n",
			accent, html.EscapeString(a.Category))
		fmt.Fprintf(&b, "<h3 style=\"font-size:16px;margin:6px 0;\"><a href=\"%s\" style=\"color:#ffffff;text-decoration:none;\">%s</a></h3>\n",
			html.EscapeString(a.URL), html.EscapeString(a.Title))
		fmt.Fprintf(&b, "<p style=\"color:rgba(255,255,255,0.6);font-size:13px;margin:0;\">%s</p>\n", html.EscapeString(a.Excerpt))
		b.WriteString("</td></tr>\n")
	}
	b.WriteString("</table>\n</td></tr>\n")
	writeButton(&b, siteURL+"/nieuws", "Meer nieuws lezen")
	writeFooter(&b, "Je ontvangt deze e-mail omdat je bent aangemeld voor de WoningSpotters nieuwsbrief.", unsubscribeURL)
	return b.String()
}

// ContactNotification goes to the support inbox.
func ContactNotification(siteURL string, c Contact) string {
	var b strings.Builder
	writeHeader(&b, siteURL, "Nieuw contactformulier", c.Subject)
	b.WriteString("<tr><td style=\"padding:20px 40px;color:rgba(255,255,255,0.8);font-size:14px;line-height:1.6;\">\n")
	fmt.Fprintf(&b, "<p><strong>Naam:</strong> %s</p>\n", html.EscapeString(c.Name))
	fmt.Fprintf(&b, "<p><strong>E-mail:</strong> <a href=\"mailto:%s\" style=\"color:%s;\">%s</a></p>\n",
		html.EscapeString(c.Email), accent, html.EscapeString(c.Email))
	fmt.Fprintf(&b, "<p><strong>Onderwerp:</strong> %s</p>\n", html.EscapeString(c.Subject))
	fmt.Fprintf(&b, "<p style=\"white-space:pre-wrap;\">%s</p>\n", html.EscapeString(c.Message))
	b.WriteString("</td></tr>\n")
	writeFooter(&b, "Verzonden via het contactformulier op woningspotters.nl", "")
	return b.String()
}

// ContactConfirmation goes to the person who filled in the form.
func ContactConfirmation(siteURL string, c Contact) string {
	var b strings.Builder
	writeHeader(&b, siteURL, "Bedankt voor je bericht!", "We hebben je bericht in goede orde ontvangen")
	b.WriteString("<tr><td style=\"padding:20px 40px;color:rgba(255,255,255,0.8);font-size:15px;line-height:1.6;\">\n")
	fmt.Fprintf(&b, "<p>Hoi %s,</p>\n", html.EscapeString(c.Name))
	b.WriteString("<p>Bedankt voor je bericht. We reageren doorgaans binnen 1-2 werkdagen.</p>\n")
	fmt.Fprintf(&b, "<p><strong>Onderwerp:</strong> %s</p>\n", html.EscapeString(c.Subject))
	fmt.Fprintf(&b, "<p style=\"white-space:pre-wrap;color:rgba(255,255,255,0.6);\">%s</p>\n", html.EscapeString(c.Message))
	b.WriteString("</td></tr>\n")
	writeButton(&b, siteURL, "Terug naar WoningSpotters")
	writeFooter(&b, "Dit is een automatisch bericht. Je hoeft hier niet op te antwoorden.", "")
	return b.String()
}
