package controllers

import (
	"fmt"
	"log"
	"strings"

	"nonprofit-backoffice-api/config"
	"nonprofit-backoffice-api/models"
)

// sendMailFunc is swapped out in tests.
var sendMailFunc = config.SendMail

func orgName() string {
	return "Helping Hands Foundation"
}

func applicationTypeLabel(applicationType string) string {
	if applicationType == models.ApplicationTypeScholarship {
		return "scholarship"
	}
	return "membership"
}

// sendApplicationConfirmation emails the applicant after a successful
// submission. Best-effort: errors are logged only.
func sendApplicationConfirmation(app models.Application) {
	label := applicationTypeLabel(app.ApplicationType)
	subject := fmt.Sprintf("We received your %s application", label)

	paragraphs := []string{
		fmt.Sprintf("Dear %s %s,", app.FirstName, app.LastName),
		fmt.Sprintf("Thank you for your %s application to %s. Our team will review it and get back to you.", label, orgName()),
	}

	meta := []emailMetaItem{
		{Label: "Reference", Value: fmt.Sprintf("APP-%d", app.ApplicationID)},
		{Label: "Status", Value: strings.ReplaceAll(app.Status, "_", " ")},
	}
	if app.SubmittedAt != nil {
		meta = append(meta, emailMetaItem{Label: "Submitted", Value: app.SubmittedAt.Format("Jan 2, 2006 15:04")})
	}
	if len(app.Attachments) > 0 {
		meta = append(meta, emailMetaItem{Label: "Documents", Value: fmt.Sprintf("%d", len(app.Attachments))})
	}

	footer := fmt.Sprintf("This message was sent by %s. Please do not reply to this email.", orgName())
	html := buildEmailTemplate(subject, paragraphs, meta, "", "", footer)

	if err := sendMailFunc([]string{app.Email}, subject, html); err != nil {
		log.Printf("failed to send confirmation email for application %d: %v", app.ApplicationID, err)
	}
}

// sendMembershipApproved emails a newly approved member.
func sendMembershipApproved(app models.Application) {
	subject := fmt.Sprintf("Welcome to %s", orgName())

	paragraphs := []string{
		fmt.Sprintf("Dear %s %s,", app.FirstName, app.LastName),
		"Great news! Your membership application has been approved.",
		"We look forward to seeing you at our upcoming events.",
	}

	meta := []emailMetaItem{
		{Label: "Reference", Value: fmt.Sprintf("APP-%d", app.ApplicationID)},
		{Label: "Status", Value: "approved"},
	}

	footer := fmt.Sprintf("This message was sent by %s. Please do not reply to this email.", orgName())
	html := buildEmailTemplate(subject, paragraphs, meta, "", "", footer)

	if err := sendMailFunc([]string{app.Email}, subject, html); err != nil {
		log.Printf("failed to send approval email for application %d: %v", app.ApplicationID, err)
	}
}

// sendDonationReceipt emails a thank-you receipt for a recorded donation.
func sendDonationReceipt(donation models.Donation) {
	subject := fmt.Sprintf("Thank you for supporting %s", orgName())

	paragraphs := []string{
		fmt.Sprintf("Dear %s %s,", donation.FirstName, donation.LastName),
		"Thank you for your generous donation. Your support makes our work possible.",
	}

	meta := []emailMetaItem{
		{Label: "Amount", Value: fmt.Sprintf("$%.2f", donation.Amount)},
		{Label: "Receipt", Value: fmt.Sprintf("DON-%d", donation.DonationID)},
	}
	if donation.PaymentRef != nil && *donation.PaymentRef != "" {
		meta = append(meta, emailMetaItem{Label: "Payment reference", Value: *donation.PaymentRef})
	}

	footer := fmt.Sprintf("This message was sent by %s. Keep this receipt for your records.", orgName())
	html := buildEmailTemplate(subject, paragraphs, meta, "", "", footer)

	if err := sendMailFunc([]string{donation.Email}, subject, html); err != nil {
		log.Printf("failed to send donation receipt %d: %v", donation.DonationID, err)
	}
}
