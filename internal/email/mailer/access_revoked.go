// internal/email/mailer/access_revoked.go
package mailer

import "github.com/dangerclosesec/orgaccess/internal/email"

// AccessRevokedTemplateData contains data for the revocation email template
type AccessRevokedTemplateData struct {
	FirstName        string
	OrganizationName string
}

// SendAccessRevoked notifies a user that their organization access was revoked
func SendAccessRevoked(s *email.Service, to, firstName, organizationName string) error {
	templateData := AccessRevokedTemplateData{
		FirstName:        firstName,
		OrganizationName: organizationName,
	}

	emailData := email.EmailData{
		To:           to,
		FromName:     organizationName,
		Subject:      "Your access to " + organizationName + " has been revoked",
		TemplateName: "access_revoked",
		TemplateData: templateData,
	}

	return s.SendEmail(emailData)
}
