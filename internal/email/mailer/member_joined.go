// internal/email/mailer/member_joined.go
package mailer

import "github.com/dangerclosesec/orgaccess/internal/email"

// MemberJoinedTemplateData contains data for the welcome email template
type MemberJoinedTemplateData struct {
	FirstName        string
	OrganizationName string
}

// SendMemberWelcome notifies a user that they joined an organization
func SendMemberWelcome(s *email.Service, to, firstName, organizationName string) error {
	templateData := MemberJoinedTemplateData{
		FirstName:        firstName,
		OrganizationName: organizationName,
	}

	emailData := email.EmailData{
		To:           to,
		FromName:     organizationName,
		Subject:      "Welcome to " + organizationName,
		TemplateName: "member_joined",
		TemplateData: templateData,
	}

	return s.SendEmail(emailData)
}
