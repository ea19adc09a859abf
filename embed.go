package orgaccess

import "embed"

// EmailFS holds the html/plaintext email template pairs shipped with the
// service.
//
//go:embed templates/emails
var EmailFS embed.FS
