package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"time"
)

// sendWithSMTP delivers the message as a multipart/alternative MIME body
// over plain SMTP.
func (s *Service) sendWithSMTP(data EmailData, htmlContent, textContent string) error {
	conf := s.config.SMTP

	boundary := fmt.Sprintf("_MULTIPART_ALT_BOUNDARY_%d", time.Now().UnixNano())

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s <%s>\r\n", data.FromName, data.From)
	fmt.Fprintf(&buf, "To: %s\r\n", data.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", data.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	// Plaintext part first so clients that stop at the first alternative
	// still render something.
	writeMIMEPart(&buf, boundary, "text/plain", textContent)
	writeMIMEPart(&buf, boundary, "text/html", htmlContent)
	fmt.Fprintf(&buf, "\r\n--%s--", boundary)

	auth := smtp.PlainAuth("", conf.Username, conf.Password, conf.Host)
	addr := fmt.Sprintf("%s:%d", conf.Host, conf.Port)

	if err := smtp.SendMail(addr, auth, data.From, []string{data.To}, buf.Bytes()); err != nil {
		return fmt.Errorf("sending email via SMTP: %w", err)
	}

	return nil
}

func writeMIMEPart(buf *bytes.Buffer, boundary, contentType, content string) {
	fmt.Fprintf(buf, "--%s\r\n", boundary)
	fmt.Fprintf(buf, "Content-Type: %s; charset=utf-8\r\n", contentType)
	buf.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
	buf.WriteString(base64.StdEncoding.EncodeToString([]byte(content)))
	buf.WriteString("\r\n")
}
