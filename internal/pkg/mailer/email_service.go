package mailer

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendOrderCopy(toEmail, filename string, workbook []byte, userName, store string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendOrderCopy mails a finalized order workbook as an attachment.
func (s *emailService) SendOrderCopy(toEmail, filename string, workbook []byte, userName, store string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("New order from %s for %s", userName, store))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New order received</h2>
			<p><b>%s</b> placed an order for <b>%s</b>.</p>
			<p>The order sheet is attached.</p>
		</div>
	`, userName, store)

	m.SetBody("text/html", body)
	m.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(workbook)
		return err
	}))

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send order copy to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Order copy sent to %s\n", toEmail)
	return nil
}
