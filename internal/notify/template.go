package notify

import (
	"fmt"

	"school-import-service/internal/model"
)

// CredentialsEmail renders the account-credentials message sent to a newly
// provisioned user.
func CredentialsEmail(job model.CredentialJob) model.EmailMessage {
	subject := fmt.Sprintf("Your %s account for %s", job.UserType, job.SchoolName)

	text := fmt.Sprintf(
		"Hello %s,\n\n"+
			"A %s account has been created for you at %s.\n\n"+
			"Email: %s\n"+
			"Password: %s\n\n"+
			"Login here: %s\n\n"+
			"Please change your password after your first login.\n",
		job.Name, job.UserType, job.SchoolName, job.Email, job.Password, job.LoginURL)

	html := fmt.Sprintf(
		`<p>Hello %s,</p>
<p>A %s account has been created for you at <strong>%s</strong>.</p>
<p>Email: <strong>%s</strong><br>Password: <strong>%s</strong></p>
<p><a href="%s">Login here</a></p>
<p>Please change your password after your first login.</p>`,
		job.Name, job.UserType, job.SchoolName, job.Email, job.Password, job.LoginURL)

	return model.EmailMessage{
		To:      job.Email,
		Subject: subject,
		HTML:    html,
		Text:    text,
	}
}
