package mailer

// Template names a transactional mail template configured on the provider
// side. Using a dedicated type keeps callers from passing arbitrary strings.
type Template string

const (
	TemplateWelcome       Template = "welcome-email"
	TemplatePasswordReset Template = "password-reset"
)

type Mailer interface {
	SendMail(to string, template Template, data map[string]any) error
	SendMailAsync(to string, template Template, data map[string]any, operationName string)
}
