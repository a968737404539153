package email

import (
	"strings"

	"crm-client/internal/domain/email"
)

var defaultTemplates = []email.Template{
	{
		ID:      1,
		Name:    "Welcome Email",
		Subject: "Welcome to {{company_name}}!",
		Body: `Hi {{customer_name}},

Thank you for your interest in our services. We're excited to work with you!

Here's what you can expect:
- Personalized service from our team
- Regular updates on your projects
- 24/7 support when you need it

If you have any questions, feel free to reach out.

Best regards,
{{sender_name}}
{{company_name}}`,
	},
	{
		ID:      2,
		Name:    "Follow-up Email",
		Subject: "Following up on our conversation",
		Body: `Hi {{customer_name}},

I wanted to follow up on our recent conversation about {{topic}}.

Do you have any questions or would you like to schedule a call to discuss further?

Looking forward to hearing from you.

Best regards,
{{sender_name}}`,
	},
	{
		ID:      3,
		Name:    "Proposal Email",
		Subject: "Proposal for {{project_name}}",
		Body: `Hi {{customer_name}},

As discussed, please find attached our proposal for {{project_name}}.

The proposal includes:
- Detailed project scope
- Timeline and milestones
- Investment breakdown

Please review and let us know if you have any questions.

Best regards,
{{sender_name}}`,
	},
}

// fill replaces every {{key}} in s. Placeholders without a value are left
// as they are.
func fill(s string, values map[string]string) string {
	if len(values) == 0 {
		return s
	}
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}
